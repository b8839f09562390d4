package httpfuncs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/quic-go/quic-go/http3"

	"github.com/weibosaver/Weibo-Saver-Logic/constants"
)

// Get a new HTTP/2 or HTTP/3 client based on the request arguments
func GetHttpClient(reqArgs *RequestArgs) *http.Client {
	if reqArgs.Http2 {
		return &http.Client{
			Transport: &http.Transport{
				DisableCompression: reqArgs.DisableCompression,
			},
		}
	}
	return &http.Client{
		Transport: &http3.RoundTripper{
			DisableCompression: reqArgs.DisableCompression,
		},
	}
}

// add headers to the request
func AddHeaders(headers map[string]string, defaultUserAgent string, req *http.Request) {
	if userAgent, ok := headers["User-Agent"]; !ok || userAgent == "" {
		req.Header.Set("User-Agent", defaultUserAgent)
	}

	for key, value := range headers {
		req.Header.Add(key, value)
	}
}

// add params to the request
func AddParams(params map[string]string, req *http.Request) {
	if len(params) == 0 {
		return
	}

	query := req.URL.Query()
	for key, value := range params {
		query.Add(key, value)
	}
	req.URL.RawQuery = query.Encode()
}

// Send the request to the target URL. A single attempt is made as
// the source site is not retried on failure.
func sendRequest(req *http.Request, reqArgs *RequestArgs) (*http.Response, error) {
	AddHeaders(reqArgs.Headers, reqArgs.UserAgent, req)
	AddParams(reqArgs.Params, req)

	client := GetHttpClient(reqArgs)
	client.Timeout = time.Duration(reqArgs.Timeout) * time.Second

	res, err := client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, context.Canceled
		}
		return nil, fmt.Errorf(
			"error %d: the request to %s failed, more info => %w",
			constants.CONNECTION_ERROR,
			reqArgs.Url,
			err,
		)
	}

	if reqArgs.CheckStatus && res.StatusCode != http.StatusOK {
		res.Body.Close()
		return nil, fmt.Errorf(
			"error %d: the request to %s failed, status code => %s",
			constants.RESPONSE_ERROR,
			reqArgs.Url,
			res.Status,
		)
	}
	return res, nil
}

// CallRequest is used to make a request to a URL and return the response
func CallRequest(reqArgs *RequestArgs) (*http.Response, error) {
	reqArgs.ValidateArgs()
	req, err := http.NewRequestWithContext(
		reqArgs.Context,
		reqArgs.Method,
		reqArgs.Url,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf(
			"error %d: unable to create a new request, more info => %w",
			constants.DEV_ERROR,
			err,
		)
	}

	return sendRequest(req, reqArgs)
}
