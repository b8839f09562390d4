package httpfuncs

import (
	"context"
	"net/http"
)

type RequestHandler func(reqArgs *RequestArgs) (*http.Response, error)

type RequestArgs struct {
	// Main Request Options
	Method  string
	Url     string
	Timeout int

	// Additional Request Options
	Headers            map[string]string
	Params             map[string]string
	UserAgent          string
	DisableCompression bool

	// HTTP/2 and HTTP/3 Options
	Http2 bool
	Http3 bool

	// Check status will check the status code of the response for 200 OK.
	// If the status code is not 200 OK, an error is returned.
	// Otherwise, the response is returned regardless of the status code.
	CheckStatus bool

	// Context is used to cancel the request if needed.
	Context context.Context

	// RequestHandler is the main function that will be called to make the request.
	RequestHandler RequestHandler
}

type ToDownload struct {
	Url      string
	FilePath string
}

type DlOptions struct {
	// Context is used to cancel the batch if needed.
	Context context.Context

	// MaxConcurrency is the maximum number of concurrent downloads
	MaxConcurrency int

	// Headers is a map of headers to be used in the download process
	Headers map[string]string

	// UseHttp3 is a flag to enable HTTP/3
	// Otherwise, HTTP/2 will be used by default
	UseHttp3 bool
}
