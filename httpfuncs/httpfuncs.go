package httpfuncs

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/weibosaver/Weibo-Saver-Logic/constants"
)

// Returns the last part of the given URL string (without the query string)
func GetLastPartOfUrl(url string) string {
	if strings.Contains(url, "?") {
		url = strings.SplitN(url, "?", 2)[0]
	}
	splitted := strings.Split(url, "/")
	return splitted[len(splitted)-1]
}

// Reads and returns the response body in bytes and closes it
func ReadResBody(res *http.Response) ([]byte, error) {
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf(
			"error %d: failed to read response body from %s due to %w",
			constants.RESPONSE_ERROR,
			res.Request.URL.String(),
			err,
		)
	}
	return body, nil
}
