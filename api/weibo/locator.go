package weibo

import (
	"fmt"
	"strings"

	"github.com/weibosaver/Weibo-Saver-Logic/constants"
	wserrors "github.com/weibosaver/Weibo-Saver-Logic/errors"
	"github.com/weibosaver/Weibo-Saver-Logic/httpfuncs"
)

// FindStatusUrl locates the canonical status URL in the raw HTML
// body of a notification mail and rebuilds it under the mobile site.
//
// The mail may contain the marker phrase more than once (e.g. when
// the notification quotes an earlier notification); only the link
// after the last occurrence is authoritative. Malformed bodies never
// panic, they return wserrors.ErrNoContentUrl.
func FindStatusUrl(rawBody string) (string, error) {
	segments := strings.Split(rawBody, constants.WEIBO_MAIL_MARKER)
	if len(segments) < 2 {
		return "", fmt.Errorf(
			"weibo error %d: %w",
			constants.INPUT_ERROR,
			wserrors.ErrNoContentUrl,
		)
	}

	lastSegment := segments[len(segments)-1]
	matches := constants.HREF_REGEX.FindStringSubmatch(lastSegment)
	if matches == nil {
		return "", fmt.Errorf(
			"weibo error %d: no anchor after marker, %w",
			constants.INPUT_ERROR,
			wserrors.ErrNoContentUrl,
		)
	}

	href := matches[1]
	if !strings.HasPrefix(href, constants.WEIBO_URL) {
		return "", fmt.Errorf(
			"weibo error %d: anchor href %q is not a weibo link, %w",
			constants.INPUT_ERROR,
			href,
			wserrors.ErrNoContentUrl,
		)
	}

	statusId := httpfuncs.GetLastPartOfUrl(strings.TrimSuffix(href, "/"))
	if statusId == "" || strings.Contains(statusId, ".") || strings.HasPrefix(statusId, "http") {
		return "", fmt.Errorf(
			"weibo error %d: could not get status id from %q, %w",
			constants.INPUT_ERROR,
			href,
			wserrors.ErrNoContentUrl,
		)
	}
	return fmt.Sprintf(constants.WEIBO_STATUS_URL_FORMAT, statusId), nil
}

// IsStatusUrl reports whether the given URL belongs to the mobile
// status page family that exposes the $render_data object.
func IsStatusUrl(pageUrl string) bool {
	return strings.HasPrefix(pageUrl, constants.WEIBO_MOBILE_URL)
}
