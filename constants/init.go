package constants

import (
	"fmt"
	"regexp"
	"runtime"
)

var (
	USER_AGENT string

	HREF_REGEX             = regexp.MustCompile(`href="([^"]*)"`)
	MEDIA_EXT_REGEX        = regexp.MustCompile(`(?i)\.(?:jpg|jpeg|png|gif|webp|mp4|mov|m3u8|flv)$`)
	SCRIPT_VIDEO_URL_REGEX = regexp.MustCompile(`https?://[^\s"'\\]+?\.(?:mp4|mov|m3u8|flv)`)
	MONTH_DAY_REGEX        = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})$`)
)

func init() {
	var userAgent = map[string]string{
		"linux":   "Mozilla/5.0 (X11; Linux x86_64)",
		"darwin":  "Mozilla/5.0 (Macintosh; Intel Mac OS X 12_6)",
		"windows": "Mozilla/5.0 (Windows NT 10.0; Win64; x64)",
	}
	userAgentOS, ok := userAgent[runtime.GOOS]
	if !ok {
		panic(
			fmt.Errorf(
				"error %d: Failed to get user agent OS as your OS, %q, is not supported",
				OS_ERROR,
				runtime.GOOS,
			),
		)
	}
	USER_AGENT = fmt.Sprintf("%s AppleWebKit/537.36 (KHTML, like Gecko) Chrome/111.0.0.0 Safari/537.36", userAgentOS)
}
