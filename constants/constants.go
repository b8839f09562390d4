package constants

const (
	DEBUG_MODE    = false // Will save a copy of the rendered page data for inspection
	DEFAULT_PERMS = 0755  // Owner: rwx, Group: rx, Others: rx
	VERSION       = "1.0.3"

	PAGE_TIMEOUT     = 30      // in seconds, for the source page render
	DOWNLOAD_TIMEOUT = 15 * 60 // 15 minutes in seconds as videos can be large

	WEIBO                   = "weibo"
	WEIBO_TITLE             = "Weibo"
	WEIBO_URL               = "https://weibo.com"
	WEIBO_MOBILE_URL        = "https://m.weibo.cn"
	WEIBO_STATUS_URL_FORMAT = WEIBO_MOBILE_URL + "/status/%s"
	WEIBO_MAX_CONCURRENCY   = 4

	// Marker phrase that conventionally precedes the shareable
	// link in Weibo notification mails. Multiple occurrences may
	// exist in one mail; only the last one is authoritative.
	WEIBO_MAIL_MARKER = "更多精彩评论"

	// Literal substring in a repost's outer text when the original
	// image is only reachable through a link-wrapped thumbnail.
	WEIBO_IMAGE_LINK_MARKER = "查看图片"

	// Redirect prefix used by the link-wrapped thumbnails above.
	WEIBO_SINAURL_PREFIX = "https://weibo.cn/sinaurl"

	// Handle used when a status has no resolvable user.
	UNKNOWN_USER = "unknown"

	// Author sentinel on synthesized fallback records.
	FALLBACK_AUTHOR = "Error"

	// Weibo's created_at format, e.g. "Thu Apr 18 09:15:03 +0800 2024".
	WEIBO_CREATED_AT_LAYOUT = "Mon Jan 02 15:04:05 -0700 2006"
	DATETIME_LAYOUT         = "2006-01-02 15:04:05"
	DATE_LAYOUT             = "2006-01-02"

	DEFAULT_IMAGE_EXT = ".jpg"
	DEFAULT_VIDEO_EXT = ".mp4"

	IMAGES_DIR_NAME = "images"
	VIDEOS_DIR_NAME = "videos"
)

// Default allowlist of video CDN host prefixes. Weibo rotates CDN
// domains between site versions, so this is overridable via the
// config rather than being a hard invariant.
var DEFAULT_VIDEO_CDN_PREFIXES = []string{
	"https://f.video.weibocdn.com",
	"https://f.us.sinaimg.cn",
}

// Substrings that mark an <img> as an avatar or placeholder icon
// rather than post content.
var IMAGE_BLOCKLIST_SUBSTRS = []string{
	"avatar",
	"portrait",
	"default_head",
	"placeholder",
	"/icon",
	"/logo",
}
