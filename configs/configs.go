package configs

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/weibosaver/Weibo-Saver-Logic/constants"
	"github.com/weibosaver/Weibo-Saver-Logic/iofuncs"
)

type Config struct {
	// DownloadPath will be used as the base path for all saved posts
	DownloadPath string

	// OverwriteFiles is a flag to overwrite existing files
	// If false, the download process will be skipped if the file already exists
	OverwriteFiles bool

	// UserAgent is the user agent to be used for page renders and downloads
	UserAgent string

	// MaxConcurrency is the maximum number of concurrent media downloads per post
	MaxConcurrency int

	// VideoCdnPrefixes is the allowlist of video CDN host prefixes.
	// URLs outside of it are discarded as they are usually
	// short-link wrappers that are not directly playable.
	VideoCdnPrefixes []string
}

// Returns a Config with the defaults filled in
func NewConfig() *Config {
	return &Config{
		DownloadPath:     iofuncs.DOWNLOAD_PATH,
		OverwriteFiles:   false,
		UserAgent:        constants.USER_AGENT,
		MaxConcurrency:   constants.WEIBO_MAX_CONCURRENCY,
		VideoCdnPrefixes: constants.DEFAULT_VIDEO_CDN_PREFIXES,
	}
}

// Loads the config from the environment, reading a .env file first if present.
// Unset variables keep their defaults.
func LoadConfig() *Config {
	godotenv.Load()

	config := NewConfig()
	if downloadPath := os.Getenv("WEIBO_SAVER_DOWNLOAD_PATH"); downloadPath != "" {
		config.DownloadPath = downloadPath
	}
	if userAgent := os.Getenv("WEIBO_SAVER_USER_AGENT"); userAgent != "" {
		config.UserAgent = userAgent
	}
	if overwrite := os.Getenv("WEIBO_SAVER_OVERWRITE_FILES"); overwrite != "" {
		config.OverwriteFiles, _ = strconv.ParseBool(overwrite)
	}
	if maxConcurrency := os.Getenv("WEIBO_SAVER_MAX_CONCURRENCY"); maxConcurrency != "" {
		if parsed, err := strconv.Atoi(maxConcurrency); err == nil && parsed > 0 {
			config.MaxConcurrency = parsed
		}
	}
	if cdnPrefixes := os.Getenv("WEIBO_SAVER_VIDEO_CDN_PREFIXES"); cdnPrefixes != "" {
		var prefixes []string
		for _, prefix := range strings.Split(cdnPrefixes, ",") {
			if prefix = strings.TrimSpace(prefix); prefix != "" {
				prefixes = append(prefixes, prefix)
			}
		}
		if len(prefixes) > 0 {
			config.VideoCdnPrefixes = prefixes
		}
	}
	return config
}
