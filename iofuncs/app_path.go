package iofuncs

import (
	"fmt"
	"os"
	"path/filepath"
)

var (
	APP_PATH      = getAppPath()
	DOWNLOAD_PATH = GetDefaultDownloadPath()
)

// Returns the path to the application's config directory
func getAppPath() string {
	appPath, err := os.UserConfigDir()
	if err != nil {
		panic(
			fmt.Errorf(
				"failed to get user's config directory: %v",
				err,
			),
		)
	}
	return filepath.Join(appPath, "Weibo-Saver")
}

// Returns the default download path used
// when the config does not specify one
func GetDefaultDownloadPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, "Weibo-Saver")
}
