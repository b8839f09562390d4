package httpfuncs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	ctxio "github.com/jbenet/go-context/io"

	"github.com/weibosaver/Weibo-Saver-Logic/configs"
	"github.com/weibosaver/Weibo-Saver-Logic/constants"
	"github.com/weibosaver/Weibo-Saver-Logic/iofuncs"
	"github.com/weibosaver/Weibo-Saver-Logic/logger"
)

// Builds a deterministic local filename for a media URL from the
// post title, the acquisition timestamp and the item's index in the
// batch. The extension is sniffed from the URL's trailing file
// extension and defaultExt is applied when there is none.
func BuildMediaFilename(baseTitle string, acquiredAt time.Time, idx int, fileUrl, defaultExt string) string {
	ext := constants.MEDIA_EXT_REGEX.FindString(GetLastPartOfUrl(fileUrl))
	if ext == "" {
		ext = defaultExt
	}
	return fmt.Sprintf(
		"%s_%s_%d%s",
		iofuncs.CleanPathName(baseTitle),
		acquiredAt.Format("20060102_150405"),
		idx,
		strings.ToLower(ext),
	)
}

// DlToFile streams the response body to the file at filePath.
// An incomplete file is removed so that a failed or cancelled
// download does not leave a corrupted file behind.
func DlToFile(res *http.Response, ctx context.Context, filePath string) error {
	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf(
			"error %d: failed to open/create file, more info => %w\nfile path: %s",
			constants.OS_ERROR,
			err,
			filePath,
		)
	}
	defer file.Close()

	respReader := ctxio.NewReader(ctx, res.Body)
	if _, err = io.Copy(file, respReader); err != nil {
		if fileErr := os.Remove(filePath); fileErr != nil {
			logger.LogError(
				fmt.Errorf(
					"error %d: failed to remove file %s, more info => %w",
					constants.OS_ERROR,
					filePath,
					fileErr,
				),
				false,
				logger.ERROR,
			)
		}

		if errors.Is(err, context.Canceled) {
			return context.Canceled
		}
		return fmt.Errorf(
			"error %d: failed to download %s, more info => %w",
			constants.DOWNLOAD_ERROR,
			res.Request.URL.String(),
			err,
		)
	}
	return nil
}

// downloadUrl downloads a single file from a URL.
// Note: If the file already exists, the download process will be skipped
func downloadUrl(filePath string, queue chan struct{}, reqArgs *RequestArgs, overwriteExistingFile bool) error {
	queue <- struct{}{}

	if !overwriteExistingFile {
		if fileSize, _ := iofuncs.GetFileSize(filePath); fileSize > 0 {
			return nil
		}
	}

	res, err := reqArgs.RequestHandler(reqArgs)
	if err != nil {
		if err != context.Canceled {
			err = fmt.Errorf(
				"error %d: failed to download file, more info => %w\nurl: %s",
				constants.DOWNLOAD_ERROR,
				err,
				reqArgs.Url,
			)
		}
		return err
	}
	defer res.Body.Close()

	os.MkdirAll(filepath.Dir(filePath), constants.DEFAULT_PERMS)
	return DlToFile(res, reqArgs.Context, filePath)
}

// DownloadUrls is used to download multiple files from URLs concurrently.
//
// The batch is awaited as a whole and a failed item never cancels
// its siblings. Failed URLs are logged and excluded from the
// returned filenames, so the returned slice can be shorter than the
// input slice.
func DownloadUrlsWithHandler(urlInfoSlice []*ToDownload, dlOptions *DlOptions, config *configs.Config, reqHandler RequestHandler) []string {
	urlsLen := len(urlInfoSlice)
	if urlsLen == 0 {
		return nil
	}

	maxConcurrency := dlOptions.MaxConcurrency
	if maxConcurrency <= 0 {
		maxConcurrency = constants.WEIBO_MAX_CONCURRENCY
	}
	if urlsLen < maxConcurrency {
		maxConcurrency = urlsLen
	}

	var wg sync.WaitGroup
	queue := make(chan struct{}, maxConcurrency)
	errChan := make(chan error, urlsLen)
	successChan := make(chan string, urlsLen)

	// Create a context that can be cancelled when SIGINT/SIGTERM signal is received
	batchCtx := dlOptions.Context
	if batchCtx == nil {
		batchCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(batchCtx)
	defer cancel()

	// Catch SIGINT/SIGTERM signal and cancel the context when received
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
	}()
	defer signal.Stop(sigs)

	for _, urlInfo := range urlInfoSlice {
		wg.Add(1)
		go func(fileUrl, filePath string) {
			defer func() {
				wg.Done()
				<-queue
			}()
			err := downloadUrl(
				filePath,
				queue,
				&RequestArgs{
					Url:            fileUrl,
					Method:         "GET",
					Timeout:        constants.DOWNLOAD_TIMEOUT,
					Headers:        dlOptions.Headers,
					Http2:          !dlOptions.UseHttp3,
					Http3:          dlOptions.UseHttp3,
					UserAgent:      config.UserAgent,
					CheckStatus:    true,
					RequestHandler: reqHandler,
					Context:        ctx,
				},
				config.OverwriteFiles,
			)
			if err != nil {
				errChan <- fmt.Errorf(
					"error %d: failed to acquire %s, more info => %w",
					constants.DOWNLOAD_ERROR,
					fileUrl,
					err,
				)
				return
			}
			successChan <- filepath.Base(filePath)
		}(urlInfo.Url, urlInfo.FilePath)
	}
	wg.Wait()
	close(queue)
	close(errChan)
	close(successChan)

	if len(errChan) > 0 {
		logger.LogChanErrors(false, logger.ERROR, errChan)
	}

	filenames := make([]string, 0, len(successChan))
	for filename := range successChan {
		filenames = append(filenames, filename)
	}
	return filenames
}

// DownloadUrls is DownloadUrlsWithHandler with the default request handler.
func DownloadUrls(urlInfoSlice []*ToDownload, dlOptions *DlOptions, config *configs.Config) []string {
	return DownloadUrlsWithHandler(urlInfoSlice, dlOptions, config, CallRequest)
}
