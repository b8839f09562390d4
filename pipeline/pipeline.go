// Package pipeline composes the content-extraction-and-recovery
// pipeline: locate the status URL in the mail body, render the
// page, extract a structured post (or synthesize a fallback one),
// then acquire the post's media as a failure-isolated batch.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/weibosaver/Weibo-Saver-Logic/api/generic"
	"github.com/weibosaver/Weibo-Saver-Logic/api/weibo"
	"github.com/weibosaver/Weibo-Saver-Logic/configs"
	"github.com/weibosaver/Weibo-Saver-Logic/constants"
	"github.com/weibosaver/Weibo-Saver-Logic/httpfuncs"
	"github.com/weibosaver/Weibo-Saver-Logic/iofuncs"
	"github.com/weibosaver/Weibo-Saver-Logic/logger"
	"github.com/weibosaver/Weibo-Saver-Logic/models"
	"github.com/weibosaver/Weibo-Saver-Logic/renderer"
)

type Pipeline struct {
	Config   *configs.Config
	Renderer renderer.PageRenderer

	genericExtractor *generic.Extractor

	// reqHandler lets tests intercept the media download requests
	reqHandler httpfuncs.RequestHandler
}

func New(config *configs.Config, pageRenderer renderer.PageRenderer) *Pipeline {
	if config == nil {
		config = configs.NewConfig()
	}
	return &Pipeline{
		Config:           config,
		Renderer:         pageRenderer,
		genericExtractor: generic.NewExtractor(),
		reqHandler:       httpfuncs.CallRequest,
	}
}

// Process runs one mail message through the whole pipeline.
//
// A mail without a valid status link returns wserrors.ErrNoContentUrl
// and no post is produced. Every other failure mode still yields
// exactly one saved record: fetch and extraction errors become a
// fallback post, and media failures are logged without failing the
// post.
func (p *Pipeline) Process(ctx context.Context, msg *models.MailMessage) (*models.SavedPost, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	statusUrl, err := weibo.FindStatusUrl(msg.RawHtmlBody)
	if err != nil {
		return nil, err
	}

	post := p.extractOrFallback(ctx, statusUrl, msg)
	saved := &models.SavedPost{
		Post:           post,
		ImageFilenames: []string{},
		VideoFilenames: []string{},
	}

	if len(post.Images) == 0 && len(post.Videos) == 0 {
		return saved, nil
	}

	baseTitle := post.Title
	if baseTitle == "" {
		baseTitle = msg.Subject
	}
	if baseTitle == "" {
		baseTitle = httpfuncs.GetLastPartOfUrl(statusUrl)
	}

	destDir := filepath.Join(p.Config.DownloadPath, iofuncs.CleanPathName(baseTitle))
	acquiredAt := time.Now()
	saved.ImageFilenames = p.acquireMedia(
		ctx,
		post.Images,
		filepath.Join(destDir, constants.IMAGES_DIR_NAME),
		baseTitle,
		acquiredAt,
		constants.DEFAULT_IMAGE_EXT,
	)
	saved.VideoFilenames = p.acquireMedia(
		ctx,
		post.Videos,
		filepath.Join(destDir, constants.VIDEOS_DIR_NAME),
		baseTitle,
		acquiredAt,
		constants.DEFAULT_VIDEO_EXT,
	)
	return saved, nil
}

// extractOrFallback renders the page and runs the extraction
// strategy for its source family. Fetch and extraction failures are
// routed to the fallback synthesizer instead of aborting the run.
func (p *Pipeline) extractOrFallback(ctx context.Context, statusUrl string, msg *models.MailMessage) *models.Post {
	page, err := p.Renderer.RenderPage(ctx, statusUrl)
	if err == nil && constants.DEBUG_MODE {
		logger.MainLogger.Debugf(
			"rendered %s (%d bytes of render data)",
			statusUrl,
			len(page.RenderData),
		)
	}
	if err != nil {
		logger.LogError(
			fmt.Errorf(
				"pipeline error %d: falling back after page fetch failure, more info => %w",
				constants.RENDER_ERROR,
				err,
			),
			false,
			logger.ERROR,
		)
		return SynthesizeFallbackPost(err, statusUrl, msg.RawHtmlBody)
	}

	var post *models.Post
	if weibo.IsStatusUrl(statusUrl) {
		post, err = weibo.ExtractPost(page, p.Config.VideoCdnPrefixes)
	} else {
		post, err = p.genericExtractor.ExtractPost(page)
	}
	if err != nil {
		logger.LogError(
			fmt.Errorf(
				"pipeline error %d: falling back after extraction failure, more info => %w",
				constants.EXTRACTION_ERROR,
				err,
			),
			false,
			logger.ERROR,
		)
		return SynthesizeFallbackPost(err, statusUrl, msg.RawHtmlBody)
	}
	return post
}

// acquireMedia downloads one kind of media as a concurrent batch.
// Failed items are logged inside the download layer and simply
// missing from the returned filenames.
func (p *Pipeline) acquireMedia(ctx context.Context, mediaUrls []string, destDir, baseTitle string, acquiredAt time.Time, defaultExt string) []string {
	if len(mediaUrls) == 0 {
		return []string{}
	}

	urlInfoSlice := make([]*httpfuncs.ToDownload, 0, len(mediaUrls))
	for idx, mediaUrl := range mediaUrls {
		filename := httpfuncs.BuildMediaFilename(baseTitle, acquiredAt, idx, mediaUrl, defaultExt)
		urlInfoSlice = append(urlInfoSlice, &httpfuncs.ToDownload{
			Url:      mediaUrl,
			FilePath: filepath.Join(destDir, filename),
		})
	}

	filenames := httpfuncs.DownloadUrlsWithHandler(
		urlInfoSlice,
		&httpfuncs.DlOptions{
			Context:        ctx,
			MaxConcurrency: p.Config.MaxConcurrency,
		},
		p.Config,
		p.reqHandler,
	)
	if filenames == nil {
		filenames = []string{}
	}
	return filenames
}
