package wslogic

import (
	"context"
	"errors"

	"github.com/weibosaver/Weibo-Saver-Logic/configs"
	wserrors "github.com/weibosaver/Weibo-Saver-Logic/errors"
	"github.com/weibosaver/Weibo-Saver-Logic/logger"
	"github.com/weibosaver/Weibo-Saver-Logic/models"
	"github.com/weibosaver/Weibo-Saver-Logic/pipeline"
	"github.com/weibosaver/Weibo-Saver-Logic/renderer"
)

// Start the save process for a batch of notification mails.
//
// Each mail is processed independently end-to-end: a mail without a
// valid status link is skipped and reported in the returned error
// slice, while any other failure still produces a saved record
// (possibly a fallback one).
func WeiboSaveProcess(ctx context.Context, msgs []*models.MailMessage, config *configs.Config, pageRenderer renderer.PageRenderer) ([]*models.SavedPost, []error) {
	if len(msgs) == 0 {
		return nil, nil
	}
	if config == nil {
		config = configs.LoadConfig()
	}
	if pageRenderer == nil {
		pageRenderer = renderer.NewChromeRenderer(config.UserAgent)
	}

	proc := pipeline.New(config, pageRenderer)

	var savedPosts []*models.SavedPost
	var errorSlice []error
	for _, msg := range msgs {
		saved, err := proc.Process(ctx, msg)
		if err != nil {
			if errors.Is(err, wserrors.ErrNoContentUrl) {
				logger.LogError(err, false, logger.INFO)
			}
			errorSlice = append(errorSlice, err)
			continue
		}
		savedPosts = append(savedPosts, saved)
	}
	return savedPosts, errorSlice
}
