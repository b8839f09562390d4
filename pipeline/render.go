package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/weibosaver/Weibo-Saver-Logic/constants"
	"github.com/weibosaver/Weibo-Saver-Logic/models"
)

// RenderContext is the placeholder record handed to the external
// Markdown template collaborator. Pics and Videos are pre-rendered
// Markdown fragments, one line per file.
type RenderContext struct {
	Title      string
	Site       string
	DateSaved  string
	User       string
	CreatedAt  string
	Url        string
	OuterText  string
	OriginUser string
	OriginText string
	Pics       string
	Videos     string
}

// BuildRenderContext assembles the placeholder record for a saved
// post. The title falls back to the mail subject and then to the
// status id when the post itself did not expose one.
func BuildRenderContext(saved *models.SavedPost, msg *models.MailMessage, savedAt time.Time) *RenderContext {
	post := saved.Post
	title := post.Title
	if title == "" {
		title = strings.TrimSpace(msg.Subject)
	}
	if title == "" {
		title = lastUrlSegment(post.SourceUrl)
	}

	picFragments := make([]string, 0, len(saved.ImageFilenames))
	for _, filename := range saved.ImageFilenames {
		picFragments = append(picFragments, fmt.Sprintf("![](%s/%s)", constants.IMAGES_DIR_NAME, filename))
	}
	videoFragments := make([]string, 0, len(saved.VideoFilenames))
	for _, filename := range saved.VideoFilenames {
		videoFragments = append(videoFragments, fmt.Sprintf("![[%s]]", filename))
	}

	return &RenderContext{
		Title:      title,
		Site:       constants.WEIBO_TITLE,
		DateSaved:  savedAt.Format(constants.DATETIME_LAYOUT),
		User:       post.Author,
		CreatedAt:  post.CreatedAt,
		Url:        post.SourceUrl,
		OuterText:  post.Text,
		OriginUser: post.OriginAuthor,
		OriginText: post.OriginText,
		Pics:       strings.Join(picFragments, "\n"),
		Videos:     strings.Join(videoFragments, "\n"),
	}
}

func lastUrlSegment(url string) string {
	splitted := strings.Split(strings.TrimSuffix(url, "/"), "/")
	return splitted[len(splitted)-1]
}
