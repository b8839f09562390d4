package weibo

import (
	"errors"
	"strings"
	"testing"

	wserrors "github.com/weibosaver/Weibo-Saver-Logic/errors"
	"github.com/weibosaver/Weibo-Saver-Logic/models"
	"github.com/weibosaver/Weibo-Saver-Logic/renderer"
)

func renderedPage(renderData string) *renderer.RenderedPage {
	page := &renderer.RenderedPage{
		Url:  "https://m.weibo.cn/status/ABCdef",
		Html: "<html><body></body></html>",
	}
	if renderData != "" {
		page.RenderData = []byte(renderData)
	}
	return page
}

func TestExtractPostSchemaMissing(t *testing.T) {
	for name, renderData := range map[string]string{
		"no render data":   "",
		"no status object": `{"status": null}`,
	} {
		_, err := ExtractPost(renderedPage(renderData), nil)
		if !errors.Is(err, wserrors.ErrSchemaMissing) {
			t.Errorf("%s: expected ErrSchemaMissing, got %v", name, err)
		}
	}
}

func TestExtractPostMalformedRenderData(t *testing.T) {
	if _, err := ExtractPost(renderedPage(`{"status": {`), nil); err == nil {
		t.Error("Expected an error for malformed render data")
	}
}

func TestExtractPost(t *testing.T) {
	renderData := `{
		"status": {
			"id": "ABCdef",
			"text": "<p>hello <a href=\"https://weibo.com/x\">world</a></p>",
			"user": {"screen_name": "poster"},
			"created_at": "Thu Apr 18 09:15:03 +0800 2024",
			"pics": [
				{"url": "https://wx1.sinaimg.cn/orj360/a.jpg", "large": {"url": "https://wx1.sinaimg.cn/large/a.jpg"}},
				{"url": "https://wx1.sinaimg.cn/orj360/b.jpg"}
			]
		}
	}`
	post, err := ExtractPost(renderedPage(renderData), nil)
	if err != nil {
		t.Fatalf("Error extracting post: %v", err)
	}

	if post.Author != "poster" {
		t.Errorf("Expected author poster, got %s", post.Author)
	}
	if !strings.Contains(post.Text, "[world](https://weibo.com/x)") {
		t.Errorf("Expected markdown link in text, got %q", post.Text)
	}
	if post.CreatedAt != "2024-04-18 09:15:03" {
		t.Errorf("Expected normalized timestamp, got %s", post.CreatedAt)
	}
	if len(post.Images) != 2 || post.Images[0] != "https://wx1.sinaimg.cn/large/a.jpg" {
		t.Errorf("Expected the large variant first, got %v", post.Images)
	}
	if post.Provenance != models.ProvenanceStructured {
		t.Errorf("Expected structured provenance, got %v", post.Provenance)
	}
	if post.Videos == nil || len(post.Videos) != 0 {
		t.Errorf("Expected an empty video slice, got %v", post.Videos)
	}
}

func TestExtractPostMissingUserDoesNotFail(t *testing.T) {
	renderData := `{
		"status": {
			"id": "ABCdef",
			"text": "<p>orphaned</p>",
			"created_at": "2024-04-18",
			"retweeted_status": {"text": "<p>original</p>"}
		}
	}`
	post, err := ExtractPost(renderedPage(renderData), nil)
	if err != nil {
		t.Fatalf("Error extracting post: %v", err)
	}
	if post.Author != "unknown" {
		t.Errorf("Expected unknown author sentinel, got %s", post.Author)
	}
	if post.OriginAuthor != "unknown" {
		t.Errorf("Expected unknown origin author sentinel, got %s", post.OriginAuthor)
	}
	if post.CreatedAt != "2024-04-18" {
		t.Errorf("Expected date-only precision to be kept, got %s", post.CreatedAt)
	}
}

func TestExtractPostRepostPrefersLongText(t *testing.T) {
	renderData := `{
		"status": {
			"id": "ABCdef",
			"text": "<p>outer comment</p>",
			"user": {"screen_name": "reposter"},
			"created_at": "Thu Apr 18 09:15:03 +0800 2024",
			"retweeted_status": {
				"text": "<p>trunc...</p>",
				"isLongText": true,
				"longText": {"longTextContent": "<p>full text</p>"},
				"user": {"screen_name": "original_poster"},
				"pics": [{"url": "https://wx1.sinaimg.cn/orj360/rt.jpg"}]
			}
		}
	}`
	post, err := ExtractPost(renderedPage(renderData), nil)
	if err != nil {
		t.Fatalf("Error extracting post: %v", err)
	}

	if post.OriginText != "full text" {
		t.Errorf("Expected the long-form content, got %q", post.OriginText)
	}
	if post.OriginAuthor != "original_poster" {
		t.Errorf("Expected original_poster, got %s", post.OriginAuthor)
	}
	if post.Text != "outer comment" {
		t.Errorf("Expected outer comment, got %q", post.Text)
	}
	// a repost's images come from the retweeted status
	if len(post.Images) != 1 || post.Images[0] != "https://wx1.sinaimg.cn/orj360/rt.jpg" {
		t.Errorf("Expected the retweeted pics, got %v", post.Images)
	}
}

func TestExtractPostVideoPlaceholderExcludedFromImages(t *testing.T) {
	renderData := `{
		"status": {
			"id": "ABCdef",
			"text": "<p>clip</p>",
			"user": {"screen_name": "poster"},
			"created_at": "Thu Apr 18 09:15:03 +0800 2024",
			"pics": [
				{"url": "https://wx1.sinaimg.cn/orj360/a.jpg"},
				{"url": "https://wx1.sinaimg.cn/orj360/thumb.jpg", "videoSrc": "https://f.video.weibocdn.com/clip.mp4"}
			]
		}
	}`
	post, err := ExtractPost(renderedPage(renderData), nil)
	if err != nil {
		t.Fatalf("Error extracting post: %v", err)
	}

	for _, imageUrl := range post.Images {
		if strings.Contains(imageUrl, "thumb.jpg") {
			t.Errorf("Video placeholder leaked into the image list: %v", post.Images)
		}
	}
	if len(post.Videos) != 1 || post.Videos[0] != "https://f.video.weibocdn.com/clip.mp4" {
		t.Errorf("Expected the per-picture video source, got %v", post.Videos)
	}
}

func TestExtractPostLinkedImageAffordance(t *testing.T) {
	renderData := `{
		"status": {
			"id": "ABCdef",
			"text": "<p>查看图片 <a href=\"https://weibo.cn/sinaurl?u=https%3A%2F%2Fwx1.sinaimg.cn%2Flarge%2Fc.jpg\">link</a> <a href=\"https://weibo.com/other\">other</a></p>",
			"user": {"screen_name": "reposter"},
			"created_at": "Thu Apr 18 09:15:03 +0800 2024",
			"retweeted_status": {
				"text": "<p>original</p>",
				"user": {"screen_name": "original_poster"}
			}
		}
	}`
	post, err := ExtractPost(renderedPage(renderData), nil)
	if err != nil {
		t.Fatalf("Error extracting post: %v", err)
	}

	if len(post.Images) != 1 || !strings.HasPrefix(post.Images[0], "https://weibo.cn/sinaurl") {
		t.Errorf("Expected the sinaurl anchor to be appended, got %v", post.Images)
	}
}

func TestExtractPostVideoCdnAllowlist(t *testing.T) {
	renderData := `{
		"status": {
			"id": "ABCdef",
			"text": "<p>clip</p>",
			"user": {"screen_name": "poster"},
			"created_at": "Thu Apr 18 09:15:03 +0800 2024",
			"page_info": {
				"type": "video",
				"media_info": {"stream_url": "https://t.cn/short", "stream_url_hd": ""}
			}
		}
	}`
	post, err := ExtractPost(renderedPage(renderData), nil)
	if err != nil {
		t.Fatalf("Error extracting post: %v", err)
	}
	if len(post.Videos) != 0 {
		t.Errorf("Expected short-link wrapper to be discarded, got %v", post.Videos)
	}

	// the allowlist is configuration, not a hard invariant
	post, err = ExtractPost(renderedPage(renderData), []string{"https://t.cn"})
	if err != nil {
		t.Fatalf("Error extracting post: %v", err)
	}
	if len(post.Videos) != 1 || post.Videos[0] != "https://t.cn/short" {
		t.Errorf("Expected the configured prefix to be accepted, got %v", post.Videos)
	}
}

func TestExtractPostStreamUrlOnlyWhenNoPicVideos(t *testing.T) {
	renderData := `{
		"status": {
			"id": "ABCdef",
			"text": "<p>clip</p>",
			"user": {"screen_name": "poster"},
			"created_at": "Thu Apr 18 09:15:03 +0800 2024",
			"pics": [{"url": "https://wx1.sinaimg.cn/orj360/thumb.jpg", "videoSrc": "https://f.video.weibocdn.com/pic.mp4"}],
			"page_info": {
				"type": "video",
				"media_info": {"stream_url_hd": "https://f.video.weibocdn.com/stream.mp4"}
			}
		}
	}`
	post, err := ExtractPost(renderedPage(renderData), nil)
	if err != nil {
		t.Fatalf("Error extracting post: %v", err)
	}
	if len(post.Videos) != 1 || post.Videos[0] != "https://f.video.weibocdn.com/pic.mp4" {
		t.Errorf("Expected the per-picture source to win, got %v", post.Videos)
	}
}
