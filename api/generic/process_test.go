package generic

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/weibosaver/Weibo-Saver-Logic/renderer"
)

func fixedClockExtractor() *Extractor {
	return &Extractor{
		Now: func() time.Time {
			return time.Date(2024, 4, 18, 12, 0, 0, 0, time.UTC)
		},
	}
}

func pageOf(pageHtml string) *renderer.RenderedPage {
	return &renderer.RenderedPage{
		Url:  "https://example.com/post/1",
		Html: pageHtml,
	}
}

func TestExtractPostSelectorCascadeOrder(t *testing.T) {
	// both selectors match; the higher-priority one must win
	pageHtml := `<html><head><meta property="og:description" content="meta text"/></head>
	<body><div class="weibo-text">element text</div></body></html>`
	post, err := fixedClockExtractor().ExtractPost(pageOf(pageHtml))
	if err != nil {
		t.Fatalf("Error extracting post: %v", err)
	}
	if post.Text != "element text" {
		t.Errorf("Expected the first matching selector to win, got %q", post.Text)
	}
}

func TestExtractPostMetaFallback(t *testing.T) {
	pageHtml := `<html><head>
	<meta property="og:description" content="meta text"/>
	<meta name="author" content="meta author"/>
	<meta property="og:title" content="meta title"/>
	</head><body></body></html>`
	post, err := fixedClockExtractor().ExtractPost(pageOf(pageHtml))
	if err != nil {
		t.Fatalf("Error extracting post: %v", err)
	}
	if post.Text != "meta text" {
		t.Errorf("Expected meta description content, got %q", post.Text)
	}
	if post.Author != "meta author" {
		t.Errorf("Expected meta author content, got %q", post.Author)
	}
	if post.Title != "meta title" {
		t.Errorf("Expected meta title content, got %q", post.Title)
	}
}

func TestExtractPostImages(t *testing.T) {
	pageHtml := `<html><body><div class="article-content">
	<img src="https://cdn.example.com/a.jpg"/>
	<img data-src="https://cdn.example.com/b.jpg"/>
	<img src="https://cdn.example.com/a.jpg"/>
	<img src="/relative/c.jpg"/>
	<img src="https://cdn.example.com/avatar/u.jpg"/>
	</div></body></html>`
	post, err := fixedClockExtractor().ExtractPost(pageOf(pageHtml))
	if err != nil {
		t.Fatalf("Error extracting post: %v", err)
	}

	expected := []string{
		"https://cdn.example.com/a.jpg",
		"https://cdn.example.com/b.jpg",
	}
	if len(post.Images) != len(expected) {
		t.Fatalf("Expected %d images, got %v", len(expected), post.Images)
	}
	for i, imageUrl := range expected {
		if post.Images[i] != imageUrl {
			t.Errorf("Expected %s at index %d, got %s", imageUrl, i, post.Images[i])
		}
	}
}

func TestExtractPostImagesWholePageFallback(t *testing.T) {
	// no content-specific selector matches, so every <img> is scanned
	pageHtml := `<html><body><span>
	<img data-original="https://cdn.example.com/only.jpg"/>
	</span></body></html>`
	post, err := fixedClockExtractor().ExtractPost(pageOf(pageHtml))
	if err != nil {
		t.Fatalf("Error extracting post: %v", err)
	}
	if len(post.Images) != 1 || post.Images[0] != "https://cdn.example.com/only.jpg" {
		t.Errorf("Expected the whole-page image fallback, got %v", post.Images)
	}
}

func TestExtractPostScriptVideoScanOnlyWhenSelectorsEmpty(t *testing.T) {
	withVideoElement := `<html><body>
	<video src="https://cdn.example.com/clip.mp4"></video>
	<script>var fallback = "https://cdn.example.com/hidden.mp4";</script>
	</body></html>`
	post, err := fixedClockExtractor().ExtractPost(pageOf(withVideoElement))
	if err != nil {
		t.Fatalf("Error extracting post: %v", err)
	}
	if len(post.Videos) != 1 || post.Videos[0] != "https://cdn.example.com/clip.mp4" {
		t.Errorf("Expected the selector scan result only, got %v", post.Videos)
	}

	scriptOnly := `<html><body>
	<script src="https://cdn.example.com/app.js"></script>
	<script>player.load("https://cdn.example.com/hidden.mp4");</script>
	</body></html>`
	post, err = fixedClockExtractor().ExtractPost(pageOf(scriptOnly))
	if err != nil {
		t.Fatalf("Error extracting post: %v", err)
	}
	if len(post.Videos) != 1 || post.Videos[0] != "https://cdn.example.com/hidden.mp4" {
		t.Errorf("Expected the script-body scan result, got %v", post.Videos)
	}
}

func TestResolveDate(t *testing.T) {
	extractor := fixedClockExtractor()
	testCases := map[string]string{
		`<span class="time">04-03</span>`:                   "2024-04-03",
		`<span class="time">2023-12-01 08:30:00</span>`:     "2023-12-01 08:30:00",
		`<span class="time">2023/12/01</span>`:              "2023-12-01",
		`<span class="time">yesterday-ish gibberish</span>`: "2024-04-18",
		`<span class="nothing">no date element</span>`:      "2024-04-18",
	}
	for fragment, expected := range testCases {
		pageHtml := fmt.Sprintf("<html><body>%s</body></html>", fragment)
		post, err := extractor.ExtractPost(pageOf(pageHtml))
		if err != nil {
			t.Fatalf("Error extracting post: %v", err)
		}
		if post.CreatedAt != expected {
			t.Errorf("%s: expected %s, got %s", fragment, expected, post.CreatedAt)
		}
	}
}

func TestExtractPostIdempotent(t *testing.T) {
	pageHtml := `<html><head><meta property="og:title" content="t"/></head><body>
	<div class="weibo-text">body text</div>
	<span class="time">04-03</span>
	<img src="https://cdn.example.com/a.jpg"/>
	</body></html>`
	extractor := fixedClockExtractor()

	first, err := extractor.ExtractPost(pageOf(pageHtml))
	if err != nil {
		t.Fatalf("Error extracting post: %v", err)
	}
	second, err := extractor.ExtractPost(pageOf(pageHtml))
	if err != nil {
		t.Fatalf("Error extracting post: %v", err)
	}

	if first.Text != second.Text ||
		first.Title != second.Title ||
		first.Author != second.Author ||
		first.CreatedAt != second.CreatedAt ||
		strings.Join(first.Images, ",") != strings.Join(second.Images, ",") ||
		strings.Join(first.Videos, ",") != strings.Join(second.Videos, ",") {
		t.Errorf("Expected identical extractions, got %+v and %+v", first, second)
	}
}

func TestExtractPostEmptyMarker(t *testing.T) {
	post, err := fixedClockExtractor().ExtractPost(pageOf("<html><body></body></html>"))
	if err != nil {
		t.Fatalf("An all-empty page is still a successful extraction, got %v", err)
	}
	if !strings.Contains(post.Text, "No content could be extracted") ||
		!strings.Contains(post.Text, post.SourceUrl) {
		t.Errorf("Expected the explicit empty marker with the source url, got %q", post.Text)
	}
}
