// Package generic extracts post content from source pages that do
// not expose a machine-readable data blob. Every field is mined
// through an ordered selector cascade over the rendered markup,
// with script-body scanning as a last resort for videos.
package generic

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/weibosaver/Weibo-Saver-Logic/constants"
	"github.com/weibosaver/Weibo-Saver-Logic/models"
	"github.com/weibosaver/Weibo-Saver-Logic/renderer"
)

type Extractor struct {
	// Now is the clock used for date synthesis. Tests pin it so
	// repeated extractions of the same markup stay byte-identical.
	Now func() time.Time
}

func NewExtractor() *Extractor {
	return &Extractor{Now: time.Now}
}

// ExtractPost mines a normalized Post out of the page markup.
//
// A page where every strategy comes up empty is still a successful
// extraction: the post carries an explicit "no content" marker text
// instead of an error, since the page itself was reachable.
func (e *Extractor) ExtractPost(page *renderer.RenderedPage) (*models.Post, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.Html))
	if err != nil {
		return nil, fmt.Errorf(
			"generic error %d: failed to parse page, more info => %w\nurl: %s",
			constants.HTML_ERROR,
			err,
			page.Url,
		)
	}

	post := &models.Post{
		SourceUrl:  page.Url,
		Title:      resolveFirst(doc, titleSelectors),
		Author:     resolveFirst(doc, authorSelectors),
		Text:       resolveFirst(doc, textSelectors),
		Images:     collectImages(doc),
		Videos:     collectVideos(doc),
		CreatedAt:  e.resolveDate(doc),
		Provenance: models.ProvenanceStructured,
	}
	if post.Author == "" {
		post.Author = constants.UNKNOWN_USER
	}
	if post.Text == "" {
		// kept as an explicit no-op, see bestContentBlock
		post.Text = bestContentBlock(doc)
	}

	if post.Text == "" && len(post.Images) == 0 && len(post.Videos) == 0 {
		post.Text = fmt.Sprintf(
			"No content could be extracted from %s",
			page.Url,
		)
	}
	return post, nil
}

// resolveFirst evaluates the candidates in priority order and
// returns the first non-empty trimmed result. First match wins,
// there is no best-match scoring.
func resolveFirst(doc *goquery.Document, candidates []selectorCandidate) string {
	for _, candidate := range candidates {
		sel := doc.Find(candidate.selector).First()
		if sel.Length() == 0 {
			continue
		}

		var content string
		if candidate.attr != "" {
			content, _ = sel.Attr(candidate.attr)
		} else {
			content = sel.Text()
		}
		if content = strings.TrimSpace(content); content != "" {
			return content
		}
	}
	return ""
}

// mediaSrcOf reads the media source attributes of an element in
// preference order and only accepts absolute URLs.
func mediaSrcOf(sel *goquery.Selection) string {
	for _, attr := range mediaSrcAttrs {
		val, exists := sel.Attr(attr)
		if !exists {
			continue
		}
		val = strings.TrimSpace(val)
		if strings.HasPrefix(val, "http://") || strings.HasPrefix(val, "https://") {
			return val
		}
	}
	return ""
}

func isBlockedImage(imageUrl string) bool {
	for _, blocked := range constants.IMAGE_BLOCKLIST_SUBSTRS {
		if strings.Contains(imageUrl, blocked) {
			return true
		}
	}
	return false
}

func collectImages(doc *goquery.Document) []string {
	images := scanMediaElements(doc, imageSelectors, isBlockedImage)
	if len(images) == 0 {
		// no content-specific selector matched, fall back to
		// every image element on the page
		images = scanMediaElements(doc, []string{"img"}, isBlockedImage)
	}
	return images
}

func collectVideos(doc *goquery.Document) []string {
	videos := scanMediaElements(doc, videoSelectors, nil)

	if metaVideo := resolveFirst(doc, videoMetaSelectors); metaVideo != "" {
		videos = appendUnique(videos, metaVideo)
	}

	if len(videos) == 0 {
		// last resort: mine inline script bodies for video URLs
		videos = scanScriptBodies(doc)
	}
	return videos
}

func scanMediaElements(doc *goquery.Document, selectors []string, blocked func(string) bool) []string {
	seen := make(map[string]struct{})
	results := []string{}
	for _, selector := range selectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			mediaUrl := mediaSrcOf(sel)
			if mediaUrl == "" {
				return
			}
			if blocked != nil && blocked(mediaUrl) {
				return
			}
			if _, ok := seen[mediaUrl]; ok {
				return
			}
			seen[mediaUrl] = struct{}{}
			results = append(results, mediaUrl)
		})
	}
	return results
}

// scanScriptBodies mines every non-external inline script for
// URL-shaped substrings ending in a known video file extension.
func scanScriptBodies(doc *goquery.Document) []string {
	seen := make(map[string]struct{})
	results := []string{}
	doc.Find("script").Each(func(_ int, sel *goquery.Selection) {
		if _, isExternal := sel.Attr("src"); isExternal {
			return
		}
		for _, videoUrl := range constants.SCRIPT_VIDEO_URL_REGEX.FindAllString(sel.Text(), -1) {
			if _, ok := seen[videoUrl]; ok {
				continue
			}
			seen[videoUrl] = struct{}{}
			results = append(results, videoUrl)
		}
	})
	return results
}

func appendUnique(slice []string, value string) []string {
	for _, existing := range slice {
		if existing == value {
			return slice
		}
	}
	return append(slice, value)
}

// resolveDate parses the publish date off the page.
//
// Stage one handles the site's abbreviated "MM-DD" form by
// synthesizing the current year; stage two tries the generic
// layouts; when everything fails the current date is used. An
// unparsable date never fails the extraction.
func (e *Extractor) resolveDate(doc *goquery.Document) string {
	now := e.Now()
	raw := resolveFirst(doc, dateSelectors)
	if raw == "" {
		return now.Format(constants.DATE_LAYOUT)
	}

	if matches := constants.MONTH_DAY_REGEX.FindStringSubmatch(raw); matches != nil {
		month, _ := strconv.Atoi(matches[1])
		day, _ := strconv.Atoi(matches[2])
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			return fmt.Sprintf("%d-%02d-%02d", now.Year(), month, day)
		}
	}

	genericLayouts := []string{
		constants.DATETIME_LAYOUT,
		constants.DATE_LAYOUT,
		time.RFC3339,
		"2006/01/02 15:04:05",
		"2006/01/02",
		"2006年01月02日",
	}
	for _, layout := range genericLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			if strings.Contains(layout, "15:04:05") || layout == time.RFC3339 {
				return parsed.Format(constants.DATETIME_LAYOUT)
			}
			return parsed.Format(constants.DATE_LAYOUT)
		}
	}
	return now.Format(constants.DATE_LAYOUT)
}

// bestContentBlock was meant to pick the DOM element with the most
// own text among density-scanned candidates. The selection criteria
// were never settled, so it intentionally yields nothing and the
// caller proceeds to the empty-content marker instead.
func bestContentBlock(_ *goquery.Document) string {
	return ""
}
