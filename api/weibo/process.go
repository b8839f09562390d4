package weibo

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/weibosaver/Weibo-Saver-Logic/constants"
	wserrors "github.com/weibosaver/Weibo-Saver-Logic/errors"
	"github.com/weibosaver/Weibo-Saver-Logic/htmltomd"
	"github.com/weibosaver/Weibo-Saver-Logic/models"
	"github.com/weibosaver/Weibo-Saver-Logic/renderer"
)

// ExtractPost builds a normalized Post from a rendered status page's
// $render_data object.
//
// Any error returned here (missing status object, image link scan
// failure, timestamp parse failure) is meant to be routed to the
// fallback synthesizer by the caller; this extractor does not
// recover on its own.
func ExtractPost(page *renderer.RenderedPage, videoCdnPrefixes []string) (*models.Post, error) {
	if len(page.RenderData) == 0 {
		return nil, fmt.Errorf(
			"weibo error %d: %w\nurl: %s",
			constants.EXTRACTION_ERROR,
			wserrors.ErrSchemaMissing,
			page.Url,
		)
	}

	var renderData RenderData
	if err := json.Unmarshal(page.RenderData, &renderData); err != nil {
		return nil, fmt.Errorf(
			"weibo error %d: failed to parse render data, more info => %w\nurl: %s",
			constants.JSON_ERROR,
			err,
			page.Url,
		)
	}
	status := renderData.Status
	if status == nil {
		return nil, fmt.Errorf(
			"weibo error %d: %w\nurl: %s",
			constants.EXTRACTION_ERROR,
			wserrors.ErrSchemaMissing,
			page.Url,
		)
	}

	post := &models.Post{
		SourceUrl:  page.Url,
		Author:     screenNameOf(status),
		Text:       htmltomd.Convert(bodyHtmlOf(status)),
		Images:     []string{},
		Videos:     []string{},
		Provenance: models.ProvenanceStructured,
	}

	retweeted := status.RetweetedStatus
	if retweeted != nil {
		post.OriginAuthor = screenNameOf(retweeted)
		post.OriginText = htmltomd.Convert(bodyHtmlOf(retweeted))
	}

	images, videoCandidates, err := collectPics(status, retweeted)
	if err != nil {
		return nil, err
	}
	post.Images = images
	post.Videos = filterVideoUrls(
		appendStreamCandidates(videoCandidates, status, retweeted),
		videoCdnPrefixes,
	)

	createdAt, err := normalizeCreatedAt(status.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf(
			"weibo error %d: %w\nurl: %s",
			constants.EXTRACTION_ERROR,
			err,
			page.Url,
		)
	}
	post.CreatedAt = createdAt
	return post, nil
}

// Prefer the long-form content over the truncated default when the
// status is marked as long-form.
func bodyHtmlOf(status *Status) string {
	if status.IsLongText && status.LongText != nil && status.LongText.LongTextContent != "" {
		return status.LongText.LongTextContent
	}
	return status.Text
}

// A status without a nested user must not fail the extraction as
// deleted accounts still leave their posts behind.
func screenNameOf(status *Status) string {
	if status.User == nil || status.User.ScreenName == "" {
		return constants.UNKNOWN_USER
	}
	return status.User.ScreenName
}

// collectPics walks the picture list of the post (the retweeted one
// when this is a repost) and splits it into image URLs and video
// candidates. A pic whose payload carries a video source is a video
// placeholder and never enters the image list.
//
// When the outer text only shows a link-wrapped thumbnail (Weibo's
// link-only image repost quirk), the anchors of the outer text are
// scanned for the sinaurl redirect prefix and appended to the
// images.
func collectPics(status, retweeted *Status) (images, videoCandidates []string, err error) {
	pics := status.Pics
	if retweeted != nil {
		pics = retweeted.Pics
	}

	seen := make(map[string]struct{}, len(pics))
	images = []string{}
	for _, pic := range pics {
		if pic == nil {
			continue
		}
		if pic.VideoSrc != "" {
			videoCandidates = append(videoCandidates, pic.VideoSrc)
			continue
		}

		picUrl := pic.Url
		if pic.Large != nil && pic.Large.Url != "" {
			picUrl = pic.Large.Url
		}
		if picUrl == "" {
			continue
		}
		if _, ok := seen[picUrl]; ok {
			continue
		}
		seen[picUrl] = struct{}{}
		images = append(images, picUrl)
	}

	if strings.Contains(status.Text, constants.WEIBO_IMAGE_LINK_MARKER) {
		linkedImages, scanErr := scanSinaurlAnchors(status.Text)
		if scanErr != nil {
			return nil, nil, scanErr
		}
		for _, linkedImage := range linkedImages {
			if _, ok := seen[linkedImage]; ok {
				continue
			}
			seen[linkedImage] = struct{}{}
			images = append(images, linkedImage)
		}
	}
	return images, videoCandidates, nil
}

// scanSinaurlAnchors returns all anchor hrefs in the given HTML
// fragment that start with the sinaurl redirect prefix.
func scanSinaurlAnchors(textHtml string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(textHtml))
	if err != nil {
		return nil, fmt.Errorf(
			"weibo error %d: failed to parse status text, more info => %w",
			constants.HTML_ERROR,
			err,
		)
	}

	var matches []string
	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		if href, exists := s.Attr("href"); exists && strings.HasPrefix(href, constants.WEIBO_SINAURL_PREFIX) {
			matches = append(matches, href)
		}
	})
	return matches, nil
}

// appendStreamCandidates falls back to the page_info media stream
// URLs, but only when the per-picture scan yielded nothing.
func appendStreamCandidates(videoCandidates []string, status, retweeted *Status) []string {
	if len(videoCandidates) > 0 {
		return videoCandidates
	}

	videoCandidates = append(videoCandidates, streamUrlOf(status)...)
	if retweeted != nil {
		videoCandidates = append(videoCandidates, streamUrlOf(retweeted)...)
	}
	return videoCandidates
}

func streamUrlOf(status *Status) []string {
	if status.PageInfo == nil || status.PageInfo.MediaInfo == nil {
		return nil
	}

	mediaInfo := status.PageInfo.MediaInfo
	if mediaInfo.StreamUrlHd != "" {
		return []string{mediaInfo.StreamUrlHd}
	}
	if mediaInfo.StreamUrl != "" {
		return []string{mediaInfo.StreamUrl}
	}
	return nil
}

// filterVideoUrls keeps only the candidates on a known video CDN
// host. Everything else is usually a short-link wrapper that is not
// directly playable.
func filterVideoUrls(candidates, videoCdnPrefixes []string) []string {
	if len(videoCdnPrefixes) == 0 {
		videoCdnPrefixes = constants.DEFAULT_VIDEO_CDN_PREFIXES
	}

	seen := make(map[string]struct{}, len(candidates))
	videos := []string{}
	for _, candidate := range candidates {
		for _, prefix := range videoCdnPrefixes {
			if strings.HasPrefix(candidate, prefix) {
				if _, ok := seen[candidate]; !ok {
					seen[candidate] = struct{}{}
					videos = append(videos, candidate)
				}
				break
			}
		}
	}
	return videos
}

// normalizeCreatedAt parses Weibo's created_at timestamp into the
// normalized datetime format, keeping the date-only form when that
// is all the source exposed.
func normalizeCreatedAt(createdAt string) (string, error) {
	createdAt = strings.TrimSpace(createdAt)
	if parsed, err := time.Parse(constants.WEIBO_CREATED_AT_LAYOUT, createdAt); err == nil {
		return parsed.Format(constants.DATETIME_LAYOUT), nil
	}
	if parsed, err := time.Parse(constants.DATETIME_LAYOUT, createdAt); err == nil {
		return parsed.Format(constants.DATETIME_LAYOUT), nil
	}
	if parsed, err := time.Parse(constants.DATE_LAYOUT, createdAt); err == nil {
		return parsed.Format(constants.DATE_LAYOUT), nil
	}
	return "", fmt.Errorf(
		"failed to parse created_at timestamp %q",
		createdAt,
	)
}
