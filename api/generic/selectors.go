package generic

// A selector candidate for one field. Candidates are tried in
// order; the first one yielding non-empty trimmed content wins.
// Element selectors read the element's text, meta-tag selectors
// read the given attribute instead (usually "content").
type selectorCandidate struct {
	selector string
	attr     string
}

var textSelectors = []selectorCandidate{
	{selector: ".weibo-text"},
	{selector: ".post-content"},
	{selector: ".article-content"},
	{selector: "article .content"},
	{selector: "#articleContent"},
	{selector: `meta[property="og:description"]`, attr: "content"},
	{selector: `meta[name="description"]`, attr: "content"},
}

var titleSelectors = []selectorCandidate{
	{selector: "h1.title"},
	{selector: ".article-title"},
	{selector: `meta[property="og:title"]`, attr: "content"},
	{selector: "title"},
}

var authorSelectors = []selectorCandidate{
	{selector: ".author-name"},
	{selector: ".user-name"},
	{selector: ".nickname"},
	{selector: `meta[name="author"]`, attr: "content"},
	{selector: `meta[property="article:author"]`, attr: "content"},
}

var dateSelectors = []selectorCandidate{
	{selector: ".publish-time"},
	{selector: ".post-time"},
	{selector: ".time"},
	{selector: "time"},
	{selector: `meta[property="article:published_time"]`, attr: "content"},
}

var imageSelectors = []string{
	".article-content img",
	".post-content img",
	".weibo-media img",
	"article img",
}

var videoSelectors = []string{
	"video source",
	"video",
	".video-player video",
}

var videoMetaSelectors = []selectorCandidate{
	{selector: `meta[property="og:video:url"]`, attr: "content"},
	{selector: `meta[property="og:video"]`, attr: "content"},
}

// Attribute preference order when mining media elements. Lazy-load
// attributes are checked after src since some sites only fill the
// data-* ones until the element scrolls into view.
var mediaSrcAttrs = []string{"src", "data-src", "data-original", "data-url"}
