package models

// Provenance records whether a post was extracted from the source
// page or synthesized after a fetch/extraction failure.
type Provenance int

const (
	ProvenanceStructured Provenance = iota
	ProvenanceFallback
)

func (p Provenance) String() string {
	if p == ProvenanceFallback {
		return "fallback"
	}
	return "structured"
}

// Post is the normalized content record produced by extraction.
// It is constructed once per pipeline run and never mutated afterwards.
type Post struct {
	// SourceUrl is the resolved canonical status URL.
	SourceUrl string

	// Title is the page/post title when the source exposes one,
	// empty otherwise. The renderer collaborator falls back to the
	// mail subject when empty.
	Title string

	// Author is the poster's handle. On fallback records it is the
	// "Error" sentinel, not a guess.
	Author string

	// OriginAuthor is the original poster's handle when this is a
	// repost, empty otherwise.
	OriginAuthor string

	// Text is the post body as Markdown. On fallback records it is
	// the stringified error plus a uniqueness discriminator.
	Text string

	// OriginText is the reposted/quoted body as Markdown. On
	// fallback records it preserves the raw mail body verbatim.
	OriginText string

	// Images and Videos are deduplicated media URLs in discovery
	// order. Always non-nil, possibly empty.
	Images []string
	Videos []string

	// CreatedAt is "2006-01-02 15:04:05" or "2006-01-02" depending
	// on the precision the source exposed.
	CreatedAt string

	Provenance Provenance
}

// MailMessage is the record handed over by the inbox-monitoring
// collaborator. Only RawHtmlBody is needed by the core pipeline.
type MailMessage struct {
	SenderAddress string
	Subject       string
	RawHtmlBody   string
}

// SavedPost pairs the finished post with the local filenames of the
// media that was successfully downloaded for it.
type SavedPost struct {
	Post           *Post
	ImageFilenames []string
	VideoFilenames []string
}
