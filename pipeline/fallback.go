package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/weibosaver/Weibo-Saver-Logic/constants"
	"github.com/weibosaver/Weibo-Saver-Logic/models"
)

// SynthesizeFallbackPost converts an extraction or fetch failure
// into a degraded but valid post so the pipeline never loses the
// raw source content. It always succeeds and never retries.
//
// The random discriminator appended to the text keeps the saved
// filenames unique across repeated failures of the same source.
// The author is a fixed sentinel signaling failure, not a guess,
// and the raw mail body is preserved verbatim in OriginText.
func SynthesizeFallbackPost(extractionErr error, sourceUrl, rawBody string) *models.Post {
	return &models.Post{
		SourceUrl:  sourceUrl,
		Author:     constants.FALLBACK_AUTHOR,
		Text:       fmt.Sprintf("%v [%s]", extractionErr, uuid.NewString()),
		OriginText: rawBody,
		Images:     []string{},
		Videos:     []string{},
		CreatedAt:  time.Now().Format(constants.DATETIME_LAYOUT),
		Provenance: models.ProvenanceFallback,
	}
}
