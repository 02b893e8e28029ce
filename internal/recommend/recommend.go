// Package recommend mines site-level suggestions out of free-form
// assistant text: missing pages, visual and motion configs, internal
// links, publish hints. The detection families run independently because
// upstream formatting varies page to page; requiring signals to agree
// would leave most real responses with zero recommendations.
// Over-triggering is accepted and pushed to a human reviewer downstream.
package recommend

import (
	"github.com/bigmindhq/bigmind-extract/internal/normalize"
)

// Type classifies a mined recommendation.
type Type string

const (
	TypeContentGap          Type = "content_gap"
	TypeVisualConfig        Type = "visual_config"
	TypeMotionConfig        Type = "motion_config"
	TypeInternalLink        Type = "internal_link"
	TypePublishDraft        Type = "publish_draft"
	TypeSEOImprovement      Type = "seo_improvement"
	TypeDocumentIntegration Type = "document_integration"
)

// Recommendation is a page- or site-scoped suggestion not tied to a
// single field. PageKey identifies the affected page when one is known.
type Recommendation struct {
	Type    Type           `json:"type"`
	Title   string         `json:"title"`
	Summary string         `json:"summary"`
	PageKey string         `json:"pageKey,omitempty"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Thresholds deciding whether a list item is real content. The values are
// inherited behavior; they are named here so they can be reviewed in one
// place.
const (
	minGapChars    = 5
	minItemChars   = 10
	createTitleLen = 60
)

// Mine runs all detection families over the normalized text and returns
// their combined findings in family order. It never fails; the worst
// outcome is an empty slice.
func Mine(raw string) []Recommendation {
	text := normalize.Normalize(raw)
	recs := []Recommendation{}
	recs = append(recs, mineContentGaps(text)...)
	recs = append(recs, mineVisualConfigs(text)...)
	recs = append(recs, mineInternalLinks(text)...)
	recs = append(recs, mineGeneric(text)...)
	recs = append(recs, mineDrafts(text)...)
	return recs
}

// Has is the cheap probe callers use to skip Mine entirely when the text
// carries no recommendation signal.
func Has(raw string) bool {
	text := normalize.Normalize(raw)
	for _, re := range probeRes {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
