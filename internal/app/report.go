package app

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/bigmindhq/bigmind-extract/internal/enhance"
	"github.com/bigmindhq/bigmind-extract/internal/parse"
	"github.com/bigmindhq/bigmind-extract/internal/recommend"
)

// Report is the single JSON artifact downstream CMS tooling consumes: the
// parsed response plus proposed enhancements and mined recommendations.
type Report struct {
	Parsed                  parse.Response             `json:"parsed"`
	Enhancements            []enhance.Enhancement      `json:"enhancements"`
	HasApplyableContent     bool                       `json:"hasApplyableContent"`
	Recommendations         []recommend.Recommendation `json:"recommendations"`
	HasEnhancementSignal    bool                       `json:"hasEnhancementSignal"`
	HasRecommendationSignal bool                       `json:"hasRecommendationSignal"`
}

// BuildReport runs the full pipeline over one raw response. The cheap
// presence probes gate the heavier extractors; when neither fires, the
// report still carries a valid empty shape.
func BuildReport(raw string) Report {
	rep := Report{
		Enhancements:    []enhance.Enhancement{},
		Recommendations: []recommend.Recommendation{},
	}
	rep.HasEnhancementSignal = enhance.HasContent(raw)
	rep.HasRecommendationSignal = recommend.Has(raw)

	rep.Parsed = parse.Parse(raw)
	if rep.HasEnhancementSignal {
		res := enhance.Extract(raw, rep.Parsed)
		rep.Enhancements = res.Enhancements
		rep.HasApplyableContent = res.HasApplyableContent
	} else {
		log.Debug().Msg("no enhancement signal; skipping synthesis")
	}
	if rep.HasRecommendationSignal {
		rep.Recommendations = recommend.Mine(raw)
	} else {
		log.Debug().Msg("no recommendation signal; skipping mining")
	}

	log.Debug().
		Int("enhancements", len(rep.Enhancements)).
		Int("recommendations", len(rep.Recommendations)).
		Int("imagePrompts", len(rep.Parsed.ImagePrompts)).
		Msg("report built")
	return rep
}

// Encode marshals the report, optionally indented.
func (r Report) Encode(pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(r, "", "  ")
	}
	return json.Marshal(r)
}
