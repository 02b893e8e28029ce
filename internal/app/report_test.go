package app

import (
	"encoding/json"
	"strings"
	"testing"
)

const sampleResponse = "Here is the updated plan.\n\n" +
	"```page-metadata\n" +
	"TITLE: Ocean Minerals\n" +
	"PATH: /shop/ocean-minerals\n" +
	"SEO_KEYWORDS: [sea moss, minerals]\n" +
	"```\n\n" +
	"```visual-config\n" +
	"VIBE KEYWORDS: [calm, mineral]\n" +
	"COLOR PALETTE: deep teal\n" +
	"```\n\n" +
	"## Content Gaps\n" +
	"- A dedicated sourcing page for wholesale buyers\n"

func TestBuildReport_FullSample(t *testing.T) {
	rep := BuildReport(sampleResponse)

	if !rep.HasEnhancementSignal || !rep.HasRecommendationSignal {
		t.Fatalf("signals = %v/%v", rep.HasEnhancementSignal, rep.HasRecommendationSignal)
	}
	if rep.Parsed.Page.Title != "Ocean Minerals" {
		t.Fatalf("parsed title = %q", rep.Parsed.Page.Title)
	}
	if len(rep.Enhancements) == 0 || !rep.HasApplyableContent {
		t.Fatalf("expected enhancements, got %+v", rep.Enhancements)
	}
	if len(rep.Recommendations) == 0 {
		t.Fatalf("expected recommendations")
	}
}

func TestBuildReport_EmptyInputKeepsShape(t *testing.T) {
	rep := BuildReport("")

	if rep.HasEnhancementSignal || rep.HasRecommendationSignal || rep.HasApplyableContent {
		t.Fatalf("empty input must carry no signal: %+v", rep)
	}
	if rep.Enhancements == nil || rep.Recommendations == nil {
		t.Fatalf("slices must be non-nil for JSON consumers")
	}

	b, err := rep.Encode(false)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(string(b), `"enhancements":[]`) {
		t.Fatalf("enhancements must encode as [], got %s", b)
	}
	if !strings.Contains(string(b), `"recommendations":[]`) {
		t.Fatalf("recommendations must encode as [], got %s", b)
	}
}

func TestReport_EncodeRoundTrip(t *testing.T) {
	rep := BuildReport(sampleResponse)

	b, err := rep.Encode(true)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	var decoded Report
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if decoded.Parsed.Page.Title != rep.Parsed.Page.Title {
		t.Fatalf("title lost in round trip")
	}
	if len(decoded.Enhancements) != len(rep.Enhancements) {
		t.Fatalf("enhancements lost in round trip")
	}
}
