package enhance

import (
	"strings"
	"testing"

	"github.com/bigmindhq/bigmind-extract/internal/parse"
)

func extract(t *testing.T, raw string) Result {
	t.Helper()
	return Extract(raw, parse.Parse(raw))
}

func TestExtract_TitleFirstWithBlockConfidence(t *testing.T) {
	res := extract(t, "```page-metadata\nTITLE: Ocean Minerals\nPATH: /shop/ocean-minerals\n```")
	if !res.HasApplyableContent || len(res.Enhancements) == 0 {
		t.Fatalf("expected applyable content, got %+v", res)
	}
	first := res.Enhancements[0]
	if first.Type != TypeTitle || first.Content != "Ocean Minerals" {
		t.Fatalf("first enhancement = %+v", first)
	}
	if first.Confidence < 80 || first.Confidence > 90 {
		t.Fatalf("block field confidence out of range: %d", first.Confidence)
	}
}

func TestExtract_DedupByContent(t *testing.T) {
	// The structured title and the prose suggestion carry the same string;
	// only the first may survive.
	raw := "```page-metadata\nTITLE: Ocean Minerals\n```\n\n**Suggested Title:** Ocean Minerals\n"
	res := extract(t, raw)

	seen := map[string]int{}
	for _, e := range res.Enhancements {
		seen[e.Content]++
	}
	for content, n := range seen {
		if n > 1 {
			t.Fatalf("content %q appears %d times", content, n)
		}
	}
	for _, e := range res.Enhancements {
		if e.Content == "Ocean Minerals" && e.Confidence != 90 {
			t.Fatalf("structured title should win the dedup, got confidence %d", e.Confidence)
		}
	}
}

func TestExtract_SuggestionPhrasesScoreLower(t *testing.T) {
	res := extract(t, "**Suggested Summary:** A calm page about tides.\n")
	var found bool
	for _, e := range res.Enhancements {
		if e.Type == TypeSummary && strings.Contains(e.Content, "calm page") {
			found = true
			if e.Confidence != 70 {
				t.Fatalf("suggestion confidence = %d, want 70", e.Confidence)
			}
		}
	}
	if !found {
		t.Fatalf("suggestion not extracted: %+v", res.Enhancements)
	}
}

func TestExtract_KeywordPerEntry(t *testing.T) {
	res := extract(t, "```page-metadata\nSEO_KEYWORDS: [sea moss, tides]\n```")
	var kws []string
	for _, e := range res.Enhancements {
		if e.Type == TypeKeyword {
			kws = append(kws, e.Content)
		}
	}
	if len(kws) != 2 || kws[0] != "sea moss" || kws[1] != "tides" {
		t.Fatalf("keyword enhancements = %v", kws)
	}
}

func TestExtract_ImagePromptCarriesSlotData(t *testing.T) {
	raw := "```html\n<div class=\"x\">\n<!-- AI LAYOUT PROMPT: glowing droplet -->\n</div>\n```"
	res := extract(t, raw)
	var found bool
	for _, e := range res.Enhancements {
		if e.Type == TypeImagePrompt {
			found = true
			if e.Data["slotType"] != "hero" {
				t.Fatalf("slotType data = %v", e.Data)
			}
		}
	}
	if !found {
		t.Fatalf("image prompt enhancement missing: %+v", res.Enhancements)
	}
}

func TestExtract_EmptyInput(t *testing.T) {
	res := extract(t, "")
	if res.HasApplyableContent || len(res.Enhancements) != 0 {
		t.Fatalf("empty input must yield no enhancements, got %+v", res)
	}
}

func TestExtract_HasApplyableContentIsExact(t *testing.T) {
	for _, raw := range []string{"", "plain prose", "```page-metadata\nTITLE: A\n```"} {
		res := extract(t, raw)
		if res.HasApplyableContent != (len(res.Enhancements) > 0) {
			t.Fatalf("hasApplyableContent mismatch for %q: %+v", raw, res)
		}
	}
}

func TestHasContent(t *testing.T) {
	cases := []struct {
		raw  string
		want bool
	}{
		{"This is a plain prose paragraph with no blocks at all.", false},
		{"", false},
		{"```page-metadata\nTITLE: A\n```", true},
		{"**Suggested Title:** Better Name", true},
		{"``<code class=\"x\">visual-config\nVIBE KEYWORDS: [calm]", true},
		{"<div class=\"hero\">markup body</div>", true},
	}
	for _, c := range cases {
		if got := HasContent(c.raw); got != c.want {
			t.Fatalf("HasContent(%q) = %v, want %v", c.raw, got, c.want)
		}
	}
}

func TestHasContent_LegacyProseLabels(t *testing.T) {
	raw := "**Title:** Ocean Minerals\n**Meta description:** Minerals from cold northern water.\n"
	if !HasContent(raw) {
		t.Fatalf("legacy prose labels must register as signal")
	}
	res := extract(t, raw)
	if len(res.Enhancements) < 2 {
		t.Fatalf("legacy prose fields not extracted: %+v", res.Enhancements)
	}
}

func TestHasContent_AtmosphereHeading(t *testing.T) {
	raw := "**V. SIGNATURE SENSORY ATMOSPHERE**\nSalt air and cold light.\n"
	if !HasContent(raw) {
		t.Fatalf("atmosphere heading must register as signal")
	}
}

func TestExtract_RepeatedSuggestionPhrases(t *testing.T) {
	raw := "**Suggested Title:** Ocean Minerals\nSome prose in between.\n**Suggested Title:** Minerals of the Deep\n"
	res := extract(t, raw)
	var titles []string
	for _, e := range res.Enhancements {
		if e.Type == TypeTitle && e.Confidence == 70 {
			titles = append(titles, e.Content)
		}
	}
	if len(titles) != 2 {
		t.Fatalf("expected both suggested titles, got %v", titles)
	}
}

func TestExtract_NeverPanics(t *testing.T) {
	samples := []string{"", "\x00\xfe", strings.Repeat("TITLE: x\n", 100), "```json\n{bad"}
	for _, s := range samples {
		_ = Extract(s, parse.Parse(s)) // must not panic
	}
}
