package recommend

import (
	"strings"
	"testing"
)

func byType(recs []Recommendation, t Type) []Recommendation {
	var out []Recommendation
	for _, r := range recs {
		if r.Type == t {
			out = append(out, r)
		}
	}
	return out
}

func TestMine_ZonePairs(t *testing.T) {
	in := "**Zone 1**: Science cluster\n- **Ocean Science** (`/science/ocean`) is missing\n"
	recs := Mine(in)
	gaps := byType(recs, TypeContentGap)
	if len(gaps) != 1 {
		t.Fatalf("gaps = %+v", gaps)
	}
	if gaps[0].PageKey != "/science/ocean" {
		t.Fatalf("pageKey = %q", gaps[0].PageKey)
	}
	if gaps[0].Title != "Create: Ocean Science" {
		t.Fatalf("title = %q", gaps[0].Title)
	}
}

func TestMine_ZoneAndBulletShareDedupScope(t *testing.T) {
	in := "**Zone 2**\n**Tide Care** (`/care/tides`)\n\nElsewhere:\n- **Tide Care** (`/care/tides`) again\n- **Salt Guide** (`/guides/salt`)\n"
	recs := Mine(in)
	keys := map[string]int{}
	for _, r := range byType(recs, TypeContentGap) {
		if r.PageKey != "" {
			keys[r.PageKey]++
		}
	}
	if keys["/care/tides"] != 1 {
		t.Fatalf("expected /care/tides deduplicated by pageKey, got %d", keys["/care/tides"])
	}
	if keys["/guides/salt"] != 1 {
		t.Fatalf("expected /guides/salt mined once, got %d", keys["/guides/salt"])
	}
}

func TestMine_ContentGapHeadingBullets(t *testing.T) {
	in := "## Content Gaps\n- A dedicated mineral sourcing page for wholesale buyers\n- tiny\n"
	recs := Mine(in)
	gaps := byType(recs, TypeContentGap)
	if len(gaps) != 1 {
		t.Fatalf("gaps = %+v", gaps)
	}
	if !strings.HasPrefix(gaps[0].Title, "Create: ") {
		t.Fatalf("title = %q", gaps[0].Title)
	}
	if len(gaps[0].Title) > len("Create: ")+60 {
		t.Fatalf("title too long: %q", gaps[0].Title)
	}
}

func TestMine_VisualConfigFirstKey(t *testing.T) {
	in := "```json\n{\"hero-entrance\": {\"motion\": \"fade\"}, \"other\": 1}\n```"
	recs := Mine(in)
	vcs := byType(recs, TypeVisualConfig)
	if len(vcs) != 1 {
		t.Fatalf("visual configs = %+v", vcs)
	}
	if vcs[0].PageKey != "hero-entrance" {
		t.Fatalf("first key = %q", vcs[0].PageKey)
	}
	if vcs[0].Title != "Apply visual config: Hero Entrance" {
		t.Fatalf("title = %q", vcs[0].Title)
	}
}

func TestMine_VisualConfigSkipsBadJSON(t *testing.T) {
	in := "```json\n{\"motion\": broken}\n```"
	if recs := byType(Mine(in), TypeVisualConfig); len(recs) != 0 {
		t.Fatalf("bad JSON must be skipped, got %+v", recs)
	}
}

func TestMine_VisualConfigIgnoresUnrelatedJSON(t *testing.T) {
	in := "```json\n{\"price\": 12}\n```"
	if recs := byType(Mine(in), TypeVisualConfig); len(recs) != 0 {
		t.Fatalf("non-motion JSON must be ignored, got %+v", recs)
	}
}

func TestMine_LinkSuggestions(t *testing.T) {
	in := "### Linking Suggestions\n- Add a link to `/science/ocean` from the shop page\n- Point the footer at \"/care/tides\"\n"
	recs := byType(Mine(in), TypeInternalLink)
	if len(recs) != 2 {
		t.Fatalf("links = %+v", recs)
	}
	if recs[0].PageKey != "/science/ocean" || recs[1].PageKey != "/care/tides" {
		t.Fatalf("pageKeys = %q, %q", recs[0].PageKey, recs[1].PageKey)
	}
}

func TestMine_LinkSuggestionsMixedCasePaths(t *testing.T) {
	in := "### Link Suggestions\n- Link the nav to `/Care/Tides`\n"
	recs := byType(Mine(in), TypeInternalLink)
	if len(recs) != 1 {
		t.Fatalf("links = %+v", recs)
	}
	if recs[0].PageKey != "/Care/Tides" {
		t.Fatalf("pageKey = %q", recs[0].PageKey)
	}
}

func TestMine_GenericClassification(t *testing.T) {
	in := "## Recommendations\n" +
		"- Tune the entrance animation on the hero section\n" +
		"- Improve meta descriptions across the shop cluster\n" +
		"- short\n"
	recs := Mine(in)
	var motion, seo int
	for _, r := range recs {
		switch r.Type {
		case TypeMotionConfig:
			motion++
		case TypeSEOImprovement:
			seo++
		}
	}
	if motion != 1 {
		t.Fatalf("expected 1 motion_config, got %d (%+v)", motion, recs)
	}
	// No keyword matches: falls back to seo_improvement.
	if seo != 1 {
		t.Fatalf("expected 1 seo_improvement default, got %d (%+v)", seo, recs)
	}
}

func TestMine_Drafts(t *testing.T) {
	in := "Note: \"Tide Care\" is still unpublished and \"Salt Guide\" is a draft. Please publish them after review.\n"
	recs := byType(Mine(in), TypePublishDraft)
	if len(recs) != 2 {
		t.Fatalf("drafts = %+v", recs)
	}
	if recs[0].Title != "Publish draft: Tide Care" {
		t.Fatalf("title = %q", recs[0].Title)
	}
}

func TestMine_DraftsRequirePublishPhrase(t *testing.T) {
	in := "\"Tide Care\" is unpublished." // no publish/review follow-up
	if recs := byType(Mine(in), TypePublishDraft); len(recs) != 0 {
		t.Fatalf("expected no drafts without a publish phrase, got %+v", recs)
	}
}

func TestMine_EmptyAndGarbage(t *testing.T) {
	for _, s := range []string{"", "   ", "plain prose", "\x00\xfe"} {
		if recs := Mine(s); len(recs) != 0 {
			t.Fatalf("Mine(%q) = %+v, want empty", s, recs)
		}
	}
}

func TestHas(t *testing.T) {
	cases := []struct {
		raw  string
		want bool
	}{
		{"plain prose with nothing actionable", false},
		{"## Content Gaps\n- something missing here", true},
		{"**Zone 3** overview", true},
		{"### Link Suggestions\n- `/a/b`", true},
		{"## Recommendations\n- do a thing", true},
		{"\"X\" is a draft, please publish it", true},
	}
	for _, c := range cases {
		if got := Has(c.raw); got != c.want {
			t.Fatalf("Has(%q) = %v, want %v", c.raw, got, c.want)
		}
	}
}

func TestDetectRecommendationType(t *testing.T) {
	cases := []struct {
		item string
		want Type
	}{
		{"fix the entrance animation", TypeMotionConfig},
		{"adjust the color palette", TypeVisualConfig},
		{"add a link between pages", TypeInternalLink},
		{"publish the pending pages", TypePublishDraft},
		{"integrate the sourcing document", TypeDocumentIntegration},
		{"tighten headline wording", TypeSEOImprovement},
	}
	for _, c := range cases {
		if got := detectRecommendationType(c.item); got != c.want {
			t.Fatalf("detectRecommendationType(%q) = %q, want %q", c.item, got, c.want)
		}
	}
}
