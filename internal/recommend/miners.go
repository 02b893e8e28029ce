package recommend

import (
	"encoding/json"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	gapHeadingRe  = regexp.MustCompile(`(?im)^(?:#{1,6}\s*|\*\*)?\s*(?:content gaps?|missing pages?)\b`)
	zoneHeadingRe = regexp.MustCompile(`(?i)\*\*Zone\s+\d+\*\*`)
	// **Title** (`/path`) pairs, backticks around the path optional.
	titlePathRe = regexp.MustCompile("\\*\\*([^*]+)\\*\\*\\s*\\(\\s*`?(/[^`)\\s]+)`?\\s*\\)")

	bulletRe   = regexp.MustCompile(`^\s*[-*•]\s+(.+)$`)
	numberedRe = regexp.MustCompile(`^\s*\d+[.)]\s+(.+)$`)

	jsonFenceRe  = regexp.MustCompile("(?s)```json[ \t]*\r?\n(.*?)```")
	motionHintRe = regexp.MustCompile(`(?i)hero|entrance|motion|animation`)

	linkHeadingRe = regexp.MustCompile(`(?im)^(?:#{1,6}\s*|\*\*)?\s*link(?:ing)?\s+suggestions?\b`)
	pathTokenRe   = regexp.MustCompile("(?i)[\"'`]?(/[a-z0-9][a-z0-9/_-]*)[\"'`]?")

	genericHeadingRe = regexp.MustCompile(`(?im)^(?:#{1,6}\s*|\*\*)?\s*(?:recommendations?|actions?|suggested enhancements?)\b`)

	draftPhraseRe = regexp.MustCompile(`(?is)(?:draft|unpublished|pending).{0,400}?(?:publish|review)`)
	draftNameRe   = regexp.MustCompile(`(?i)["“]([^"”]+)["”]\s+(?:page\s+)?(?:is|are)\s+(?:a\s+|an\s+|still\s+)?(?:drafts?|unpublished)`)

	probeRes = []*regexp.Regexp{
		gapHeadingRe, zoneHeadingRe, linkHeadingRe, genericHeadingRe, draftPhraseRe,
	}
)

// bulletsAfter collects list items following the first line matching
// heading, stopping at the next heading or fence. Blank lines between
// items are tolerated.
func bulletsAfter(text string, heading *regexp.Regexp) []string {
	lines := strings.Split(text, "\n")
	start := -1
	for i, line := range lines {
		if heading.MatchString(strings.TrimSpace(line)) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil
	}
	var items []string
	for _, line := range lines[start:] {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if m := bulletRe.FindStringSubmatch(line); m != nil {
			items = append(items, strings.TrimSpace(m[1]))
			continue
		}
		if m := numberedRe.FindStringSubmatch(line); m != nil {
			items = append(items, strings.TrimSpace(m[1]))
			continue
		}
		break
	}
	return items
}

func createTitle(s string) string {
	s = strings.TrimSpace(stripBold(s))
	if len(s) > createTitleLen {
		s = strings.TrimSpace(s[:createTitleLen])
	}
	return "Create: " + s
}

var boldMarkRe = regexp.MustCompile(`\*\*([^*]+)\*\*`)

func stripBold(s string) string {
	return boldMarkRe.ReplaceAllString(s, "$1")
}

// mineContentGaps combines three patterns: bullets under a content-gap
// heading, **Title** (`/path`) pairs inside Zone sections, and the same
// pairs on standalone bullet lines anywhere. The latter two share a
// pageKey dedup scope; the heading bullets do not.
func mineContentGaps(text string) []Recommendation {
	recs := []Recommendation{}

	for _, item := range bulletsAfter(text, gapHeadingRe) {
		if len(item) <= minGapChars {
			continue
		}
		recs = append(recs, Recommendation{
			Type:    TypeContentGap,
			Title:   createTitle(item),
			Summary: item,
		})
	}

	seen := map[string]struct{}{}
	addPair := func(title, path, summary string) {
		if _, dup := seen[path]; dup {
			return
		}
		seen[path] = struct{}{}
		recs = append(recs, Recommendation{
			Type:    TypeContentGap,
			Title:   createTitle(title),
			Summary: summary,
			PageKey: path,
			Payload: map[string]any{"path": path, "pageTitle": strings.TrimSpace(title)},
		})
	}

	// Zone sections first, then standalone bullets, so a page mentioned in
	// both keeps its zone context.
	for _, section := range zoneSections(text) {
		for _, m := range titlePathRe.FindAllStringSubmatch(section.body, -1) {
			if strings.TrimSpace(m[1]) == "" {
				continue
			}
			addPair(m[1], m[2], section.heading)
		}
	}
	for _, line := range strings.Split(text, "\n") {
		m := bulletRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if pm := titlePathRe.FindStringSubmatch(m[1]); pm != nil {
			addPair(pm[1], pm[2], strings.TrimSpace(stripBold(m[1])))
		}
	}
	return recs
}

type zoneSection struct {
	heading string
	body    string
}

// zoneSections splits the text into **Zone N** sections, each running
// until the next zone heading or end of text.
func zoneSections(text string) []zoneSection {
	locs := zoneHeadingRe.FindAllStringIndex(text, -1)
	out := make([]zoneSection, 0, len(locs))
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		body := text[loc[0]:end]
		heading := body
		if nl := strings.IndexByte(heading, '\n'); nl >= 0 {
			heading = heading[:nl]
		}
		out = append(out, zoneSection{heading: strings.TrimSpace(stripBold(heading)), body: body})
	}
	return out
}

// mineVisualConfigs parses fenced JSON blocks that mention hero, entrance,
// motion, or animation. Each parseable block yields one entry keyed by the
// JSON's first top-level key; unparseable blocks are skipped silently.
func mineVisualConfigs(text string) []Recommendation {
	recs := []Recommendation{}
	for _, m := range jsonFenceRe.FindAllStringSubmatch(text, -1) {
		inner := strings.TrimSpace(m[1])
		if !motionHintRe.MatchString(inner) {
			continue
		}
		var cfg map[string]any
		if err := json.Unmarshal([]byte(inner), &cfg); err != nil {
			continue
		}
		key := firstJSONKey(inner)
		if key == "" {
			continue
		}
		recs = append(recs, Recommendation{
			Type:    TypeVisualConfig,
			Title:   "Apply visual config: " + humanize(key),
			Summary: "Detected a " + key + " configuration block",
			PageKey: key,
			Payload: map[string]any{"key": key, "config": cfg},
		})
	}
	return recs
}

// firstJSONKey returns the first top-level key in document order, which a
// plain Unmarshal into a map would lose.
func firstJSONKey(raw string) string {
	dec := json.NewDecoder(strings.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return ""
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return ""
	}
	tok, err = dec.Token()
	if err != nil {
		return ""
	}
	if key, ok := tok.(string); ok {
		return key
	}
	return ""
}

func mineInternalLinks(text string) []Recommendation {
	recs := []Recommendation{}
	for _, item := range bulletsAfter(text, linkHeadingRe) {
		m := pathTokenRe.FindStringSubmatch(item)
		if m == nil {
			continue
		}
		path := m[1]
		recs = append(recs, Recommendation{
			Type:    TypeInternalLink,
			Title:   "Link to " + path,
			Summary: item,
			PageKey: path,
			Payload: map[string]any{"path": path},
		})
	}
	return recs
}

// typeKeywords classifies generic recommendation items, checked in order.
// TODO: introduce an explicit catch-all type instead of defaulting
// unmatched items to seo_improvement.
var typeKeywords = []struct {
	keyword string
	t       Type
}{
	{"content gap", TypeContentGap},
	{"missing page", TypeContentGap},
	{"motion", TypeMotionConfig},
	{"animation", TypeMotionConfig},
	{"entrance", TypeMotionConfig},
	{"visual", TypeVisualConfig},
	{"color", TypeVisualConfig},
	{"vibe", TypeVisualConfig},
	{"link", TypeInternalLink},
	{"publish", TypePublishDraft},
	{"draft", TypePublishDraft},
	{"document", TypeDocumentIntegration},
	{"integrat", TypeDocumentIntegration},
}

func detectRecommendationType(item string) Type {
	lower := strings.ToLower(item)
	for _, k := range typeKeywords {
		if strings.Contains(lower, k.keyword) {
			return k.t
		}
	}
	return TypeSEOImprovement
}

func mineGeneric(text string) []Recommendation {
	recs := []Recommendation{}
	for _, item := range bulletsAfter(text, genericHeadingRe) {
		if len(item) < minItemChars {
			continue
		}
		clean := strings.TrimSpace(stripBold(item))
		title := clean
		if len(title) > createTitleLen {
			title = strings.TrimSpace(title[:createTitleLen])
		}
		recs = append(recs, Recommendation{
			Type:    detectRecommendationType(item),
			Title:   title,
			Summary: clean,
		})
	}
	return recs
}

// mineDrafts first confirms a draft-then-publish phrase exists anywhere,
// then extracts quoted page names declared to be drafts. One entry per
// quoted name.
func mineDrafts(text string) []Recommendation {
	if !draftPhraseRe.MatchString(text) {
		return nil
	}
	recs := []Recommendation{}
	for _, m := range draftNameRe.FindAllStringSubmatch(text, -1) {
		name := strings.TrimSpace(m[1])
		if name == "" {
			continue
		}
		recs = append(recs, Recommendation{
			Type:    TypePublishDraft,
			Title:   "Publish draft: " + name,
			Summary: name + " is awaiting publication",
			Payload: map[string]any{"page": name},
		})
	}
	return recs
}

// humanize turns a machine key like "hero-entrance" into display text.
func humanize(key string) string {
	s := strings.NewReplacer("-", " ", "_", " ").Replace(key)
	s = strings.TrimSpace(s)
	if s == "" {
		return key
	}
	return cases.Title(language.English).String(s)
}
