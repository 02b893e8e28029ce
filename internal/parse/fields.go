package parse

import (
	"regexp"
	"strings"
)

// Field matching is case-insensitive and line-anchored so a label word
// inside unrelated prose cannot satisfy it. Each field carries an ordered
// rule list: structured keys tried inside the block first, then legacy
// bolded-label prose forms anywhere in the document. A field that matches
// neither is left absent rather than defaulted, so callers can tell "not
// mentioned" from "explicitly empty". All patterns are compiled once at
// package init; extraction itself holds no mutable state.

// scalarSpec is the strict-then-legacy cascade for one scalar field.
type scalarSpec struct {
	strict []*regexp.Regexp
	prose  []*regexp.Regexp
}

func newScalarSpec(keys, labels []string) scalarSpec {
	s := scalarSpec{}
	for _, k := range keys {
		s.strict = append(s.strict, regexp.MustCompile(`(?im)^`+k+`:[ \t]*(.+)$`))
	}
	for _, l := range labels {
		s.prose = append(s.prose, regexp.MustCompile(`(?i)\*\*`+l+`:\*\*[ \t]*(.+)`))
	}
	return s
}

// find tries strict rules against the block, then prose rules against the
// whole document. First match wins.
func (s scalarSpec) find(block, doc string) string {
	for _, re := range s.strict {
		if m := re.FindStringSubmatch(block); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	for _, re := range s.prose {
		if m := re.FindStringSubmatch(doc); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// findStrict applies only the structured-key rules.
func (s scalarSpec) findStrict(block string) string {
	for _, re := range s.strict {
		if m := re.FindStringSubmatch(block); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

var (
	titleSpec     = newScalarSpec([]string{"TITLE"}, []string{"Title"})
	h1Spec        = newScalarSpec([]string{"H1_TITLE"}, []string{"H1", "H1 title"})
	metaTitleSpec = newScalarSpec([]string{"META_TITLE", "SEO_TITLE"}, []string{"Meta title", "SEO title"})
	metaDescSpec  = newScalarSpec([]string{"META_DESCRIPTION", "SEO_DESCRIPTION"}, []string{"Meta description", "SEO description"})
	seoFocusSpec  = newScalarSpec([]string{"SEO_FOCUS"}, []string{"SEO focus"})
	keywordsSpec  = newScalarSpec([]string{"SEO_KEYWORDS", "KEYWORDS"}, []string{"Keywords", "SEO keywords"})
	outlineSpec   = newScalarSpec([]string{"OUTLINE"}, nil)
	linksSpec     = newScalarSpec([]string{"INTERNAL_LINKS"}, nil)
	clusterSpec   = newScalarSpec([]string{"CLUSTER"}, []string{"Cluster"})
	zoneSpec      = newScalarSpec([]string{"ZONE"}, []string{"Zone"})
	templateSpec  = newScalarSpec([]string{"TEMPLATE"}, []string{"Template"})
	pathSpec      = newScalarSpec([]string{"PATH"}, []string{"Path"})
	prioritySpec  = newScalarSpec([]string{"PRIORITY"}, []string{"Priority"})
	summarySpec   = newScalarSpec([]string{"SUMMARY"}, []string{"Summary"})
	slugSpec      = newScalarSpec([]string{"SLUG"}, []string{"URL slug"})

	vibeSpec     = newScalarSpec([]string{`VIBE[ _]KEYWORDS`}, []string{"Vibe keywords"})
	toneSpec     = newScalarSpec([]string{`EMOTIONAL[ _]TONE`}, []string{"Emotional tone"})
	layoutsSpec  = newScalarSpec([]string{`LAYOUTS(?:[ _]DETECTED)?`}, []string{"Layouts"})
	paletteSpec  = newScalarSpec([]string{`COLOR[ _]PALETTE`}, []string{"Color palette"})
	presetSpec   = newScalarSpec([]string{`MOTION[ _]PRESET`}, []string{"Motion preset"})
	entranceSpec = newScalarSpec([]string{`ENTRANCE[ _]MOTION`}, []string{"Entrance motion"})
	hoverSpec    = newScalarSpec([]string{`HOVER[ _]MOTION`}, []string{"Hover motion"})
	ambientSpec  = newScalarSpec([]string{`AMBIENT[ _]MOTION`}, []string{"Ambient motion"})
)

// parseList accepts bracketed ([a, b, c]) or bare comma-separated forms,
// strips quotes and backticks, and drops empty tokens.
func parseList(raw string) []string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		v := strings.Trim(strings.TrimSpace(p), "\"'`")
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

var linkTokenRe = regexp.MustCompile(`^(\S+)\s*\(([^)]*)\)$`)

// parseInternalLinks reads comma-separated link tokens. Each token is
// either "slug (Anchor Text)" or a bare slug, in which case the anchor is
// humanized from the slug.
func parseInternalLinks(raw string) []InternalLink {
	tokens := parseList(raw)
	if len(tokens) == 0 {
		return nil
	}
	out := make([]InternalLink, 0, len(tokens))
	for _, tok := range tokens {
		if m := linkTokenRe.FindStringSubmatch(tok); m != nil {
			out = append(out, InternalLink{
				Slug:       cleanSlugToken(m[1]),
				AnchorText: strings.TrimSpace(m[2]),
			})
			continue
		}
		slug := cleanSlugToken(tok)
		out = append(out, InternalLink{Slug: slug, AnchorText: HumanizeSlug(slug)})
	}
	return out
}

func cleanSlugToken(s string) string {
	return strings.Trim(strings.TrimSpace(s), "`\"'")
}

func parsePageMeta(text string) PageMeta {
	block, hasBlock := firstBlock(text, pageMetaRules)

	var p PageMeta
	p.Title = titleSpec.find(block, text)
	p.MetaTitle = metaTitleSpec.find(block, text)
	p.MetaDescription = metaDescSpec.find(block, text)
	p.SEOFocus = seoFocusSpec.find(block, text)
	p.Cluster = clusterSpec.find(block, text)
	p.Zone = zoneSpec.find(block, text)
	p.Template = templateSpec.find(block, text)
	p.Path = pathSpec.find(block, text)
	p.Priority = prioritySpec.find(block, text)
	p.Summary = summarySpec.find(block, text)

	if v := keywordsSpec.find(block, text); v != "" {
		p.SEOKeywords = parseList(v)
	}
	if v := outlineSpec.findStrict(block); v != "" {
		p.Outline = parseList(v)
	}
	if v := linksSpec.findStrict(block); v != "" {
		p.InternalLinks = parseInternalLinks(v)
	}

	// H1 inherits the title only via the structured block, never through
	// the legacy prose path.
	p.H1Title = h1Spec.findStrict(block)
	if p.H1Title == "" && hasBlock {
		p.H1Title = titleSpec.findStrict(block)
	}
	if p.H1Title == "" {
		p.H1Title = h1Spec.find("", text)
	}

	// urlSlug derivation: PATH with its leading slash stripped, else an
	// explicit SLUG key, else the legacy prose form.
	if p.Path != "" {
		p.URLSlug = strings.TrimPrefix(p.Path, "/")
	} else {
		p.URLSlug = slugSpec.find(block, text)
	}

	return p
}

func parseVisualConfig(text string) VisualConfig {
	block, _ := firstBlock(text, visualConfigRules)

	var v VisualConfig
	if s := vibeSpec.find(block, text); s != "" {
		v.VibeKeywords = parseList(s)
	}
	if s := toneSpec.find(block, text); s != "" {
		v.EmotionalTone = parseList(s)
	}
	if s := layoutsSpec.find(block, text); s != "" {
		v.LayoutsDetected = parseList(s)
	}
	v.ColorPalette = paletteSpec.find(block, text)
	v.MotionPreset = presetSpec.find(block, text)
	v.EntranceMotion = entranceSpec.find(block, text)
	v.HoverMotion = hoverSpec.find(block, text)
	v.AmbientMotion = ambientSpec.find(block, text)
	return v
}
