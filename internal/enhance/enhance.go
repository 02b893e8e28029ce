// Package enhance turns a parsed assistant response into a flat list of
// proposed field updates with confidence scores. It only proposes values;
// persisting them is the caller's concern. Extraction is total: a field
// that fails a sub-parse is absent, never an error.
package enhance

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bigmindhq/bigmind-extract/internal/normalize"
	"github.com/bigmindhq/bigmind-extract/internal/parse"
)

// Type tags a proposed enhancement. The set is closed; downstream apply
// endpoints dispatch on it.
type Type string

const (
	TypeTitle          Type = "title"
	TypeH1Title        Type = "h1_title"
	TypeSEOTitle       Type = "seo_title"
	TypeSEODescription Type = "seo_description"
	TypeSEOFocus       Type = "seo_focus"
	TypeKeyword        Type = "keyword"
	TypeCluster        Type = "cluster"
	TypeZone           Type = "zone"
	TypeTemplate       Type = "template"
	TypePath           Type = "path"
	TypePriority       Type = "priority"
	TypeSummary        Type = "summary"
	TypeHeroContent    Type = "hero_content"
	TypeVisualTags     Type = "visual_tags"
	TypeEmotionalTone  Type = "emotional_tone"
	TypeColorPalette   Type = "color_palette"
	TypeMotionPreset   Type = "motion_preset"
	TypeMotionConfig   Type = "motion_config"
	TypeImagePrompt    Type = "image_prompt"
	TypeInternalLink   Type = "internal_link"
	TypeOutline        Type = "outline"
	TypeAtmosphere     Type = "atmosphere"
)

// Enhancement is one proposed field update. Confidence is 0-100 and
// reflects source reliability: structured-block fields score higher than
// prose suggestions.
type Enhancement struct {
	ID         string         `json:"id"`
	Type       Type           `json:"type"`
	FieldName  string         `json:"fieldName,omitempty"`
	Content    string         `json:"content"`
	Reason     string         `json:"reason,omitempty"`
	Confidence int            `json:"confidence"`
	Data       map[string]any `json:"data,omitempty"`
}

// Result is the synthesis output. HasApplyableContent is exactly
// len(Enhancements) > 0.
type Result struct {
	Enhancements        []Enhancement `json:"enhancements"`
	HasApplyableContent bool          `json:"hasApplyableContent"`
}

// Confidence tiers by source reliability.
const (
	confBlockPrimary   = 90
	confBlockSecondary = 88
	confPrompt         = 86
	confList           = 85
	confMotion         = 84
	confLink           = 83
	confVisual         = 82
	confBody           = 80
	confSuggestion     = 70
)

// builder accumulates enhancements with the cross-record dedup rule: no
// two enhancements in one call may share an identical content string. The
// check is exact string equality on a set, not semantic.
type builder struct {
	out  []Enhancement
	seen map[string]struct{}
}

func newBuilder() *builder {
	return &builder{out: []Enhancement{}, seen: map[string]struct{}{}}
}

func (b *builder) add(t Type, field, content, reason string, confidence int, data map[string]any) {
	content = strings.TrimSpace(content)
	if content == "" {
		return
	}
	if _, dup := b.seen[content]; dup {
		return
	}
	b.seen[content] = struct{}{}
	b.out = append(b.out, Enhancement{
		ID:         fmt.Sprintf("enh-%s-%d", t, len(b.out)+1),
		Type:       t,
		FieldName:  field,
		Content:    content,
		Reason:     reason,
		Confidence: confidence,
		Data:       data,
	})
}

// suggestionPatterns are the legacy standalone prose forms, scanned after
// all field-derived enhancements at a flat lower confidence.
var suggestionPatterns = []struct {
	re    *regexp.Regexp
	t     Type
	field string
}{
	{regexp.MustCompile(`(?i)\*\*Suggested Title:\*\*[ \t]*(.+)`), TypeTitle, "title"},
	{regexp.MustCompile(`(?i)\*\*Suggested H1:\*\*[ \t]*(.+)`), TypeH1Title, "h1Title"},
	{regexp.MustCompile(`(?i)\*\*Suggested Meta Description:\*\*[ \t]*(.+)`), TypeSEODescription, "metaDescription"},
	{regexp.MustCompile(`(?i)\*\*Suggested Summary:\*\*[ \t]*(.+)`), TypeSummary, "summary"},
	{regexp.MustCompile(`(?i)\*\*Suggested Keywords:\*\*[ \t]*(.+)`), TypeKeyword, "seoKeywords"},
}

// Extract walks the already-parsed response in a fixed order (title,
// seo_title, seo_description, keywords, cluster, template, path, summary,
// hero content, visual tags, motion fields, image prompts, internal
// links), then appends standalone suggestion phrases found in the
// normalized text. Callers must pass the Response produced by
// parse.Parse on the same raw text; that ordering is part of the contract.
func Extract(raw string, parsed parse.Response) Result {
	text := normalize.Normalize(raw)
	b := newBuilder()

	p := parsed.Page
	b.add(TypeTitle, "title", p.Title, "extracted page title", confBlockPrimary, nil)
	b.add(TypeH1Title, "h1Title", p.H1Title, "extracted H1 title", confBlockSecondary, nil)
	b.add(TypeSEOTitle, "metaTitle", p.MetaTitle, "extracted SEO title", confBlockPrimary, nil)
	b.add(TypeSEODescription, "metaDescription", p.MetaDescription, "extracted meta description", confBlockSecondary, nil)
	b.add(TypeSEOFocus, "seoFocus", p.SEOFocus, "extracted SEO focus", confList, nil)
	for _, kw := range p.SEOKeywords {
		b.add(TypeKeyword, "seoKeywords", kw, "extracted keyword", confList, nil)
	}
	b.add(TypeCluster, "cluster", p.Cluster, "extracted cluster", confList, nil)
	b.add(TypeZone, "zone", p.Zone, "extracted zone", confList, nil)
	b.add(TypeTemplate, "template", p.Template, "extracted template", confList, nil)
	b.add(TypePath, "path", p.Path, "extracted path", confBlockSecondary, nil)
	b.add(TypePriority, "priority", p.Priority, "extracted priority", confList, nil)
	b.add(TypeSummary, "summary", p.Summary, "extracted summary", confList, nil)
	if len(p.Outline) > 0 {
		b.add(TypeOutline, "outline", strings.Join(p.Outline, ", "), "extracted outline", confList, nil)
	}

	b.add(TypeHeroContent, "htmlContent", parsed.HTMLContent, "extracted page body", confBody, nil)

	v := parsed.Visual
	if len(v.VibeKeywords) > 0 {
		b.add(TypeVisualTags, "vibeKeywords", strings.Join(v.VibeKeywords, ", "), "extracted vibe keywords", confVisual, nil)
	}
	if len(v.EmotionalTone) > 0 {
		b.add(TypeEmotionalTone, "emotionalTone", strings.Join(v.EmotionalTone, ", "), "extracted emotional tone", confVisual, nil)
	}
	b.add(TypeColorPalette, "colorPalette", v.ColorPalette, "extracted color palette", confVisual, nil)
	b.add(TypeMotionPreset, "motionPreset", v.MotionPreset, "extracted motion preset", confMotion, nil)
	b.add(TypeMotionConfig, "entranceMotion", v.EntranceMotion, "extracted entrance motion", confMotion, nil)
	b.add(TypeMotionConfig, "hoverMotion", v.HoverMotion, "extracted hover motion", confMotion, nil)
	b.add(TypeMotionConfig, "ambientMotion", v.AmbientMotion, "extracted ambient motion", confMotion, nil)
	if len(parsed.MotionLayout) > 0 {
		b.add(TypeMotionConfig, "motionLayout", string(parsed.MotionLayout), "extracted motion layout", confMotion, nil)
	}

	for _, ip := range parsed.ImagePrompts {
		b.add(TypeImagePrompt, "imagePrompts", ip.Prompt, "extracted image prompt", confPrompt, map[string]any{
			"slotKey":  ip.SlotKey,
			"slotType": ip.SlotType,
			"location": ip.Location,
		})
	}
	for _, l := range p.InternalLinks {
		b.add(TypeInternalLink, "internalLinks", l.Slug, "extracted internal link", confLink, map[string]any{
			"anchorText": l.AnchorText,
		})
	}
	b.add(TypeAtmosphere, "atmosphere", parsed.Atmosphere, "extracted atmosphere notes", confBody, nil)

	for _, sp := range suggestionPatterns {
		for _, m := range sp.re.FindAllStringSubmatch(text, -1) {
			b.add(sp.t, sp.field, strings.TrimSpace(m[1]), "prose suggestion", confSuggestion, nil)
		}
	}

	return Result{
		Enhancements:        b.out,
		HasApplyableContent: len(b.out) > 0,
	}
}

// probeRes are the cheap signals HasContent looks for before callers spend
// a full extraction on the text.
var probeRes = []*regexp.Regexp{
	regexp.MustCompile("```(?:page-metadata|visual-config|image-prompts|html|tsx|jsx|json)"),
	regexp.MustCompile(`(?im)^(?:TITLE|META_TITLE|SEO_TITLE|PATH|SUMMARY):`),
	regexp.MustCompile(`(?im)^VIBE[ _]KEYWORDS:`),
	regexp.MustCompile(`(?i)\*\*Suggested (?:Title|H1|Meta Description|Summary|Keywords):\*\*`),
	regexp.MustCompile(`(?i)<!--\s*AI\s+(?:LAYOUT|IMAGE)\s+PROMPT:`),
	// Legacy bolded-label prose forms, mirroring the field parsers.
	regexp.MustCompile(`(?i)\*\*(?:Title|H1(?:\s+title)?|Meta\s+title|SEO\s+title|Meta\s+description|SEO\s+description|SEO\s+focus|Keywords|SEO\s+keywords|Cluster|Zone|Template|Path|Priority|Summary|URL\s+slug|Vibe\s+keywords|Emotional\s+tone|Layouts|Color\s+palette|Motion\s+preset|Entrance\s+motion|Hover\s+motion|Ambient\s+motion):\*\*`),
	regexp.MustCompile(`(?im)^(?:\*\*)?(?:[IVX]+\.\s*)?SIGNATURE\b.*\bATMOSPHERE`),
}

// HasContent reports whether the text carries any applyable enhancement
// signal. It normalizes and probes with cheap patterns only; plain prose
// yields false.
func HasContent(raw string) bool {
	text := normalize.Normalize(raw)
	for _, re := range probeRes {
		if re.MatchString(text) {
			return true
		}
	}
	trimmed := strings.TrimSpace(text)
	return strings.HasPrefix(trimmed, "<") &&
		(strings.Contains(trimmed, "class=") || strings.Contains(trimmed, "className="))
}
