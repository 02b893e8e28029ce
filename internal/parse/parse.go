// Package parse locates named blocks inside a normalized assistant
// response and extracts typed page records from them. Every operation is
// a pure function over the input string: a block or field that cannot be
// located is simply absent, never an error, and one block's absence does
// not abort extraction of the others.
package parse

import (
	"encoding/json"

	"github.com/bigmindhq/bigmind-extract/internal/normalize"
)

// InternalLink is a proposed in-site link from a page-metadata block.
type InternalLink struct {
	Slug       string `json:"slug"`
	AnchorText string `json:"anchorText"`
}

// PageMeta carries the optional scalar and list fields extracted from a
// page-metadata block or its legacy prose equivalents. Zero values mean
// the field was not mentioned.
type PageMeta struct {
	Title           string         `json:"title,omitempty"`
	H1Title         string         `json:"h1Title,omitempty"`
	MetaTitle       string         `json:"metaTitle,omitempty"`
	MetaDescription string         `json:"metaDescription,omitempty"`
	SEOFocus        string         `json:"seoFocus,omitempty"`
	SEOKeywords     []string       `json:"seoKeywords,omitempty"`
	Outline         []string       `json:"outline,omitempty"`
	InternalLinks   []InternalLink `json:"internalLinks,omitempty"`
	Cluster         string         `json:"cluster,omitempty"`
	Zone            string         `json:"zone,omitempty"`
	Template        string         `json:"template,omitempty"`
	Path            string         `json:"path,omitempty"`
	Priority        string         `json:"priority,omitempty"`
	Summary         string         `json:"summary,omitempty"`
	URLSlug         string         `json:"urlSlug,omitempty"`
}

// VisualConfig carries presentation intent extracted from a visual-config
// block. Values are forwarded as opaque strings; nothing here is validated
// against a preset catalogue.
type VisualConfig struct {
	VibeKeywords    []string `json:"vibeKeywords,omitempty"`
	EmotionalTone   []string `json:"emotionalTone,omitempty"`
	ColorPalette    string   `json:"colorPalette,omitempty"`
	LayoutsDetected []string `json:"layoutsDetected,omitempty"`
	MotionPreset    string   `json:"motionPreset,omitempty"`
	EntranceMotion  string   `json:"entranceMotion,omitempty"`
	HoverMotion     string   `json:"hoverMotion,omitempty"`
	AmbientMotion   string   `json:"ambientMotion,omitempty"`
}

// ImagePrompt is a single image generation request discovered in the
// response. ID is unique within one Parse call only; it embeds a
// timestamp and has no stable identity across re-runs.
type ImagePrompt struct {
	ID       string `json:"id"`
	SlotKey  string `json:"slotKey"`
	SlotType string `json:"slotType"`
	Prompt   string `json:"prompt"`
	Location string `json:"location,omitempty"`
}

// Slot types an image prompt can be classified into.
const (
	SlotHero       = "hero"
	SlotFeatured   = "featured"
	SlotSection    = "section"
	SlotIcon       = "icon"
	SlotGallery    = "gallery"
	SlotBackground = "background"
	SlotCustom     = "custom"
)

// Response is the aggregate extraction result for one assistant response.
// ImagePrompts preserves document discovery order: inline HTML comments
// first, then entries from an explicit image-prompts block, appended
// without dedup.
type Response struct {
	Page         PageMeta        `json:"pageMetadata"`
	Visual       VisualConfig    `json:"visualConfig"`
	MotionLayout json.RawMessage `json:"motionLayoutJson,omitempty"`
	HTMLContent  string          `json:"htmlContent,omitempty"`
	ImagePrompts []ImagePrompt   `json:"imagePrompts"`
	Atmosphere   string          `json:"atmosphere,omitempty"`
}

// Parse normalizes the raw response and extracts all blocks and fields.
// It never fails: the worst outcome for any input is an empty Response.
func Parse(raw string) Response {
	text := normalize.Normalize(raw)

	resp := Response{
		ImagePrompts: []ImagePrompt{},
	}
	resp.Page = parsePageMeta(text)
	resp.Visual = parseVisualConfig(text)
	resp.MotionLayout = extractMotionLayout(text)
	resp.HTMLContent = extractHTMLBody(text)
	resp.Atmosphere = extractAtmosphere(text)
	resp.ImagePrompts = extractImagePrompts(resp.HTMLContent, text)
	return resp
}
