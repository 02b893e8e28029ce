package parse

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// Image prompts come from two sources, in document order: inline
// <!-- AI LAYOUT PROMPT: ... --> comments inside the HTML body, then
// entries from an explicit image-prompts block. The two lists are
// appended, never merged or deduplicated against each other.

var (
	commentPromptRe = regexp.MustCompile(`(?is)^\s*AI\s+(?:LAYOUT|IMAGE)\s+PROMPT:\s*(.+)$`)
	blockPromptRe   = regexp.MustCompile(`(?i)^(?:[-*]\s*)?(?:\d+[.)]\s*)?(hero|featured|section|icon|gallery|background)\b[^:]*:\s*(.+)$`)
)

// slotKeywords maps prompt text to a slot type, checked in order. A prompt
// matching none of these falls back by position: the first prompt is the
// hero, later ones are sections.
var slotKeywords = []struct {
	keyword string
	slot    string
}{
	{"hero", SlotHero},
	{"banner", SlotHero},
	{"featured", SlotFeatured},
	{"icon", SlotIcon},
	{"gallery", SlotGallery},
	{"background", SlotBackground},
	{"backdrop", SlotBackground},
	{"section", SlotSection},
}

func detectSlotType(text string, index int) string {
	lower := strings.ToLower(text)
	for _, k := range slotKeywords {
		if strings.Contains(lower, k.keyword) {
			return k.slot
		}
	}
	if index == 0 {
		return SlotHero
	}
	return SlotSection
}

// promptBuilder assigns per-call IDs and slot keys as prompts accumulate.
type promptBuilder struct {
	prompts []ImagePrompt
	perSlot map[string]int
	stamp   int64
}

func newPromptBuilder() *promptBuilder {
	return &promptBuilder{
		prompts: []ImagePrompt{},
		perSlot: map[string]int{},
		stamp:   time.Now().UnixMilli(),
	}
}

func (b *promptBuilder) add(slotType, prompt, location string) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return
	}
	b.perSlot[slotType]++
	seq := len(b.prompts) + 1
	b.prompts = append(b.prompts, ImagePrompt{
		ID:       fmt.Sprintf("%s-%d-%d", slotType, seq, b.stamp),
		SlotKey:  fmt.Sprintf("%s-%d", slotType, b.perSlot[slotType]),
		SlotType: slotType,
		Prompt:   prompt,
		Location: location,
	})
}

func extractImagePrompts(htmlBody, text string) []ImagePrompt {
	b := newPromptBuilder()
	if htmlBody != "" {
		collectCommentPrompts(b, htmlBody)
	}
	if block, ok := firstBlock(text, imagePromptRules); ok {
		collectBlockPrompts(b, block)
	}
	return b.prompts
}

// collectCommentPrompts walks the parsed HTML body and picks up layout
// prompts from comment nodes. Location records the enclosing element tag.
func collectCommentPrompts(b *promptBuilder, htmlBody string) {
	root, err := html.Parse(strings.NewReader(htmlBody))
	if err != nil || root == nil {
		return
	}
	var walk func(n *html.Node, parent string)
	walk = func(n *html.Node, parent string) {
		if n.Type == html.CommentNode {
			if m := commentPromptRe.FindStringSubmatch(n.Data); m != nil {
				prompt := strings.TrimSpace(m[1])
				b.add(detectSlotType(prompt, len(b.prompts)), prompt, parent)
			}
		}
		name := parent
		if n.Type == html.ElementNode {
			name = strings.ToLower(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, name)
		}
	}
	walk(root, "body")
}

// collectBlockPrompts reads an image-prompts block line by line. Labeled
// lines ("Hero Image: ...") carry their slot type explicitly; unlabeled
// non-empty lines fall back to keyword detection.
func collectBlockPrompts(b *promptBuilder, block string) {
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := blockPromptRe.FindStringSubmatch(line); m != nil {
			b.add(strings.ToLower(m[1]), m[2], "image-prompts")
			continue
		}
		line = strings.TrimLeft(line, "-*• \t")
		if len(line) < minPromptChars {
			continue
		}
		b.add(detectSlotType(line, len(b.prompts)), line, "image-prompts")
	}
}

// minPromptChars filters list noise out of unlabeled prompt lines.
const minPromptChars = 10
