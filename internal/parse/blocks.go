package parse

import (
	"bufio"
	"encoding/json"
	"regexp"
	"strings"
	"unicode/utf8"
)

// maxAtmosphereLen caps the free-text atmosphere section.
const maxAtmosphereLen = 500

// blockRule pairs a candidate pattern with a name for debugging. Rules for
// a block are tried in order and the first match wins; upstream formatting
// varies enough that each block needs several tolerated shapes.
type blockRule struct {
	name string
	re   *regexp.Regexp
}

var pageMetaRules = []blockRule{
	{"fence", regexp.MustCompile("(?s)```page-metadata[ \t]*\r?\n(.*?)```")},
}

var visualConfigRules = []blockRule{
	{"fence", regexp.MustCompile("(?s)```visual-config[ \t]*\r?\n(.*?)```")},
	{"double-backtick", regexp.MustCompile("(?s)``visual-config[ \t]*\r?\n(.*?)``")},
	{"code-tag", regexp.MustCompile(`(?s)<code[^>]*>\s*visual-config\r?\n(.*?)</code>`)},
	{"bare", regexp.MustCompile("(?is)visual-config[ \t]*\r?\n(VIBE[ _]KEYWORDS:.*?)(?:\r?\n```|\n{3,}|$)")},
}

var imagePromptRules = []blockRule{
	{"fence", regexp.MustCompile("(?s)```image-prompts[ \t]*\r?\n(.*?)```")},
	{"double-backtick", regexp.MustCompile("(?s)``image-prompts[ \t]*\r?\n(.*?)``")},
	{"post-pre", regexp.MustCompile("(?s)</code></pre>\\s*image-prompts[ \t]*\r?\n(.*?)(?:\r?\n```|$)")},
	{"bare-heading", regexp.MustCompile(`(?ism)^(?:\*\*)?image.prompts:?(?:\*\*)?[ \t]*\r?\n((?:Hero|Section|Featured|Background).*?)(?:\r?\n` + "```" + `|\n{3,}|$)`)},
}

var htmlBodyRe = regexp.MustCompile("(?s)```(?:html|tsx|jsx)[ \t]*\r?\n(.*?)```")

var jsonFenceRe = regexp.MustCompile("(?s)```json[ \t]*\r?\n(.*?)```")

var atmosphereHeadingRe = regexp.MustCompile(`(?i)^(?:\*\*)?(?:[IVX]+\.\s*)?SIGNATURE\b.*\bATMOSPHERE(?:\*\*)?[ \t:]*$`)

// firstBlock returns the inner text of the first rule that matches.
func firstBlock(text string, rules []blockRule) (string, bool) {
	for _, r := range rules {
		if m := r.re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1]), true
		}
	}
	return "", false
}

// extractHTMLBody returns the fenced html/tsx/jsx body if present. With no
// fence, the entire text counts as the body only when it starts with a tag
// and carries a class attribute, which keeps plain prose from being
// mistaken for markup.
func extractHTMLBody(text string) string {
	if m := htmlBodyRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "<") &&
		(strings.Contains(trimmed, "class=") || strings.Contains(trimmed, "className=")) {
		return trimmed
	}
	return ""
}

// extractMotionLayout returns the first fenced JSON block that mentions a
// "hero" key, validated with strict JSON parsing. Parse failures are
// swallowed and the layout left absent.
func extractMotionLayout(text string) json.RawMessage {
	for _, m := range jsonFenceRe.FindAllStringSubmatch(text, -1) {
		inner := strings.TrimSpace(m[1])
		if !strings.Contains(inner, `"hero"`) {
			continue
		}
		var probe any
		if err := json.Unmarshal([]byte(inner), &probe); err != nil {
			continue
		}
		return json.RawMessage(inner)
	}
	return nil
}

// extractAtmosphere reads the signature-atmosphere section: everything
// after its heading until the next heading, fence, or horizontal rule,
// truncated to maxAtmosphereLen.
func extractAtmosphere(text string) string {
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	inSection := false
	var b strings.Builder
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !inSection {
			if atmosphereHeadingRe.MatchString(line) {
				inSection = true
			}
			continue
		}
		if line != "" && (isHeadingLine(line) || isFenceLine(line) || isRuleLine(line)) {
			break
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(line)
	}
	out := strings.TrimSpace(b.String())
	if len(out) > maxAtmosphereLen {
		cut := maxAtmosphereLen
		for cut > 0 && !utf8.RuneStart(out[cut]) {
			cut--
		}
		out = strings.TrimSpace(out[:cut])
	}
	return out
}

var boldHeadingRe = regexp.MustCompile(`^\*\*[^*]+\*\*[ \t:]*$`)

func isHeadingLine(line string) bool {
	if strings.HasPrefix(line, "#") {
		return true
	}
	return boldHeadingRe.MatchString(line)
}

func isFenceLine(line string) bool {
	return strings.HasPrefix(line, "```")
}

func isRuleLine(line string) bool {
	switch {
	case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "***"), strings.HasPrefix(line, "___"):
		return true
	}
	return false
}
