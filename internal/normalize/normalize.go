// Package normalize repairs formatting artifacts in raw assistant
// responses before any block extraction runs. Upstream generation is
// non-deterministic about fences and HTML escaping, so the same block can
// arrive as a proper triple-backtick fence, a double-backtick hybrid, or a
// half-rendered <pre><code> wrapper. Normalize is total and idempotent:
// it never fails, and applying it to its own output is a no-op.
//
// The package imposes no input size limit; callers are expected to bound
// input upstream.
package normalize

import (
	"regexp"
	"strings"
)

// blockNames enumerates the named fenced blocks the extractor understands.
const blockNames = `page-metadata|visual-config|image-prompts`

var (
	wrapOpenRe  = regexp.MustCompile("^```(?:html|tsx|jsx)[ \t]*\r?\n")
	wrapCloseRe = regexp.MustCompile("\r?\n```\\s*$")

	// Repair rules, applied in order. Later rules assume earlier ones
	// already fired: rule 4 only sees opening tags rule 2 left behind.
	hybridFenceRe   = regexp.MustCompile("``[ \t]*<code[^>]*>(" + blockNames + ")")
	emptyPreNamedRe = regexp.MustCompile(`<pre><code[^>]*>\s*</code></pre>\s*\n?(` + blockNames + `)`)
	emptyPreBareRe  = regexp.MustCompile(`<pre><code[^>]*>\s*</code></pre>`)
	trailingCloseRe = regexp.MustCompile(`</code></pre>(` + blockNames + `)`)
	orphanOpenRe    = regexp.MustCompile(`<pre><code[^>]*>`)
	doubleOpenRe    = regexp.MustCompile("(?m)^``[ \t]*(" + blockNames + ")[ \t]*$")
	doubleBareRe    = regexp.MustCompile("(?m)^``[ \t]*$")
	inlineCodeRe    = regexp.MustCompile(`<code>(` + blockNames + `)</code>`)
)

// entityPairs lists the HTML entities upstream emits, decoded in order.
// The doubly-escaped &amp;lt;/&amp;gt; forms must decode before the single
// forms, and &amp; itself must go last so it cannot manufacture new
// entities out of neighbouring text.
var entityPairs = []struct{ entity, literal string }{
	{"&amp;lt;", "<"},
	{"&amp;gt;", ">"},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&quot;", `"`},
	{"&#39;", "'"},
	{"&#x27;", "'"},
	{"&#x2F;", "/"},
	{"&nbsp;", " "},
	{"&amp;", "&"},
}

// Normalize decodes HTML entities, unwraps a whole-input code fence, and
// repairs known malformed fence patterns. Unmatched patterns are left
// untouched; Normalize never fails.
func Normalize(raw string) string {
	s := decodeEntities(raw)
	s = unwrapFence(s)
	s = repairFences(s)
	return s
}

func decodeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	for _, p := range entityPairs {
		s = strings.ReplaceAll(s, p.entity, p.literal)
	}
	return s
}

// unwrapFence strips a single ```html / ```tsx / ```jsx wrapper around the
// entire input. Both the opening fence at the very start and the bare
// closing fence at the very end must be present; otherwise the input is
// returned unchanged.
func unwrapFence(s string) string {
	open := wrapOpenRe.FindStringIndex(s)
	if open == nil {
		return s
	}
	end := wrapCloseRe.FindStringIndex(s)
	if end == nil || end[1] != len(s) || end[0] < open[1] {
		return s
	}
	return s[open[1]:end[0]]
}

func repairFences(s string) string {
	// 1. Double-backtick + HTML code tag hybrid: ``<code class="x">name
	s = hybridFenceRe.ReplaceAllString(s, "```$1")
	// 2. Full empty <pre><code>…</code></pre> followed by a bare block name
	s = emptyPreNamedRe.ReplaceAllString(s, "```$1")
	// 3. Orphaned empty <pre><code>…</code></pre> pairs with no name
	s = emptyPreBareRe.ReplaceAllString(s, "")
	// 4. Partial trailing </code></pre>name left by rule 2's survivors
	s = trailingCloseRe.ReplaceAllString(s, "```$1")
	// 5. Remaining orphaned opening <pre><code ...> tags
	s = orphanOpenRe.ReplaceAllString(s, "")
	// 6. Double-backtick fences on their own line, opening and closing
	s = doubleOpenRe.ReplaceAllString(s, "```$1")
	s = doubleBareRe.ReplaceAllString(s, "```")
	// 7. Inline <code> wrapping a bare block name
	s = inlineCodeRe.ReplaceAllString(s, "$1")
	return s
}
