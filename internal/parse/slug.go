package parse

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// maxSlugLen caps generated URL slugs.
const maxSlugLen = 60

var (
	slugDropRe  = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaceRe = regexp.MustCompile(`\s+`)
	slugDashRe  = regexp.MustCompile(`-{2,}`)
)

// SlugFromTitle derives a URL slug from a page title: lower-case, keep
// only letters, digits, whitespace and hyphens, collapse whitespace to
// single hyphens, collapse repeated hyphens, and cap at maxSlugLen. Total
// and deterministic; any input yields a slug, possibly empty.
func SlugFromTitle(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugDropRe.ReplaceAllString(s, "")
	s = slugSpaceRe.ReplaceAllString(s, "-")
	s = slugDashRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > maxSlugLen {
		s = strings.TrimRight(s[:maxSlugLen], "-")
	}
	return s
}

// HumanizeSlug turns a slug or path segment back into display text:
// "ocean-minerals" becomes "Ocean Minerals". Leading path slashes and
// separators are dropped.
func HumanizeSlug(slug string) string {
	s := strings.Trim(slug, "/")
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	// Casers are stateful; build one per call so callers can share nothing.
	return cases.Title(language.English).String(s)
}
