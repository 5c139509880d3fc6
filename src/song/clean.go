package song

import (
	"regexp"
	"strings"
)

var (
	htmlComment   = regexp.MustCompile(`<!--[\s\S]*?-->`)
	cdataBlock    = regexp.MustCompile(`<!\[CDATA\[[\s\S]*?\]\]>`)
	htmlTag       = regexp.MustCompile(`<[^>]*>`)
	trailingSpace = regexp.MustCompile(`(?m)[ \t]+$`)
	blankRun      = regexp.MustCompile(`\n{3,}`)
)

// Clean strips markup remnants from extracted lyrics text, normalizes
// line endings and collapses runs of blank lines down to a single blank
// line. Cleaning an already-clean string returns it unchanged.
func Clean(s string) string {
	if s == "" {
		return ""
	}
	s = htmlComment.ReplaceAllString(s, "")
	s = cdataBlock.ReplaceAllString(s, "")
	s = htmlTag.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "\r", "")
	s = trailingSpace.ReplaceAllString(s, "")
	s = blankRun.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
