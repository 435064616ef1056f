package llm

import (
	"regexp"
	"strings"
)

var (
	linkPattern    = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	boldPattern    = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicPattern  = regexp.MustCompile(`\*([^*\n]+)\*`)
	underPattern   = regexp.MustCompile(`\b_([^_\n]+)_\b`)
	codePattern    = regexp.MustCompile("`([^`\n]+)`")
	fencePattern   = regexp.MustCompile("(?m)^```[a-zA-Z0-9]*[ \t]*\r?\n?")
	headingPattern = regexp.MustCompile(`(?m)^#{1,6}[ \t]+`)
	orderedPattern = regexp.MustCompile(`(?m)^([ \t]*)\d+[.)][ \t]+`)
	bulletPattern  = regexp.MustCompile(`(?m)^([ \t]*)[*•+][ \t]+`)
	blankPattern   = regexp.MustCompile(`\n[ \t]*\n([ \t]*\n)+`)
)

// Sanitize strips markup artifacts from raw model output, leaving plain
// prose. List markers are normalized to "- ". The function is pure and
// idempotent: sanitizing already-sanitized text is a no-op.
func Sanitize(text string) string {
	out := linkPattern.ReplaceAllString(text, "$1")
	out = boldPattern.ReplaceAllString(out, "$1")
	out = italicPattern.ReplaceAllString(out, "$1")
	out = underPattern.ReplaceAllString(out, "$1")
	out = codePattern.ReplaceAllString(out, "$1")
	out = fencePattern.ReplaceAllString(out, "")
	out = headingPattern.ReplaceAllString(out, "")
	out = orderedPattern.ReplaceAllString(out, "${1}- ")
	out = bulletPattern.ReplaceAllString(out, "${1}- ")
	out = blankPattern.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}
