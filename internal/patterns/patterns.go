// Package patterns holds the deterministic regex rule library used to pull
// requirement-, compliance-, risk-, and deadline-like sentences out of raw
// tender text. It serves as the sole source of structured facts when no live
// model is reachable and as a deterministic cross-check beside model output.
package patterns

import (
	"regexp"
	"strings"
)

// Category names a semantic rule group.
type Category string

const (
	Requirements Category = "requirements"
	Compliance   Category = "compliance"
	Risks        Category = "risks"
	Deadlines    Category = "deadlines"
)

// Rule binds a compiled sentence-level expression to its category.
type Rule struct {
	Category Category
	Pattern  *regexp.Regexp
}

const minSentenceLength = 12

// rules is loaded once and kept declarative so the fallback behavior stays
// inspectable and testable without a model.
var rules = []Rule{
	{Requirements, regexp.MustCompile(`(?i)[^.!?\n]*\b(?:must|shall|required|mandatory|obligated|minimum of)\b[^.!?\n]*[.!?]?`)},
	{Requirements, regexp.MustCompile(`(?i)[^.!?\n]*\b(?:the (?:supplier|contractor|bidder|tenderer) (?:is|are) to)\b[^.!?\n]*[.!?]?`)},
	{Compliance, regexp.MustCompile(`(?i)[^.!?\n]*\b(?:complian\w+|certif\w+|accredit\w+|ISO\s?\d{4,5}|GDPR|regulation|directive)\b[^.!?\n]*[.!?]?`)},
	{Risks, regexp.MustCompile(`(?i)[^.!?\n]*\b(?:risk\w*|penalt\w+|liabilit\w+|liquidated damages|termination|fine[sd]?)\b[^.!?\n]*[.!?]?`)},
	{Deadlines, regexp.MustCompile(`(?i)[^.!?\n]*\b(?:deadline|due date|closing date|submission|submit(?:ted)?\s+by|no later than)\b[^.!?\n]*\d[^.!?\n]*[.!?]?`)},
	{Deadlines, regexp.MustCompile(`(?i)[^.!?\n]*\d[^.!?\n]*\b(?:deadline|due|submission of (?:tenders|bids))\b[^.!?\n]*[.!?]?`)},
}

var categoryCaps = map[Category]int{
	Requirements: 5,
	Compliance:   3,
	Risks:        3,
	Deadlines:    3,
}

// Cap returns the maximum number of sentences returned for a category.
func Cap(category Category) int {
	if limit, ok := categoryCaps[category]; ok {
		return limit
	}
	return 3
}

// Extract unions all rule matches for a category, deduplicates them on the
// exact sentence, and truncates to the category cap. Order follows first
// appearance in the text, so the output is deterministic.
func Extract(text string, category Category) []string {
	limit := Cap(category)
	seen := make(map[string]struct{})
	var out []string
	for _, rule := range rules {
		if rule.Category != category {
			continue
		}
		for _, match := range rule.Pattern.FindAllString(text, -1) {
			sentence := strings.TrimSpace(match)
			if len(sentence) < minSentenceLength {
				continue
			}
			if _, ok := seen[sentence]; ok {
				continue
			}
			seen[sentence] = struct{}{}
			out = append(out, sentence)
			if len(out) >= limit {
				return out
			}
		}
	}
	return out
}

// ExtractAll runs every category against the text.
func ExtractAll(text string) map[Category][]string {
	return map[Category][]string{
		Requirements: Extract(text, Requirements),
		Compliance:   Extract(text, Compliance),
		Risks:        Extract(text, Risks),
		Deadlines:    Extract(text, Deadlines),
	}
}

// Explicit-field expressions back the metadata fallback path. They only
// match labelled statements, never free-standing figures, so absent fields
// stay absent instead of being guessed.
var (
	budgetPattern = regexp.MustCompile(
		`(?i)\b(?:budget|estimated (?:cost|value)|contract value)\b[^\n.]*?((?:EUR|USD|GBP|INR|CHF|€|\$|£)\s?[\d][\d.,]*(?:\s?(?:million|billion|thousand|m|k))?)`)
	titlePattern = regexp.MustCompile(
		`(?im)^[ \t]*(?:title|tender name|subject|project name)[ \t]*[:\-][ \t]*(\S.*)$`)
	locationPattern = regexp.MustCompile(
		`(?im)^[ \t]*(?:location|place of performance|delivery location|site)[ \t]*[:\-][ \t]*(\S.*)$`)
)

// ExplicitBudget returns the first labelled budget figure in the text.
func ExplicitBudget(text string) (string, bool) {
	if m := budgetPattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	return "", false
}

// ExplicitTitle returns the first labelled title line in the text.
func ExplicitTitle(text string) (string, bool) {
	if m := titlePattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	return "", false
}

// ExplicitLocation returns the first labelled location line in the text.
func ExplicitLocation(text string) (string, bool) {
	if m := locationPattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	return "", false
}
