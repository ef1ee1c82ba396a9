package generator

import (
	"regexp"
	"strings"
)

// FallbackQuote is the canned response used whenever no usable model output
// is available. The quote endpoint never answers with anything less.
const FallbackQuote = "When the wire snaps, I turn silence into a blade and cut through anyway."

var (
	wrappingQuotesRE = regexp.MustCompile(`^[“”"']+|[“”"']+$`)
	whitespaceRunRE  = regexp.MustCompile(`\s+`)

	// Label prefixes the model sometimes adds despite instructions.
	labelPrefixREs = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^quote[:\-\s]+`),
		regexp.MustCompile(`(?i)^output[:\-\s]+`),
		regexp.MustCompile(`(?i)^result[:\-\s]+`),
	}
)

// NormalizeQuote reduces raw model output to a single clean line: keep only
// the first line, strip wrapping quotation marks, collapse whitespace runs,
// and drop obvious label prefixes. Applying it twice is a no-op.
func NormalizeQuote(raw string) string {
	if raw == "" {
		return ""
	}

	q, _, _ := strings.Cut(raw, "\n")
	q = wrappingQuotesRE.ReplaceAllString(q, "")
	q = strings.TrimSpace(whitespaceRunRE.ReplaceAllString(q, " "))

	for _, re := range labelPrefixREs {
		q = re.ReplaceAllString(q, "")
	}
	// A label can hide wrapping quotes from the first strip
	// ("Quote: \"...\"" leaves a leading quote behind).
	q = wrappingQuotesRE.ReplaceAllString(q, "")
	return strings.TrimSpace(q)
}
