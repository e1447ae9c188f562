package plates

import (
	"regexp"
	"strings"
)

// Unknown is the country label returned when no pattern matches.
const Unknown = "Unknown"

// PatternRule ties a country label to the format pattern its plates follow.
// Patterns are anchored at the start of the text only: a rule matches when
// the text begins with a conforming sequence, even if trailing characters
// remain.
type PatternRule struct {
	Country string
	Pattern *regexp.Regexp
}

// DefaultPatterns returns the built-in country format table in its defined
// evaluation order. The table is constructed fresh on each call so callers
// can hold it as an immutable configuration value; nothing in this package
// keeps global state.
//
// Note that the USA and Canada formats are identical. With the
// longest-match-then-order rule used by MatchCountry, Canada is therefore
// unreachable: USA always wins the tie by table position. That shadowing is
// a property of the table itself, kept (and tested) rather than silently
// deduplicated.
func DefaultPatterns() []PatternRule {
	return []PatternRule{
		{Country: "USA", Pattern: regexp.MustCompile(`^[A-Z0-9]{1,7}`)},
		{Country: "India", Pattern: regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z]{1,2}[0-9]{4}`)},
		{Country: "Nepal", Pattern: regexp.MustCompile(`^[A-Z]{2}-[0-9]{1,4}-[A-Z]{1,2}`)},
		{Country: "Australia", Pattern: regexp.MustCompile(`^[A-Z]{1,3}[0-9]{1,4}`)},
		{Country: "Canada", Pattern: regexp.MustCompile(`^[A-Z0-9]{1,7}`)},
	}
}

// MatchCountry classifies normalized plate text against an ordered pattern
// table and returns the best-matching country label, or Unknown when no
// pattern matches.
//
// Internal whitespace is removed before matching (OCR frequently splits
// plates into tokens), but the caller's text is otherwise used as-is.
//
// Each rule is scored by the length of text it matches from the start; the
// rule consuming the most characters wins, and ties go to the earlier rule
// in the table. Scoring by matched length is what lets a specific format
// like India's beat the USA catch-all on a long plate, while short texts
// that several generic formats cover equally still resolve by table order.
// The result is fully deterministic for a fixed table.
func MatchCountry(rules []PatternRule, text string) string {
	compact := strings.ReplaceAll(text, " ", "")

	country := Unknown
	best := 0
	for _, rule := range rules {
		m := rule.Pattern.FindString(compact)
		if len(m) > best {
			best = len(m)
			country = rule.Country
		}
	}
	return country
}
