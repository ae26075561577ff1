// Package normalizer prepares raw PDF-extracted text for the downstream
// scanners. It produces a whitespace-collapsed single-line corpus for label
// and pattern searches while preserving line-oriented text for the
// line-item extractors, and owns the shared currency-amount recognition.
package normalizer

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// tailWindow is how many characters from the end of a candidate string the
// loose rescan covers when the anchored amount pattern finds nothing. OCR
// output sometimes splits a trailing price with stray spaces.
const tailWindow = 40

var (
	spaceRe = regexp.MustCompile(`\s+`)

	// amountRe matches a US-formatted currency amount with the symbol on
	// either side: "$1,234.56", "$ 1,234.56", "1,234.56$", "250.00".
	amountRe = regexp.MustCompile(`(?:\$\s*)?\d{1,3}(?:,\d{3})*\.\d{2}(?:\s*\$)?`)

	// amountOnlyRe matches a line that is nothing but one or more amounts.
	amountOnlyRe = regexp.MustCompile(`^\s*(?:\$?\s*\d{1,3}(?:,\d{3})*\.\d{2}\$?\s*)+$`)

	digitsRe = regexp.MustCompile(`\d{1,3}(?:,\d{3})*\.\d{2}`)
)

// Flatten collapses all whitespace and newlines into single spaces, yielding
// a one-line corpus suitable for windowed label scanning.
func Flatten(text string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))
}

// Lines splits text into trimmed lines, dropping carriage returns. Empty
// lines are preserved so extractors can see block boundaries.
func Lines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = strings.TrimSpace(strings.TrimRight(l, "\r"))
	}
	return lines
}

// IsAmountOnly reports whether the line consists solely of currency amounts.
func IsAmountOnly(line string) bool {
	return amountOnlyRe.MatchString(line)
}

// ParseAmount converts a matched amount substring to a decimal, stripping
// currency symbols, spacing, and thousands separators.
func ParseAmount(raw string) (decimal.Decimal, bool) {
	cleaned := strings.ReplaceAll(raw, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// FormatAmount renders a decimal as the canonical price string: two decimal
// places, no currency symbol, no thousands separator.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FirstAmount finds the first currency amount in s. When the anchored
// pattern finds nothing, the tail of the string is rescanned with internal
// spacing stripped, recovering prices split by OCR artifacts. The second
// return value is s with the matched substring removed, so descriptions end
// up free of price text.
func FirstAmount(s string) (decimal.Decimal, string, bool) {
	if loc := amountRe.FindStringIndex(s); loc != nil {
		d, ok := ParseAmount(s[loc[0]:loc[1]])
		if ok {
			cleaned := strings.TrimSpace(spaceRe.ReplaceAllString(s[:loc[0]]+" "+s[loc[1]:], " "))
			return d, cleaned, true
		}
	}

	// Loose tail rescan.
	start := len(s) - tailWindow
	if start < 0 {
		start = 0
	}
	tail := s[start:]
	compact := strings.ReplaceAll(tail, " ", "")
	if m := digitsRe.FindString(compact); m != "" {
		if d, ok := ParseAmount(m); ok {
			return d, strings.TrimSpace(s[:start]), true
		}
	}

	return decimal.Decimal{}, s, false
}

// AllAmounts returns every currency amount found in s, in order, along with
// s stripped of the matched substrings.
func AllAmounts(s string) ([]decimal.Decimal, string) {
	locs := amountRe.FindAllStringIndex(s, -1)
	if len(locs) == 0 {
		return nil, s
	}
	amounts := make([]decimal.Decimal, 0, len(locs))
	var rest strings.Builder
	prev := 0
	for _, loc := range locs {
		rest.WriteString(s[prev:loc[0]])
		rest.WriteString(" ")
		prev = loc[1]
		if d, ok := ParseAmount(s[loc[0]:loc[1]]); ok {
			amounts = append(amounts, d)
		}
	}
	rest.WriteString(s[prev:])
	cleaned := strings.TrimSpace(spaceRe.ReplaceAllString(rest.String(), " "))
	return amounts, cleaned
}
