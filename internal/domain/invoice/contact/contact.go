// Package contact recovers phone numbers, email addresses, pickup
// addresses, pickup dates, and invoice metadata from normalized invoice
// text. Extraction is vendor-independent; implausible candidates are
// silently discarded rather than surfaced as errors.
package contact

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// phoneRe is deliberately loose; plausibility filtering happens after.
	// Both boundaries matter: without the leading one, the tail of a longer
	// digit run can masquerade as a phone number.
	phoneRe = regexp.MustCompile(`\b\(?(\d{3})\)?[\s.-]*(\d{3})[\s.-]?(\d{4})\b`)

	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[A-Za-z]{2,}`)

	invoiceNumberRe = regexp.MustCompile(`(?i)invoice\s*(?:#|no\.?|number)?\s*[:\s]\s*([A-Za-z0-9][A-Za-z0-9-]{1,19})`)
	invoiceDateRe   = regexp.MustCompile(`(?i)(?:invoice\s+)?date\s*:?\s+(\d{1,2}/\d{1,2}/\d{2,4}|[A-Z][a-z]+ \d{1,2},? \d{4})`)

	pickupLabelRe = regexp.MustCompile(`(?i)(?:pick\s*-?\s*up|removal|load\s*-?\s*out)\s*(?:date|dates|times?)?\s*:\s*([^\n]+)`)
)

// ExtractPhones finds 10-digit phone candidates, filters out implausible
// ones (area code or exchange below 200 — placeholder territory), and
// returns them in canonical "(NNN) NNN-NNNN" form, deduplicated in
// first-seen order.
func ExtractPhones(text string) []string {
	var phones []string
	seen := make(map[string]struct{})

	for _, m := range phoneRe.FindAllStringSubmatch(text, -1) {
		area, exchange, line := m[1], m[2], m[3]
		if !plausibleSegment(area) || !plausibleSegment(exchange) {
			continue
		}
		canonical := fmt.Sprintf("(%s) %s-%s", area, exchange, line)
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		phones = append(phones, canonical)
	}
	return phones
}

// plausibleSegment requires the three-digit segment to be numerically >= 200.
func plausibleSegment(seg string) bool {
	n, err := strconv.Atoi(seg)
	return err == nil && n >= 200
}

// ExtractEmails returns lowercased email addresses deduplicated in
// first-seen order.
func ExtractEmails(text string) []string {
	var emails []string
	seen := make(map[string]struct{})

	for _, m := range emailRe.FindAllString(text, -1) {
		lower := strings.ToLower(m)
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		emails = append(emails, lower)
	}
	return emails
}

// ExtractPickupDates returns the free-text date/date-range strings found
// after pickup/removal labels, deduplicated.
func ExtractPickupDates(text string) []string {
	var dates []string
	seen := make(map[string]struct{})

	for _, m := range pickupLabelRe.FindAllStringSubmatch(text, -1) {
		val := strings.TrimSpace(m[1])
		if val == "" {
			continue
		}
		if _, dup := seen[val]; dup {
			continue
		}
		seen[val] = struct{}{}
		dates = append(dates, val)
	}
	return dates
}

// ExtractInvoiceMeta best-effort extracts the invoice number and date.
// Either may be empty when no pattern matches.
func ExtractInvoiceMeta(text string) (number, date string) {
	if m := invoiceNumberRe.FindStringSubmatch(text); m != nil {
		number = m[1]
	}
	if m := invoiceDateRe.FindStringSubmatch(text); m != nil {
		date = strings.TrimSpace(m[1])
	}
	return number, date
}
