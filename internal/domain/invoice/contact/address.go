package contact

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lotledger/invoice-parser/internal/domain/invoice"
)

var (
	// locationRe handles the generic "Location: <street>[,] <city> <ST>
	// <zip>" form that several vendors print above the pickup block.
	locationRe = regexp.MustCompile(
		`(?i)location:\s*(.+?)\s*,\s*([A-Za-z][A-Za-z .'-]*?)\s+([A-Z]{2})\s+(\d{5}(?:-\d{4})?)`)

	// locationNoCommaRe is the fallback for the same label with the comma
	// missing: street must start with a number and the city is one word.
	locationNoCommaRe = regexp.MustCompile(
		`(?i)location:\s*(\d+\s+.+?)\s+([A-Z][a-z]+)\s+([A-Z]{2})\s+(\d{5}(?:-\d{4})?)`)

	parenRe = regexp.MustCompile(`\(([^)]*)\)`)

	addrSpaceRe = regexp.MustCompile(`\s+`)
)

// knownPlaces are the hand-tuned city/state anchors. This list will not
// generalize to new geographies without adding entries; the Location:
// scanner above is the generic path.
var knownPlaces = []struct {
	City  string
	State string
}{
	{"Howe", "IN"},
	{"Shipshewana", "IN"},
	{"Sturgis", "MI"},
	{"White Pigeon", "MI"},
	{"Fort Wayne", "IN"},
	{"South Bend", "IN"},
	{"Elkhart", "IN"},
}

// placeRes holds one compiled pattern per known place, built once. Each
// matches "<number> <street text>[,] <City> <ST>[,] <zip>".
var placeRes = func() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(knownPlaces))
	for i, p := range knownPlaces {
		res[i] = regexp.MustCompile(fmt.Sprintf(
			`(\d+\s[^,\n]{3,70}?)[,\s]+%s[,\s]+%s[,\s]+(\d{5}(?:-\d{4})?)`,
			regexp.QuoteMeta(p.City), p.State))
	}
	return res
}()

// ExtractAddresses recovers pickup addresses via the hand-tuned place
// anchors and the generic Location: scanner, deduplicated by
// (street, address2).
func ExtractAddresses(text string) []invoice.Address {
	var addrs []invoice.Address
	seen := make(map[string]struct{})

	add := func(a invoice.Address) {
		if _, dup := seen[a.DedupKey()]; dup {
			return
		}
		seen[a.DedupKey()] = struct{}{}
		addrs = append(addrs, a)
	}

	for i, re := range placeRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			add(newAddress(m[1], knownPlaces[i].City, knownPlaces[i].State, m[2]))
		}
	}

	for _, m := range locationRe.FindAllStringSubmatch(text, -1) {
		add(newAddress(m[1], m[2], m[3], m[4]))
	}
	for _, m := range locationNoCommaRe.FindAllStringSubmatch(text, -1) {
		add(newAddress(m[1], m[2], m[3], m[4]))
	}

	return addrs
}

// newAddress constructs an Address, splitting a parenthetical suite/plant
// qualifier (e.g. "(Plant 208/209)") out of the street into Address2.
// Downstream mapping/geocoding needs the primary street line free of
// annotations.
func newAddress(street, city, state, zip string) invoice.Address {
	street = strings.TrimSpace(street)

	var address2 string
	if m := parenRe.FindStringSubmatch(street); m != nil {
		address2 = strings.TrimSpace(m[1])
		street = parenRe.ReplaceAllString(street, " ")
	}
	street = strings.TrimSpace(addrSpaceRe.ReplaceAllString(street, " "))
	street = strings.TrimRight(street, ",")
	city = strings.TrimSpace(city)

	return invoice.Address{
		Street:   street,
		Address2: address2,
		City:     city,
		State:    state,
		Zip:      zip,
		OneLine:  fmt.Sprintf("%s, %s %s %s", street, city, state, zip),
	}
}
