package extractor

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/lotledger/invoice-parser/internal/domain/invoice"
)

// genericLotRe is the fixed "<2-5 digit lot> <4-digit code> <description>"
// shape the fallback recognizes.
var genericLotRe = regexp.MustCompile(`^(\d{2,5})\s+(\d{4})\s+(.+)$`)

const (
	genericContMinLen = 10
	genericContMaxLen = 200
)

// Generic is the lowest-confidence fallback extractor. It emits items with
// no price populated; callers needing a price must cross-reference totals.
// It also serves as the automatic last-resort retry when a vendor-specific
// extractor yields zero items.
type Generic struct {
	Logger *slog.Logger
}

// Extract matches lot lines and treats plausible-length following lines as
// wrapped description continuations.
func (e *Generic) Extract(lines []string) []invoice.LineItem {
	sink := newItemSink()
	var current *invoice.LineItem

	for _, line := range lines {
		if line == "" {
			continue
		}
		if m := genericLotRe.FindStringSubmatch(line); m != nil {
			if current != nil {
				sink.add(*current)
			}
			current = &invoice.LineItem{
				LotNumber:   m[1],
				Description: strings.TrimSpace(m[3]),
			}
			continue
		}
		if current != nil && len(line) >= genericContMinLen && len(line) <= genericContMaxLen {
			current.Description += " " + line
		}
	}

	if current != nil {
		sink.add(*current)
	}
	return sink.items
}
