// Package extractor recovers structured line items from the flattened text
// of auction invoices. Each vendor family gets one strategy; all strategies
// share the (lines) -> []LineItem contract and keep their working state
// call-scoped so concurrent parses never interact.
package extractor

import (
	"log/slog"

	"github.com/lotledger/invoice-parser/internal/domain/invoice"
	"github.com/lotledger/invoice-parser/internal/domain/invoice/vendor"
)

// Strategy extracts line items from line-oriented invoice text.
type Strategy interface {
	Extract(lines []string) []invoice.LineItem
}

// ForKind returns the strategy implementation for a vendor profile's kind.
// Unrecognized kinds fall back to the generic extractor.
func ForKind(kind vendor.StrategyKind, logger *slog.Logger) Strategy {
	switch kind {
	case vendor.StrategySequential:
		return &Sequential{Logger: logger}
	case vendor.StrategyTableBlock:
		return &TableBlock{Logger: logger}
	default:
		return &Generic{Logger: logger}
	}
}

// itemSink accumulates committed items, suppressing duplicate
// (lotNumber, hammerPrice) pairs. One sink per Extract call.
type itemSink struct {
	items []invoice.LineItem
	seen  map[string]struct{}
}

func newItemSink() *itemSink {
	return &itemSink{seen: make(map[string]struct{})}
}

func (s *itemSink) add(item invoice.LineItem) {
	key := item.LotNumber + "|" + item.HammerPrice
	if _, dup := s.seen[key]; dup {
		return
	}
	s.seen[key] = struct{}{}
	s.items = append(s.items, item)
}
