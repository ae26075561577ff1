package extractor

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lotledger/invoice-parser/internal/domain/invoice"
	"github.com/lotledger/invoice-parser/internal/domain/invoice/normalizer"
)

var (
	// tableHeaderRe gates extraction: nothing before the column header line
	// ("Lot Paddle Description ... Sale Price") is considered item data.
	tableHeaderRe = regexp.MustCompile(`(?i)^\s*lot\b.*\b(sale\s*price|price)\b`)

	// lotPaddleRe matches a new-lot line carrying a paddle number column.
	lotPaddleRe = regexp.MustCompile(`^(\d{1,5}[A-Za-z]?)\s+(\d{1,6})\s+(.*)$`)

	// lotNoPaddleRe matches a new-lot line without the paddle column: lot
	// number followed by non-numeric description text.
	lotNoPaddleRe = regexp.MustCompile(`^(\d{1,5}[A-Za-z]?)\s+([^\d\s].*)$`)

	loadingFeeRe = regexp.MustCompile(`(?i)loading\s+fee`)

	tableFooters = []string{"totals:", "total lots:", "buyer information", "***"}
)

// TableBlock extracts items from invoices that print a column header line
// followed by repeating per-lot blocks. Currency amounts are buffered per
// block; on commit the second collected amount is taken as the sale price
// (typical column order is Bid, Sale Price, Premium, Tax, Total, so the
// first amount is the bid). This positional rule is a layout-specific
// heuristic validated against sample invoices, not a general guarantee.
type TableBlock struct {
	Logger *slog.Logger
}

type tableBlockState struct {
	lot     string
	desc    []string
	amounts []decimal.Decimal
}

func (s *tableBlockState) pending() bool { return s.lot != "" }

// Extract groups lines between the header row and a footer marker into
// per-lot blocks and commits one item per block.
func (e *TableBlock) Extract(lines []string) []invoice.LineItem {
	sink := newItemSink()
	state := &tableBlockState{}
	inTable := false

	for _, line := range lines {
		if !inTable {
			if tableHeaderRe.MatchString(line) {
				inTable = true
			}
			continue
		}
		if line == "" {
			continue
		}
		if isTableFooter(line) {
			e.commit(sink, state)
			break
		}
		// Loading fees are a separate non-item charge: they contribute
		// neither description text nor a candidate sale price.
		if loadingFeeRe.MatchString(line) {
			continue
		}

		// Amounts-only continuation: extend the block's amount buffer.
		if normalizer.IsAmountOnly(line) {
			if state.pending() {
				amts, _ := normalizer.AllAmounts(line)
				state.amounts = append(state.amounts, amts...)
			}
			continue
		}

		if lot, rest, ok := matchNewLot(line); ok {
			e.commit(sink, state)
			state.lot = lot
			amts, desc := normalizer.AllAmounts(rest)
			state.amounts = append(state.amounts[:0], amts...)
			state.desc = state.desc[:0]
			if desc != "" {
				state.desc = append(state.desc, desc)
			}
			continue
		}

		if state.pending() {
			amts, desc := normalizer.AllAmounts(line)
			state.amounts = append(state.amounts, amts...)
			if desc != "" {
				state.desc = append(state.desc, desc)
			}
		}
	}

	e.commit(sink, state)
	return sink.items
}

func matchNewLot(line string) (lot, rest string, ok bool) {
	if m := lotPaddleRe.FindStringSubmatch(line); m != nil {
		return m[1], m[3], true
	}
	if m := lotNoPaddleRe.FindStringSubmatch(line); m != nil {
		return m[1], m[2], true
	}
	return "", "", false
}

// commit resolves the block's sale price: second amount when at least two
// were collected, the sole amount when only one was. Blocks with no amounts
// are dropped.
func (e *TableBlock) commit(sink *itemSink, state *tableBlockState) {
	if !state.pending() {
		return
	}
	defer func() {
		state.lot = ""
		state.desc = state.desc[:0]
		state.amounts = state.amounts[:0]
	}()

	var price decimal.Decimal
	switch {
	case len(state.amounts) >= 2:
		price = state.amounts[1]
	case len(state.amounts) == 1:
		price = state.amounts[0]
	default:
		if e.Logger != nil {
			e.Logger.Debug("dropping table block with no amounts",
				slog.String("lot", state.lot))
		}
		return
	}

	sink.add(invoice.LineItem{
		LotNumber:   state.lot,
		Description: strings.TrimSpace(strings.Join(state.desc, " ")),
		HammerPrice: normalizer.FormatAmount(price),
	})
}

func isTableFooter(line string) bool {
	lower := strings.ToLower(line)
	for _, f := range tableFooters {
		if strings.HasPrefix(lower, f) {
			return true
		}
	}
	return false
}
