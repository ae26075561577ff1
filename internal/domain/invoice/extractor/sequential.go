package extractor

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/lotledger/invoice-parser/internal/domain/invoice"
	"github.com/lotledger/invoice-parser/internal/domain/invoice/normalizer"
)

var (
	// lotStartRe matches a line beginning with a lot number and optional
	// letter suffix ("257", "257A"), capturing the remainder as the initial
	// description text.
	lotStartRe = regexp.MustCompile(`^(\d{1,5}[A-Za-z]?)\b[\s.:-]*(.*)$`)

	// seqTerminators end item extraction when seen at the start of a line.
	seqTerminators = []string{"***", "subtotal", "notes:"}

	// seqNoise marks boilerplate lines that must not corrupt descriptions
	// or be mistaken for price lines. Matched case-insensitively as
	// prefixes or substrings.
	seqNoisePrefixes = []string{
		"page ", "invoice #", "bidder", "terms and conditions",
		"thank you", "all sales final", "printed ", "www.",
	}
	seqNoiseSubstrings = []string{
		"no warranty", "as-is where-is", "all items sold as is",
	}
)

// Sequential is the state machine for vendors whose invoices print
// "LOT# ... description ... price" in a contiguous block. A lot's
// description may wrap across lines and its price may be glued to the lot
// line, sit on a continuation line, or carry the currency symbol on either
// side of the number.
type Sequential struct {
	Logger *slog.Logger
}

// seqState is the per-call accumulator: the pending lot number and its
// wrapped description text.
type seqState struct {
	lot  string
	desc []string
}

func (s *seqState) pending() bool { return s.lot != "" }

func (s *seqState) reset() {
	s.lot = ""
	s.desc = s.desc[:0]
}

// Extract runs the state machine over the invoice lines. A pending lot with
// no discoverable price by the time the next lot (or a terminator) arrives
// is dropped: a priceless item is of no use to downstream cost tracking.
func (e *Sequential) Extract(lines []string) []invoice.LineItem {
	sink := newItemSink()
	state := &seqState{}

	for _, line := range lines {
		if line == "" {
			continue
		}
		if isSeqTerminator(line) {
			e.commit(sink, state)
			break
		}
		if isSeqNoise(line) {
			continue
		}

		// Amount-only lines are always price continuations, never lot
		// starts, even though a bare "2,500.00" begins with a digit.
		if !normalizer.IsAmountOnly(line) {
			if m := lotStartRe.FindStringSubmatch(line); m != nil {
				if state.pending() {
					e.commit(sink, state)
				}
				state.lot = m[1]
				state.desc = append(state.desc[:0], m[2])
				// The lot line itself may already carry the price.
				e.tryCommit(sink, state)
				continue
			}
		}

		if state.pending() {
			state.desc = append(state.desc, line)
			e.tryCommit(sink, state)
		}
	}

	e.commit(sink, state)
	return sink.items
}

// tryCommit commits the pending lot only if its accumulated text already
// contains a price; otherwise the lot keeps accumulating.
func (e *Sequential) tryCommit(sink *itemSink, state *seqState) {
	if !state.pending() {
		return
	}
	joined := strings.TrimSpace(strings.Join(state.desc, " "))
	amt, cleaned, ok := normalizer.FirstAmount(joined)
	if !ok {
		return
	}
	sink.add(invoice.LineItem{
		LotNumber:   state.lot,
		Description: cleaned,
		HammerPrice: normalizer.FormatAmount(amt),
	})
	state.reset()
}

// commit is the forced commit at a lot boundary or end of input: a pending
// lot without a price is discarded.
func (e *Sequential) commit(sink *itemSink, state *seqState) {
	if !state.pending() {
		return
	}
	before := len(sink.items)
	e.tryCommit(sink, state)
	if len(sink.items) == before && state.pending() {
		if e.Logger != nil {
			e.Logger.Debug("dropping lot with no discoverable price",
				slog.String("lot", state.lot))
		}
		state.reset()
	}
}

func isSeqTerminator(line string) bool {
	lower := strings.ToLower(line)
	for _, t := range seqTerminators {
		if strings.HasPrefix(lower, t) {
			return true
		}
	}
	return false
}

func isSeqNoise(line string) bool {
	lower := strings.ToLower(line)
	for _, p := range seqNoisePrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	for _, s := range seqNoiseSubstrings {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}
