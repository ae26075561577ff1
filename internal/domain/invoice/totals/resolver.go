// Package totals extracts the labeled currency amounts from an invoice and
// reconciles them under the buyer's declared payment method. Capture uses a
// bounded window after each label so a label can never bind to an unrelated
// dollar amount appearing later in a multi-column layout.
package totals

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lotledger/invoice-parser/internal/domain/invoice"
	"github.com/lotledger/invoice-parser/internal/domain/invoice/normalizer"
)

// DefaultWindow is how many characters after a label the amount scan
// covers.
const DefaultWindow = 90

// epsilon is the tolerance for strict-mode cross-validation.
var epsilon = decimal.NewFromFloat(0.01)

// windowAmountRe finds the first dollar amount inside a label window.
var windowAmountRe = regexp.MustCompile(`\$\s*(\d{1,3}(?:,\d{3})*\.\d{2})`)

// labels maps each Totals field to its label aliases, vendor-specific
// aliases included. Matched case-insensitively against the flattened corpus.
var labels = map[string][]string{
	"subtotal":       {"subtotal:", "sub total", "sub-total", "subtotal"},
	"convenienceFee": {"convenience fee", "buyer's premium", "buyers premium"},
	"cashTotal":      {"cash total due", "cash due", "cash total"},
	"creditTotal":    {"credit total due", "credit card total", "credit total"},
	"grandTotal":     {"grand total", "total in us dollars"},
}

// InconsistentTotalsError reports a strict-mode contradiction between a
// captured value and the value derived from other captured figures.
type InconsistentTotalsError struct {
	Field    string
	Captured decimal.Decimal
	Derived  decimal.Decimal
}

func (e *InconsistentTotalsError) Error() string {
	return fmt.Sprintf("totals inconsistent: %s captured %s but derived %s",
		e.Field, e.Captured.StringFixed(2), e.Derived.StringFixed(2))
}

// Resolver performs labeled capture and reconciliation.
type Resolver struct {
	Window int
	Logger *slog.Logger
}

// NewResolver returns a resolver with the default window.
func NewResolver(logger *slog.Logger) *Resolver {
	return &Resolver{Window: DefaultWindow, Logger: logger}
}

// Resolve captures the labeled amounts from the flattened corpus and
// reconciles them. Under strict mode a contradiction beyond epsilon returns
// an InconsistentTotalsError; otherwise the same situation is corrected
// heuristically and logged.
func (r *Resolver) Resolve(corpus string, method invoice.PaymentMethod, strict bool) (invoice.Totals, error) {
	captured := map[string]*decimal.Decimal{}
	for field, aliases := range labels {
		captured[field] = r.capture(corpus, aliases)
	}

	t := invoice.Totals{
		Subtotal:       captured["subtotal"],
		ConvenienceFee: captured["convenienceFee"],
		CashTotal:      captured["cashTotal"],
		CreditTotal:    captured["creditTotal"],
		GrandTotal:     captured["grandTotal"],
	}

	if t.CashTotal != nil && t.CreditTotal != nil && r.Logger != nil {
		r.Logger.Debug("both cash and credit totals present; following declared payment method",
			slog.String("method", string(method)))
	}

	// A cash total exactly equal to the convenience fee is a column
	// misread, not a real figure.
	if t.CashTotal != nil && t.ConvenienceFee != nil && t.CashTotal.Equal(*t.ConvenienceFee) {
		if strict {
			derived := decimal.Zero
			if t.Subtotal != nil {
				derived = *t.Subtotal
			}
			return invoice.Totals{}, &InconsistentTotalsError{
				Field:    "cashTotal",
				Captured: *t.CashTotal,
				Derived:  derived,
			}
		}
		if r.Logger != nil {
			r.Logger.Warn("cash total equals convenience fee; treating as column misread",
				slog.String("value", t.CashTotal.StringFixed(2)))
		}
		t.CashTotal = nil
	}

	// Cash total is floored at the subtotal: it can never be less.
	if t.Subtotal != nil && (t.CashTotal == nil || t.CashTotal.LessThan(*t.Subtotal)) {
		v := *t.Subtotal
		t.CashTotal = &v
	}

	// A known fee makes credit total derived, always. Any directly captured
	// credit total only serves strict-mode cross-validation.
	if t.ConvenienceFee != nil && t.Subtotal != nil {
		derived := t.Subtotal.Add(*t.ConvenienceFee)
		if strict && t.CreditTotal != nil && t.CreditTotal.Sub(derived).Abs().GreaterThan(epsilon) {
			return invoice.Totals{}, &InconsistentTotalsError{
				Field:    "creditTotal",
				Captured: *t.CreditTotal,
				Derived:  derived,
			}
		}
		t.CreditTotal = &derived
	}

	t.Total = r.selectTotal(&t, method)

	// Safety net: the resolved total can never undercut a known subtotal.
	if t.Total != nil && t.Subtotal != nil && t.Total.LessThan(*t.Subtotal) {
		if r.Logger != nil {
			r.Logger.Warn("resolved total below subtotal; clamping",
				slog.String("total", t.Total.StringFixed(2)),
				slog.String("subtotal", t.Subtotal.StringFixed(2)))
		}
		v := *t.Subtotal
		t.Total = &v
	}

	return t, nil
}

// capture searches the corpus for each alias in turn and scans only the
// next Window characters after the label for the first dollar amount.
func (r *Resolver) capture(corpus string, aliases []string) *decimal.Decimal {
	window := r.Window
	if window <= 0 {
		window = DefaultWindow
	}
	lower := strings.ToLower(corpus)

	for _, alias := range aliases {
		idx := strings.Index(lower, alias)
		if idx < 0 {
			continue
		}
		start := idx + len(alias)
		end := start + window
		if end > len(corpus) {
			end = len(corpus)
		}
		m := windowAmountRe.FindStringSubmatch(corpus[start:end])
		if m == nil {
			continue
		}
		if d, ok := normalizer.ParseAmount(m[1]); ok {
			return &d
		}
	}
	return nil
}

// selectTotal picks the final figure per the declared payment method:
// credit prefers the (derived or captured) credit total, then subtotal+fee,
// then cash; cash prefers a captured grand total, then cash total.
func (r *Resolver) selectTotal(t *invoice.Totals, method invoice.PaymentMethod) *decimal.Decimal {
	pick := func(d decimal.Decimal) *decimal.Decimal { return &d }

	if method == invoice.PaymentCredit {
		switch {
		case t.CreditTotal != nil:
			return pick(*t.CreditTotal)
		case t.Subtotal != nil && t.ConvenienceFee != nil:
			return pick(t.Subtotal.Add(*t.ConvenienceFee))
		case t.CashTotal != nil:
			return pick(*t.CashTotal)
		}
		return nil
	}

	switch {
	case t.GrandTotal != nil:
		return pick(*t.GrandTotal)
	case t.CashTotal != nil:
		return pick(*t.CashTotal)
	}
	return nil
}
