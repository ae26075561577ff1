// Package parser assembles the full invoice parse: vendor classification,
// line-item extraction, contact/address recovery, and totals resolution.
// Each Parse call is a pure function of its inputs — all accumulators are
// call-scoped, so concurrent parses need no coordination.
package parser

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/lotledger/invoice-parser/internal/domain/invoice"
	"github.com/lotledger/invoice-parser/internal/domain/invoice/contact"
	"github.com/lotledger/invoice-parser/internal/domain/invoice/extractor"
	"github.com/lotledger/invoice-parser/internal/domain/invoice/normalizer"
	"github.com/lotledger/invoice-parser/internal/domain/invoice/totals"
	"github.com/lotledger/invoice-parser/internal/domain/invoice/vendor"
)

// noteMarkers flag lines captured verbatim as special notes.
var noteMarkers = []string{"notes:", "please note", "all items must be removed"}

var notePrefixRe = regexp.MustCompile(`(?i)^notes:\s*`)

// Options configures one parse invocation. The zero value means cash
// settlement, non-strict totals, and the default label window.
type Options struct {
	PaymentMethod invoice.PaymentMethod
	StrictTotals  bool

	// LabelWindow overrides the totals label scan window when positive.
	LabelWindow int
}

// Parser wires the classifier and resolver together. Safe for concurrent
// use: per-parse state is call-scoped and the classifier serializes its
// shared matcher.
type Parser struct {
	classifier *vendor.Classifier
	resolver   *totals.Resolver
	logger     *slog.Logger
}

// New builds a parser over the default vendor profile table.
func New(logger *slog.Logger) *Parser {
	return &Parser{
		classifier: vendor.NewClassifier(vendor.DefaultProfiles()),
		resolver:   totals.NewResolver(logger),
		logger:     logger,
	}
}

// Parse turns one invoice's extracted text into a structured record.
// Empty or whitespace-only input yields an empty-but-well-formed record and
// nil error. The only error path is a strict-mode totals inconsistency.
func (p *Parser) Parse(text string, opts Options) (*invoice.InvoiceRecord, error) {
	if strings.TrimSpace(text) == "" {
		return invoice.Empty(), nil
	}

	method := opts.PaymentMethod
	if method == "" {
		method = invoice.PaymentCash
	}

	corpus := normalizer.Flatten(text)
	lines := normalizer.Lines(text)

	profile := p.classifier.Classify(corpus)

	items := extractor.ForKind(profile.Strategy, p.logger).Extract(lines)
	if len(items) == 0 && profile.Strategy != vendor.StrategyGeneric {
		// One automatic retry with the lowest-confidence fallback before
		// giving up with an empty item list.
		if p.logger != nil {
			p.logger.Warn("vendor extractor yielded no items; retrying with generic fallback",
				slog.String("vendor", profile.Name))
		}
		items = extractor.ForKind(vendor.StrategyGeneric, p.logger).Extract(lines)
	}
	if items == nil {
		items = []invoice.LineItem{}
	}

	resolver := p.resolver
	if opts.LabelWindow > 0 && opts.LabelWindow != resolver.Window {
		resolver = &totals.Resolver{Window: opts.LabelWindow, Logger: p.logger}
	}

	resolved, err := resolver.Resolve(corpus, method, opts.StrictTotals)
	if err != nil {
		return nil, err
	}

	number, date := contact.ExtractInvoiceMeta(corpus)

	rec := &invoice.InvoiceRecord{
		Vendor:        profile.Name,
		InvoiceNumber: number,
		InvoiceDate:   date,
		ContactInfo: invoice.ContactInfo{
			Phones: orEmpty(contact.ExtractPhones(corpus)),
			Emails: orEmpty(contact.ExtractEmails(corpus)),
		},
		PickupAddresses: orEmptyAddrs(contact.ExtractAddresses(corpus)),
		PickupDates:     orEmpty(contact.ExtractPickupDates(text)),
		Items:           items,
		Totals:          resolved,
		SpecialNotes:    orEmpty(extractNotes(lines)),
	}
	return rec, nil
}

// extractNotes captures note-marker lines verbatim, deduplicated.
func extractNotes(lines []string) []string {
	var notes []string
	seen := make(map[string]struct{})

	for _, line := range lines {
		lower := strings.ToLower(line)
		for _, m := range noteMarkers {
			if !strings.Contains(lower, m) {
				continue
			}
			note := strings.TrimSpace(notePrefixRe.ReplaceAllString(line, ""))
			if note == "" {
				break
			}
			if _, dup := seen[note]; !dup {
				seen[note] = struct{}{}
				notes = append(notes, note)
			}
			break
		}
	}
	return notes
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func orEmptyAddrs(a []invoice.Address) []invoice.Address {
	if a == nil {
		return []invoice.Address{}
	}
	return a
}
