// Package invoice defines the structured result model produced by the
// parsing core. All entities are built once per parse invocation and are
// not mutated after assembly.
package invoice

import (
	"github.com/shopspring/decimal"
)

// PaymentMethod declares how the buyer intends to settle the invoice.
// It drives which resolved total becomes the final figure.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCredit PaymentMethod = "credit"
)

// UnknownVendor is the display name used when no vendor profile matches.
const UnknownVendor = "Unknown"

// LineItem is a single auctioned lot recovered from the invoice text.
// HammerPrice is a plain decimal string ("1234.56", no currency symbol,
// no thousands separator) or empty when no price could be associated.
type LineItem struct {
	LotNumber   string `json:"lotNumber"`
	Description string `json:"description"`
	HammerPrice string `json:"hammerPrice,omitempty"`
}

// Address is a structured pickup location. Address2 is only populated when
// the raw street text carried a parenthetical qualifier; Street never
// contains parentheses after construction.
type Address struct {
	Street   string `json:"street"`
	Address2 string `json:"address2,omitempty"`
	City     string `json:"city"`
	State    string `json:"state"`
	Zip      string `json:"zip"`
	OneLine  string `json:"oneLine"`
}

// DedupKey identifies an address for de-duplication purposes.
func (a Address) DedupKey() string {
	return a.Street + "|" + a.Address2
}

// ContactInfo holds deduplicated phone numbers and email addresses in
// first-seen order.
type ContactInfo struct {
	Phones []string `json:"phones"`
	Emails []string `json:"emails"`
}

// Totals carries the labeled currency amounts captured from the invoice
// plus the reconciled figures. Nil means the value was never captured and
// could not be derived.
type Totals struct {
	Subtotal       *decimal.Decimal `json:"subtotal,omitempty"`
	ConvenienceFee *decimal.Decimal `json:"convenienceFee,omitempty"`
	CashTotal      *decimal.Decimal `json:"cashTotal,omitempty"`
	CreditTotal    *decimal.Decimal `json:"creditTotal,omitempty"`
	GrandTotal     *decimal.Decimal `json:"grandTotal,omitempty"`

	// Total is the single resolved figure chosen according to the caller's
	// declared payment method.
	Total *decimal.Decimal `json:"total,omitempty"`
}

// InvoiceRecord is the root parse result.
type InvoiceRecord struct {
	Vendor          string      `json:"vendor"`
	InvoiceNumber   string      `json:"invoiceNumber,omitempty"`
	InvoiceDate     string      `json:"invoiceDate,omitempty"`
	ContactInfo     ContactInfo `json:"contactInfo"`
	PickupAddresses []Address   `json:"pickupAddresses"`
	PickupDates     []string    `json:"pickupDates"`
	Items           []LineItem  `json:"items"`
	Totals          Totals      `json:"totals"`
	SpecialNotes    []string    `json:"specialNotes"`
}

// Empty returns a well-formed zero record for unusable input.
func Empty() *InvoiceRecord {
	return &InvoiceRecord{
		Vendor:          UnknownVendor,
		ContactInfo:     ContactInfo{Phones: []string{}, Emails: []string{}},
		PickupAddresses: []Address{},
		PickupDates:     []string{},
		Items:           []LineItem{},
		SpecialNotes:    []string{},
	}
}
