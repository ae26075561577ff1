package export

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/lotledger/invoice-parser/internal/domain/invoice"
	"github.com/lotledger/invoice-parser/pkg/money"
)

// WriteConsole renders a human-readable summary of the record.
func WriteConsole(w io.Writer, rec *invoice.InvoiceRecord) error {
	fmt.Fprintf(w, "Vendor: %s\n", rec.Vendor)
	if rec.InvoiceNumber != "" {
		fmt.Fprintf(w, "Invoice #: %s\n", rec.InvoiceNumber)
	}
	if rec.InvoiceDate != "" {
		fmt.Fprintf(w, "Date: %s\n", rec.InvoiceDate)
	}
	if len(rec.ContactInfo.Phones) > 0 {
		fmt.Fprintf(w, "Phones: %s\n", strings.Join(rec.ContactInfo.Phones, ", "))
	}
	if len(rec.ContactInfo.Emails) > 0 {
		fmt.Fprintf(w, "Emails: %s\n", strings.Join(rec.ContactInfo.Emails, ", "))
	}
	for _, a := range rec.PickupAddresses {
		fmt.Fprintf(w, "Pickup: %s\n", a.OneLine)
		if a.Address2 != "" {
			fmt.Fprintf(w, "        (%s)\n", a.Address2)
		}
	}
	for _, d := range rec.PickupDates {
		fmt.Fprintf(w, "Pickup dates: %s\n", d)
	}

	fmt.Fprintf(w, "\nItems (%d):\n", len(rec.Items))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LOT\tPRICE\tDESCRIPTION")
	for _, item := range rec.Items {
		price := item.HammerPrice
		if price == "" {
			price = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", item.LotNumber, price, item.Description)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nTotals:")
	printAmount(w, "Subtotal", rec.Totals.Subtotal)
	printAmount(w, "Convenience Fee", rec.Totals.ConvenienceFee)
	printAmount(w, "Cash Total", rec.Totals.CashTotal)
	printAmount(w, "Credit Total", rec.Totals.CreditTotal)
	printAmount(w, "Grand Total", rec.Totals.GrandTotal)
	printAmount(w, "Total", rec.Totals.Total)

	for _, n := range rec.SpecialNotes {
		fmt.Fprintf(w, "Note: %s\n", n)
	}
	return nil
}

func printAmount(w io.Writer, label string, d *decimal.Decimal) {
	if d == nil {
		return
	}
	fmt.Fprintf(w, "  %s: %s\n", label, money.NewFromDecimal(*d, money.USD).Display())
}
