// Package export renders parsed invoice records for downstream consumers:
// CSV line-item sheets, XLSX reports, and indented JSON. Exporters only
// read the record; the parsing core knows nothing about rendering.
package export

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/lotledger/invoice-parser/internal/domain/invoice"
)

// ItemRow is one CSV row: invoice header columns repeated per line item so
// the sheet is self-describing when invoices are concatenated.
type ItemRow struct {
	Vendor        string `csv:"vendor"`
	InvoiceNumber string `csv:"invoice_number"`
	InvoiceDate   string `csv:"invoice_date"`
	LotNumber     string `csv:"lot_number"`
	Description   string `csv:"description"`
	HammerPrice   string `csv:"hammer_price"`
}

// WriteCSV renders the record's line items as CSV.
func WriteCSV(w io.Writer, rec *invoice.InvoiceRecord) error {
	rows := make([]*ItemRow, 0, len(rec.Items))
	for _, item := range rec.Items {
		rows = append(rows, &ItemRow{
			Vendor:        rec.Vendor,
			InvoiceNumber: rec.InvoiceNumber,
			InvoiceDate:   rec.InvoiceDate,
			LotNumber:     item.LotNumber,
			Description:   item.Description,
			HammerPrice:   item.HammerPrice,
		})
	}

	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}
