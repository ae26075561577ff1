package export

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/lotledger/invoice-parser/internal/domain/invoice"
	"github.com/lotledger/invoice-parser/pkg/money"
)

const (
	itemsSheet  = "Items"
	totalsSheet = "Totals"
)

// WriteXLSX renders the record as a two-sheet workbook: line items and the
// totals reconciliation.
func WriteXLSX(w io.Writer, rec *invoice.InvoiceRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", itemsSheet)

	headers := []string{"Lot", "Description", "Hammer Price"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(itemsSheet, cell, h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, item := range rec.Items {
		values := []interface{}{item.LotNumber, item.Description, item.HammerPrice}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(itemsSheet, cell, v); err != nil {
				return fmt.Errorf("failed to write item row: %w", err)
			}
		}
	}

	if _, err := f.NewSheet(totalsSheet); err != nil {
		return fmt.Errorf("failed to create totals sheet: %w", err)
	}

	labels := []struct {
		name  string
		value *decimal.Decimal
	}{
		{"Vendor", nil},
		{"Subtotal", rec.Totals.Subtotal},
		{"Convenience Fee", rec.Totals.ConvenienceFee},
		{"Cash Total", rec.Totals.CashTotal},
		{"Credit Total", rec.Totals.CreditTotal},
		{"Grand Total", rec.Totals.GrandTotal},
		{"Total", rec.Totals.Total},
	}
	for row, l := range labels {
		nameCell, _ := excelize.CoordinatesToCellName(1, row+1)
		valueCell, _ := excelize.CoordinatesToCellName(2, row+1)
		if err := f.SetCellValue(totalsSheet, nameCell, l.name); err != nil {
			return fmt.Errorf("failed to write totals label: %w", err)
		}

		var display string
		if l.name == "Vendor" {
			display = rec.Vendor
		} else if l.value != nil {
			display = money.NewFromDecimal(*l.value, money.USD).Display()
		}
		if err := f.SetCellValue(totalsSheet, valueCell, display); err != nil {
			return fmt.Errorf("failed to write totals value: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
