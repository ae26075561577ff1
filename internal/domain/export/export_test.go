package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/lotledger/invoice-parser/internal/domain/invoice"
)

func sampleRecord() *invoice.InvoiceRecord {
	subtotal := decimal.RequireFromString("3734.56")
	total := decimal.RequireFromString("3734.56")

	return &invoice.InvoiceRecord{
		Vendor:        "Heartland Auction Group",
		InvoiceNumber: "4417",
		InvoiceDate:   "06/01/2024",
		ContactInfo: invoice.ContactInfo{
			Phones: []string{"(260) 555-0234"},
			Emails: []string{"office@heartlandauction.com"},
		},
		PickupAddresses: []invoice.Address{},
		PickupDates:     []string{},
		Items: []invoice.LineItem{
			{LotNumber: "257A", Description: "Widget assembly", HammerPrice: "1234.56"},
			{LotNumber: "258", Description: "Gear box", HammerPrice: "2500.00"},
		},
		Totals:       invoice.Totals{Subtotal: &subtotal, Total: &total},
		SpecialNotes: []string{},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRecord()))

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "vendor,invoice_number,invoice_date,lot_number,description,hammer_price", lines[0])
	assert.Contains(t, lines[1], "257A")
	assert.Contains(t, lines[1], "1234.56")
	assert.Contains(t, lines[2], "Gear box")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	rec := sampleRecord()
	require.NoError(t, WriteJSON(&buf, rec))

	var got invoice.InvoiceRecord
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, rec.Vendor, got.Vendor)
	assert.Equal(t, rec.Items, got.Items)
	require.NotNil(t, got.Totals.Subtotal)
	assert.True(t, got.Totals.Subtotal.Equal(*rec.Totals.Subtotal))
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleRecord()))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	lot, err := f.GetCellValue("Items", "A2")
	require.NoError(t, err)
	assert.Equal(t, "257A", lot)

	price, err := f.GetCellValue("Items", "C3")
	require.NoError(t, err)
	assert.Equal(t, "2500.00", price)

	vendor, err := f.GetCellValue("Totals", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Heartland Auction Group", vendor)

	subtotal, err := f.GetCellValue("Totals", "B2")
	require.NoError(t, err)
	assert.Equal(t, "$3,734.56", subtotal)
}

func TestWriteConsole(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteConsole(&buf, sampleRecord()))

	out := buf.String()
	assert.Contains(t, out, "Vendor: Heartland Auction Group")
	assert.Contains(t, out, "257A")
	assert.Contains(t, out, "Gear box")
	assert.Contains(t, out, "Subtotal: $3,734.56")
}
