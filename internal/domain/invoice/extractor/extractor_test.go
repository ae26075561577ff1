package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotledger/invoice-parser/internal/domain/invoice"
	"github.com/lotledger/invoice-parser/internal/domain/invoice/normalizer"
	"github.com/lotledger/invoice-parser/internal/domain/invoice/vendor"
)

func TestForKind(t *testing.T) {
	assert.IsType(t, &Sequential{}, ForKind(vendor.StrategySequential, nil))
	assert.IsType(t, &TableBlock{}, ForKind(vendor.StrategyTableBlock, nil))
	assert.IsType(t, &Generic{}, ForKind(vendor.StrategyGeneric, nil))
	assert.IsType(t, &Generic{}, ForKind(vendor.StrategyKind("bogus"), nil))
}

func TestSequential_Extract(t *testing.T) {
	extract := func(text string) []invoice.LineItem {
		e := &Sequential{}
		return e.Extract(normalizer.Lines(text))
	}

	t.Run("price on continuation line and price glued to lot line", func(t *testing.T) {
		items := extract(`257A Widget assembly, chrome
$ 1,234.56
258 Gear box 2,500.00$`)

		require.Len(t, items, 2)
		assert.Equal(t, invoice.LineItem{
			LotNumber:   "257A",
			Description: "Widget assembly, chrome",
			HammerPrice: "1234.56",
		}, items[0])
		assert.Equal(t, invoice.LineItem{
			LotNumber:   "258",
			Description: "Gear box",
			HammerPrice: "2500.00",
		}, items[1])
	})

	t.Run("wrapped description accumulates until a price appears", func(t *testing.T) {
		items := extract(`301 Pallet of electrical
conduit and junction boxes
175.00`)

		require.Len(t, items, 1)
		assert.Equal(t, "301", items[0].LotNumber)
		assert.Equal(t, "Pallet of electrical conduit and junction boxes", items[0].Description)
		assert.Equal(t, "175.00", items[0].HammerPrice)
	})

	t.Run("terminator stops extraction", func(t *testing.T) {
		items := extract(`257 Widget $100.00
Subtotal: $100.00
999 Should never appear $50.00`)

		require.Len(t, items, 1)
		assert.Equal(t, "257", items[0].LotNumber)
	})

	t.Run("noise lines do not corrupt descriptions", func(t *testing.T) {
		items := extract(`257 Widget assembly
Page 1 of 2
All items sold as is, no warranty
$100.00`)

		require.Len(t, items, 1)
		assert.Equal(t, "Widget assembly", items[0].Description)
	})

	t.Run("lot with no discoverable price is dropped", func(t *testing.T) {
		items := extract(`300 Misc pallet, contents unknown
Subtotal: $0.00`)
		assert.Empty(t, items)
	})

	t.Run("duplicate lot and price pairs are suppressed", func(t *testing.T) {
		items := extract(`257 Widget $100.00
257 Widget $100.00`)
		assert.Len(t, items, 1)
	})

	t.Run("trailing lot commits at end of input", func(t *testing.T) {
		items := extract(`400 Forklift attachment
$950.00`)
		require.Len(t, items, 1)
		assert.Equal(t, "950.00", items[0].HammerPrice)
	})
}

func TestTableBlock_Extract(t *testing.T) {
	extract := func(text string) []invoice.LineItem {
		e := &TableBlock{}
		return e.Extract(normalizer.Lines(text))
	}

	t.Run("second amount is the sale price", func(t *testing.T) {
		items := extract(`Heartland Equipment Exchange
Lot Paddle Description Bid Sale Price Premium Total
101 555 Hydraulic press $500.00 $550.00 $55.00 $605.00
102 555 Conveyor section
$300.00 $330.00
Totals: $955.00`)

		require.Len(t, items, 2)
		assert.Equal(t, invoice.LineItem{
			LotNumber:   "101",
			Description: "Hydraulic press",
			HammerPrice: "550.00",
		}, items[0])
		assert.Equal(t, invoice.LineItem{
			LotNumber:   "102",
			Description: "Conveyor section",
			HammerPrice: "330.00",
		}, items[1])
	})

	t.Run("single amount is taken as the price", func(t *testing.T) {
		items := extract(`Lot Description Price
200 Steel workbench $125.00
Totals:`)

		require.Len(t, items, 1)
		assert.Equal(t, "125.00", items[0].HammerPrice)
	})

	t.Run("loading fee lines are excluded", func(t *testing.T) {
		items := extract(`Lot Paddle Description Sale Price
101 555 Hydraulic press $500.00 $550.00
Loading Fee $75.00
Totals:`)

		require.Len(t, items, 1)
		assert.Equal(t, "101", items[0].LotNumber)
		assert.Equal(t, "550.00", items[0].HammerPrice)
	})

	t.Run("nothing before the header row is item data", func(t *testing.T) {
		items := extract(`99 888 Not an item $10.00 $11.00
Lot Paddle Description Sale Price
101 555 Hydraulic press $500.00 $550.00`)

		require.Len(t, items, 1)
		assert.Equal(t, "101", items[0].LotNumber)
	})

	t.Run("block with no amounts is dropped", func(t *testing.T) {
		items := extract(`Lot Description Price
300 Misc pallet, contents unknown
Totals:`)
		assert.Empty(t, items)
	})

	t.Run("footer stops extraction", func(t *testing.T) {
		items := extract(`Lot Description Price
101 Hydraulic press $550.00
Buyer Information
102 Should never appear $10.00`)

		require.Len(t, items, 1)
		assert.Equal(t, "101", items[0].LotNumber)
	})
}

func TestGeneric_Extract(t *testing.T) {
	extract := func(text string) []invoice.LineItem {
		e := &Generic{}
		return e.Extract(normalizer.Lines(text))
	}

	t.Run("fixed lot and code shape with wrapped continuation", func(t *testing.T) {
		items := extract(`Acme Surplus Wholesale
1001 2024 Pallet of shop tools
assorted hand tools and fixtures
12 99
1002 2024 Steel workbench`)

		require.Len(t, items, 2)
		assert.Equal(t, "1001", items[0].LotNumber)
		assert.Equal(t, "Pallet of shop tools assorted hand tools and fixtures", items[0].Description)
		assert.Empty(t, items[0].HammerPrice)
		assert.Equal(t, "1002", items[1].LotNumber)
		assert.Equal(t, "Steel workbench", items[1].Description)
	})

	t.Run("no matching lines yields no items", func(t *testing.T) {
		items := extract("just some text\nwith no lot structure")
		assert.Empty(t, items)
	})
}
