package totals

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotledger/invoice-parser/internal/domain/invoice"
)

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver(nil)

	t.Run("credit method derives and prefers the credit total", func(t *testing.T) {
		corpus := "Subtotal: $1,000.00 Convenience Fee: $35.00 Cash Total Due: $1,000.00 Credit Total Due: $1,035.00"

		got, err := r.Resolve(corpus, invoice.PaymentCredit, false)
		require.NoError(t, err)

		require.NotNil(t, got.Subtotal)
		assert.Equal(t, "1000.00", got.Subtotal.StringFixed(2))
		require.NotNil(t, got.ConvenienceFee)
		assert.Equal(t, "35.00", got.ConvenienceFee.StringFixed(2))
		require.NotNil(t, got.CashTotal)
		assert.Equal(t, "1000.00", got.CashTotal.StringFixed(2))
		require.NotNil(t, got.CreditTotal)
		assert.Equal(t, "1035.00", got.CreditTotal.StringFixed(2))
		require.NotNil(t, got.Total)
		assert.Equal(t, "1035.00", got.Total.StringFixed(2))
	})

	t.Run("cash method prefers grand total then cash total", func(t *testing.T) {
		corpus := "Subtotal: $1,000.00 Cash Total Due: $1,000.00 Grand Total: $1,050.00"

		got, err := r.Resolve(corpus, invoice.PaymentCash, false)
		require.NoError(t, err)
		require.NotNil(t, got.Total)
		assert.Equal(t, "1050.00", got.Total.StringFixed(2))

		corpus = "Subtotal: $1,000.00 Cash Total Due: $1,000.00"
		got, err = r.Resolve(corpus, invoice.PaymentCash, false)
		require.NoError(t, err)
		require.NotNil(t, got.Total)
		assert.Equal(t, "1000.00", got.Total.StringFixed(2))
	})

	t.Run("cash total equal to convenience fee is a column misread", func(t *testing.T) {
		corpus := "Subtotal: $2,000.00 Convenience Fee: $70.00 Cash Total Due: $70.00"

		got, err := r.Resolve(corpus, invoice.PaymentCash, false)
		require.NoError(t, err)
		// Misread discarded, then floored back to the subtotal.
		require.NotNil(t, got.CashTotal)
		assert.Equal(t, "2000.00", got.CashTotal.StringFixed(2))
		require.NotNil(t, got.Total)
		assert.Equal(t, "2000.00", got.Total.StringFixed(2))
	})

	t.Run("strict mode surfaces the misread as an error", func(t *testing.T) {
		corpus := "Subtotal: $2,000.00 Convenience Fee: $70.00 Cash Total Due: $70.00"

		_, err := r.Resolve(corpus, invoice.PaymentCash, true)
		require.Error(t, err)

		var inconsistent *InconsistentTotalsError
		require.True(t, errors.As(err, &inconsistent))
		assert.Equal(t, "cashTotal", inconsistent.Field)
		assert.Equal(t, "70.00", inconsistent.Captured.StringFixed(2))
		assert.Equal(t, "2000.00", inconsistent.Derived.StringFixed(2))
	})

	t.Run("strict mode cross-validates a captured credit total", func(t *testing.T) {
		corpus := "Subtotal: $1,000.00 Convenience Fee: $35.00 Credit Total Due: $1,100.00"

		_, err := r.Resolve(corpus, invoice.PaymentCredit, true)
		require.Error(t, err)

		var inconsistent *InconsistentTotalsError
		require.True(t, errors.As(err, &inconsistent))
		assert.Equal(t, "creditTotal", inconsistent.Field)
		assert.Equal(t, "1035.00", inconsistent.Derived.StringFixed(2))
	})

	t.Run("non-strict mode overrides the captured credit total", func(t *testing.T) {
		corpus := "Subtotal: $1,000.00 Convenience Fee: $35.00 Credit Total Due: $1,100.00"

		got, err := r.Resolve(corpus, invoice.PaymentCredit, false)
		require.NoError(t, err)
		require.NotNil(t, got.CreditTotal)
		assert.Equal(t, "1035.00", got.CreditTotal.StringFixed(2))
	})

	t.Run("label binds to the near amount, not a later unrelated one", func(t *testing.T) {
		corpus := "Subtotal: $1,234.56 " + strings.Repeat("filler text ", 20) + "deposit on file $9,999.00"

		got, err := r.Resolve(corpus, invoice.PaymentCash, false)
		require.NoError(t, err)
		require.NotNil(t, got.Subtotal)
		assert.Equal(t, "1234.56", got.Subtotal.StringFixed(2))
	})

	t.Run("label binds only within the window", func(t *testing.T) {
		corpus := "Subtotal: " + strings.Repeat("x", DefaultWindow+10) + " $500.00"

		got, err := r.Resolve(corpus, invoice.PaymentCash, false)
		require.NoError(t, err)
		assert.Nil(t, got.Subtotal)
	})

	t.Run("resolved total never undercuts the subtotal", func(t *testing.T) {
		corpus := "Subtotal: $1,000.00 Grand Total: $900.00"

		got, err := r.Resolve(corpus, invoice.PaymentCash, false)
		require.NoError(t, err)
		require.NotNil(t, got.Total)
		assert.Equal(t, "1000.00", got.Total.StringFixed(2))
	})

	t.Run("cash total floored at subtotal when missing", func(t *testing.T) {
		corpus := "Subtotal: $1,000.00"

		got, err := r.Resolve(corpus, invoice.PaymentCash, false)
		require.NoError(t, err)
		require.NotNil(t, got.CashTotal)
		assert.Equal(t, "1000.00", got.CashTotal.StringFixed(2))
	})

	t.Run("no labels yields all-nil totals and no error", func(t *testing.T) {
		got, err := r.Resolve("just item text, nothing labeled", invoice.PaymentCash, false)
		require.NoError(t, err)
		assert.Nil(t, got.Subtotal)
		assert.Nil(t, got.ConvenienceFee)
		assert.Nil(t, got.CashTotal)
		assert.Nil(t, got.CreditTotal)
		assert.Nil(t, got.GrandTotal)
		assert.Nil(t, got.Total)
	})
}

func TestInconsistentTotalsError_Error(t *testing.T) {
	err := &InconsistentTotalsError{
		Field:    "creditTotal",
		Captured: decimal.RequireFromString("1100.00"),
		Derived:  decimal.RequireFromString("1035.00"),
	}
	assert.Equal(t, "totals inconsistent: creditTotal captured 1100.00 but derived 1035.00", err.Error())
}
