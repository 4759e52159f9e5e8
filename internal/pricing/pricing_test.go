package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func settings(taxRate, threshold, fee string) Settings {
	return Settings{
		Currency:              Currency{Code: "ILS", Symbol: "₪"},
		TaxRatePercent:        decimal.RequireFromString(taxRate),
		FreeShippingThreshold: decimal.RequireFromString(threshold),
		ShippingFee:           decimal.RequireFromString(fee),
	}
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name     string
		subtotal string
		settings Settings
		expected Totals
	}{
		{
			name:     "given two lines under threshold should charge tax and shipping",
			subtotal: "250",
			settings: settings("17", "500", "30"),
			expected: Totals{
				Subtotal:   decimal.RequireFromString("250"),
				Tax:        decimal.RequireFromString("42.50"),
				Shipping:   decimal.RequireFromString("30"),
				GrandTotal: decimal.RequireFromString("322.50"),
			},
		},
		{
			name:     "given subtotal equal to threshold should waive shipping",
			subtotal: "500",
			settings: settings("17", "500", "30"),
			expected: Totals{
				Subtotal:   decimal.RequireFromString("500"),
				Tax:        decimal.RequireFromString("85"),
				Shipping:   decimal.Zero,
				GrandTotal: decimal.RequireFromString("585"),
			},
		},
		{
			name:     "given subtotal just below threshold should charge shipping",
			subtotal: "499.99",
			settings: settings("17", "500", "30"),
			expected: Totals{
				Subtotal:   decimal.RequireFromString("499.99"),
				Tax:        decimal.RequireFromString("85.00"),
				Shipping:   decimal.RequireFromString("30"),
				GrandTotal: decimal.RequireFromString("614.99"),
			},
		},
		{
			name:     "given half cent tax should round half up",
			subtotal: "0.50",
			settings: settings("1", "500", "0"),
			expected: Totals{
				Subtotal:   decimal.RequireFromString("0.50"),
				Tax:        decimal.RequireFromString("0.01"),
				Shipping:   decimal.Zero,
				GrandTotal: decimal.RequireFromString("0.51"),
			},
		},
		{
			name:     "given empty cart should only charge shipping",
			subtotal: "0",
			settings: settings("17", "500", "30"),
			expected: Totals{
				Subtotal:   decimal.Zero,
				Tax:        decimal.Zero,
				Shipping:   decimal.RequireFromString("30"),
				GrandTotal: decimal.RequireFromString("30"),
			},
		},
		{
			name:     "given zero tax rate should not charge tax",
			subtotal: "120.10",
			settings: settings("0", "100", "30"),
			expected: Totals{
				Subtotal:   decimal.RequireFromString("120.10"),
				Tax:        decimal.Zero,
				Shipping:   decimal.Zero,
				GrandTotal: decimal.RequireFromString("120.10"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := ComputeTotals(decimal.RequireFromString(tt.subtotal), tt.settings)

			assert.Truef(t, tt.expected.Subtotal.Equal(actual.Subtotal), "subtotal expected=%s actual=%s", tt.expected.Subtotal, actual.Subtotal)
			assert.Truef(t, tt.expected.Tax.Equal(actual.Tax), "tax expected=%s actual=%s", tt.expected.Tax, actual.Tax)
			assert.Truef(t, tt.expected.Shipping.Equal(actual.Shipping), "shipping expected=%s actual=%s", tt.expected.Shipping, actual.Shipping)
			assert.Truef(t, tt.expected.GrandTotal.Equal(actual.GrandTotal), "grandTotal expected=%s actual=%s", tt.expected.GrandTotal, actual.GrandTotal)
		})
	}
}

func TestComputeTotalsIsIdempotentAndSumsExactly(t *testing.T) {
	s := settings("17", "500", "29.90")
	for cents := int64(0); cents <= 100000; cents += 137 {
		subtotal := decimal.New(cents, -2)

		first := ComputeTotals(subtotal, s)
		second := ComputeTotals(subtotal, s)

		assert.Equal(t, first, second, "computeTotals should be deterministic for subtotal=%s", subtotal)
		sum := first.Subtotal.Add(first.Tax).Add(first.Shipping)
		assert.Truef(t, sum.Equal(first.GrandTotal), "grandTotal=%s should equal sum=%s", first.GrandTotal, sum)
		assert.LessOrEqual(t, -first.Tax.Exponent(), MinorUnitPlaces, "tax should be rounded to the minor unit")
	}
}
