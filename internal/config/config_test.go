package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPricingSettings(t *testing.T) {
	p := Pricing{
		CurrencyCode:          "ILS",
		CurrencySymbol:        "₪",
		TaxRatePercent:        "17",
		FreeShippingThreshold: "500",
		ShippingFee:           "30",
	}

	settings, err := p.Settings()
	require.NoError(t, err)
	assert.True(t, settings.TaxRatePercent.Equal(decimal.NewFromInt(17)))
	assert.True(t, settings.FreeShippingThreshold.Equal(decimal.NewFromInt(500)))
	assert.True(t, settings.ShippingFee.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, "ILS", settings.Currency.Code)
}

func TestPricingSettingsRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		pricing Pricing
	}{
		{
			name:    "given non numeric tax rate should return error",
			pricing: Pricing{TaxRatePercent: "seventeen", FreeShippingThreshold: "500", ShippingFee: "30"},
		},
		{
			name:    "given negative shipping fee should return error",
			pricing: Pricing{TaxRatePercent: "17", FreeShippingThreshold: "500", ShippingFee: "-1"},
		},
		{
			name:    "given empty threshold should return error",
			pricing: Pricing{TaxRatePercent: "17", ShippingFee: "30"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.pricing.Settings()
			assert.Error(t, err)
		})
	}
}

func TestCacheAddr(t *testing.T) {
	assert.Equal(t, "localhost:6379", Cache{Host: "localhost", Port: 6379}.Addr())
}
