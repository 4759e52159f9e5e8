// Package pricing turns a raw cart subtotal into the breakdown charged at
// checkout. It is pure: settings are passed in, nothing is read from globals.
package pricing

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// MinorUnitPlaces is the number of decimal places of the currency's minor unit.
const MinorUnitPlaces int32 = 2

var hundred = decimal.NewFromInt(100)

type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
}

type Settings struct {
	Currency              Currency        `json:"currency"`
	TaxRatePercent        decimal.Decimal `json:"taxRatePercent"`
	FreeShippingThreshold decimal.Decimal `json:"freeShippingThreshold"`
	ShippingFee           decimal.Decimal `json:"shippingFee"`
}

func (s Settings) MarshalZerologObject(e *zerolog.Event) {
	e.Str("currency", s.Currency.Code).
		Str("taxRatePercent", s.TaxRatePercent.String()).
		Str("freeShippingThreshold", s.FreeShippingThreshold.String()).
		Str("shippingFee", s.ShippingFee.String())
}

type Totals struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	Shipping   decimal.Decimal `json:"shipping"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
}

func (t Totals) MarshalZerologObject(e *zerolog.Event) {
	e.Str("subtotal", t.Subtotal.StringFixed(MinorUnitPlaces)).
		Str("tax", t.Tax.StringFixed(MinorUnitPlaces)).
		Str("shipping", t.Shipping.StringFixed(MinorUnitPlaces)).
		Str("grandTotal", t.GrandTotal.StringFixed(MinorUnitPlaces))
}

// ComputeTotals prices rawSubtotal with the flat tax rate and the
// free-shipping threshold. Shipping is waived when the subtotal reaches the
// threshold, equality included. GrandTotal is always exactly
// Subtotal + Tax + Shipping.
func ComputeTotals(rawSubtotal decimal.Decimal, settings Settings) Totals {
	subtotal := roundHalfUp(rawSubtotal)
	tax := roundHalfUp(subtotal.Mul(settings.TaxRatePercent).Div(hundred))

	shipping := roundHalfUp(settings.ShippingFee)
	if subtotal.GreaterThanOrEqual(settings.FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	return Totals{
		Subtotal:   subtotal,
		Tax:        tax,
		Shipping:   shipping,
		GrandTotal: subtotal.Add(tax).Add(shipping),
	}
}

// roundHalfUp rounds to the minor unit. Inputs are never negative here, where
// decimal's half-away-from-zero rounding is half-up.
func roundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Round(MinorUnitPlaces)
}
