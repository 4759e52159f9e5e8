package response

import (
	"github.com/shopspring/decimal"

	"github.com/Alturino/storefront/cart/pkg/cart"
	"github.com/Alturino/storefront/internal/pricing"
)

type Cart struct {
	SessionID   string           `json:"sessionId"`
	Items       []cart.LineItem  `json:"items"`
	ItemCount   int              `json:"itemCount"`
	RawSubtotal decimal.Decimal  `json:"rawSubtotal"`
	Totals      pricing.Totals   `json:"totals"`
	Currency    pricing.Currency `json:"currency"`
	IsOpen      bool             `json:"isOpen"`
}

func FromCart(sessionID string, c *cart.Cart, settings pricing.Settings) Cart {
	subtotal := c.RawSubtotal()
	return Cart{
		SessionID:   sessionID,
		Items:       c.Items(),
		ItemCount:   c.TotalItemCount(),
		RawSubtotal: subtotal,
		Totals:      pricing.ComputeTotals(subtotal, settings),
		Currency:    settings.Currency,
		IsOpen:      c.IsOpen(),
	}
}
