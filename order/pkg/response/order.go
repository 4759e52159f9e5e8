package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Alturino/storefront/internal/pricing"
	"github.com/Alturino/storefront/order/pkg/request"
)

type Order struct {
	ID               uuid.UUID               `json:"id"`
	OwnerID          *uuid.UUID              `json:"ownerId,omitempty"`
	Status           string                  `json:"status"`
	Subtotal         decimal.Decimal         `json:"subtotal"`
	Tax              decimal.Decimal         `json:"tax"`
	ShippingFee      decimal.Decimal         `json:"shippingFee"`
	TaxRatePercent   decimal.Decimal         `json:"taxRatePercent"`
	Total            decimal.Decimal         `json:"total"`
	ShippingAddress  request.ShippingAddress `json:"shippingAddress"`
	PaymentReference *string                 `json:"paymentReference,omitempty"`
	OrderItems       []OrderItem             `json:"orderItems,omitempty"`
	CreatedAt        time.Time               `json:"createdAt"`
	UpdatedAt        time.Time               `json:"updatedAt"`
}

type OrderItem struct {
	ID              uuid.UUID       `json:"id"`
	OrderID         uuid.UUID       `json:"orderId"`
	ProductID       uuid.UUID       `json:"productId"`
	DisplayName     string          `json:"displayName"`
	Quantity        int32           `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"priceAtPurchase"`
}

// Checkout is what a successful materialization returns. RedirectURL is
// empty when the payment handoff failed; the order stays PENDING.
type Checkout struct {
	OrderID     uuid.UUID       `json:"orderId"`
	Total       decimal.Decimal `json:"total"`
	Totals      pricing.Totals  `json:"totals"`
	RedirectURL string          `json:"redirectUrl,omitempty"`
}
