package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	orderRequest "github.com/Alturino/storefront/order/pkg/request"
)

// AddItem adds one line to the session cart. An omitted quantity means one.
type AddItem struct {
	ProductID    uuid.UUID       `json:"productId"    validate:"required"`
	UnitPrice    decimal.Decimal `json:"unitPrice"    validate:"price"`
	Quantity     *int            `json:"quantity"     validate:"omitempty,gte=1,lte=9999"`
	DisplayName  string          `json:"displayName"  validate:"max=200"`
	DisplayImage string          `json:"displayImage" validate:"max=500"`
}

// UpdateQuantity sets the quantity exactly; zero or less removes the line.
type UpdateQuantity struct {
	Quantity int `json:"quantity" validate:"lte=9999"`
}

// SetDisplay sets the display flag, or toggles it when Open is omitted.
type SetDisplay struct {
	Open *bool `json:"open"`
}

type Checkout struct {
	CustomerForm orderRequest.ShippingAddress `json:"customerForm"`
}
