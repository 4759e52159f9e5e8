package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShippingAddress is frozen into the order row as submitted.
type ShippingAddress struct {
	FirstName  string `json:"firstName"          validate:"required,max=100"`
	LastName   string `json:"lastName"           validate:"required,max=100"`
	Address    string `json:"address"            validate:"required,max=200"`
	City       string `json:"city"               validate:"required,max=100"`
	PostalCode string `json:"postalCode"         validate:"required,postal_code"`
	Phone      string `json:"phone"              validate:"required,il_phone"`
	Email      string `json:"email"              validate:"required,email"`
	IDNumber   string `json:"idNumber,omitempty" validate:"omitempty,il_id"`
}

func (s ShippingAddress) CustomerName() string {
	return s.FirstName + " " + s.LastName
}

type CartLineItem struct {
	ProductID   uuid.UUID       `json:"productId"   validate:"required"`
	UnitPrice   decimal.Decimal `json:"unitPrice"   validate:"price"`
	Quantity    int             `json:"quantity"    validate:"gte=1,lte=9999"`
	DisplayName string          `json:"displayName" validate:"max=200"`
}

// Checkout is the body of POST /orders/checkout.
type Checkout struct {
	CustomerForm  ShippingAddress `json:"customerForm"`
	CartLineItems []CartLineItem  `json:"cartLineItems"`
}

type CreateOrder struct {
	OwnerID      *uuid.UUID      `json:"ownerId,omitempty"`
	CustomerForm ShippingAddress `json:"customerForm"`
	Items        []CartLineItem  `json:"items"        validate:"dive"`
}

type FindOrderById struct {
	OrderID uuid.UUID
	UserID  *uuid.UUID
	IsAdmin bool
}

type FindOrders struct {
	UserID uuid.UUID
}

type TransitionStatus struct {
	Status string `json:"status" validate:"required"`
}
