package cart

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// PricePlaces is the number of fractional digits a price may carry.
const PricePlaces = 2

// MaxQuantity bounds a single line. It fits the order_items quantity column.
const MaxQuantity = 9999

var (
	ErrNegativePrice    = errors.New("price must not be negative")
	ErrPricePrecision   = errors.New("price must have at most 2 decimal places")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrQuantityTooLarge = errors.New("quantity must be at most 9999")
)

// Price is a non-negative unit price in whole minor units. The zero value is
// a free item.
type Price struct {
	amount decimal.Decimal
}

func NewPrice(amount decimal.Decimal) (Price, error) {
	if amount.IsNegative() {
		return Price{}, fmt.Errorf("%w: %s", ErrNegativePrice, amount)
	}
	if !amount.Equal(amount.Truncate(PricePlaces)) {
		return Price{}, fmt.Errorf("%w: %s", ErrPricePrecision, amount)
	}
	return Price{amount: amount}, nil
}

func (p Price) Decimal() decimal.Decimal {
	return p.amount
}

func (p Price) String() string {
	return p.amount.String()
}

func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.amount)
}

func (p *Price) UnmarshalJSON(data []byte) error {
	amount := decimal.Decimal{}
	if err := json.Unmarshal(data, &amount); err != nil {
		return err
	}
	price, err := NewPrice(amount)
	if err != nil {
		return err
	}
	*p = price
	return nil
}

// Quantity is an item count between 1 and MaxQuantity. The zero value is one.
type Quantity struct {
	minusOne int
}

var One = Quantity{}

func NewQuantity(n int) (Quantity, error) {
	if n < 1 {
		return Quantity{}, fmt.Errorf("%w: %d", ErrInvalidQuantity, n)
	}
	if n > MaxQuantity {
		return Quantity{}, fmt.Errorf("%w: %d", ErrQuantityTooLarge, n)
	}
	return Quantity{minusOne: n - 1}, nil
}

func (q Quantity) Int() int {
	return q.minusOne + 1
}

func (q Quantity) add(other Quantity) (Quantity, error) {
	return NewQuantity(q.Int() + other.Int())
}

func (q Quantity) MarshalJSON() ([]byte, error) {
	return json.Marshal(q.Int())
}

func (q *Quantity) UnmarshalJSON(data []byte) error {
	n := 0
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	quantity, err := NewQuantity(n)
	if err != nil {
		return err
	}
	*q = quantity
	return nil
}
