// Package cart is the in-memory cart aggregate. It is the single source of
// truth for a session's cart; persistence happens through subscribers that
// receive a Snapshot after every mutation.
package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LineItem struct {
	LineID       uuid.UUID `json:"lineId"`
	ProductID    uuid.UUID `json:"productId"`
	UnitPrice    Price     `json:"unitPrice"`
	Quantity     Quantity  `json:"quantity"`
	DisplayName  string    `json:"displayName"`
	DisplayImage string    `json:"displayImage"`
}

func (l LineItem) LineTotal() decimal.Decimal {
	return l.UnitPrice.Decimal().Mul(decimal.NewFromInt(int64(l.Quantity.Int())))
}

// Snapshot is the persisted form of a cart. The display flag is not part of
// it.
type Snapshot struct {
	Items []LineItem `json:"items"`
}

type Cart struct {
	items       []LineItem
	open        bool
	subscribers []func(Snapshot)
}

func New() *Cart {
	return &Cart{items: []LineItem{}}
}

// Subscribe registers fn to run after every mutation of the lines.
func (c *Cart) Subscribe(fn func(Snapshot)) {
	c.subscribers = append(c.subscribers, fn)
}

func (c *Cart) notify() {
	if len(c.subscribers) == 0 {
		return
	}
	snapshot := c.Snapshot()
	for _, fn := range c.subscribers {
		fn(snapshot)
	}
}

func (c *Cart) indexOf(productID uuid.UUID) int {
	for i, item := range c.items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// AddItem increments the line of productID when present and appends a new
// line otherwise. An existing line keeps its original price and display
// fields. A merge past MaxQuantity leaves the cart unchanged.
func (c *Cart) AddItem(
	productID uuid.UUID,
	unitPrice Price,
	quantity Quantity,
	displayName string,
	displayImage string,
) error {
	if i := c.indexOf(productID); i >= 0 {
		merged, err := c.items[i].Quantity.add(quantity)
		if err != nil {
			return err
		}
		c.items[i].Quantity = merged
		c.notify()
		return nil
	}
	c.items = append(c.items, LineItem{
		LineID:       uuid.New(),
		ProductID:    productID,
		UnitPrice:    unitPrice,
		Quantity:     quantity,
		DisplayName:  displayName,
		DisplayImage: displayImage,
	})
	c.notify()
	return nil
}

// UpdateQuantity sets the quantity of productID exactly. Zero or less
// removes the line and more than MaxQuantity is rejected.
func (c *Cart) UpdateQuantity(productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return nil
	}
	q, err := NewQuantity(quantity)
	if err != nil {
		return err
	}
	i := c.indexOf(productID)
	if i < 0 {
		return nil
	}
	c.items[i].Quantity = q
	c.notify()
	return nil
}

func (c *Cart) RemoveItem(productID uuid.UUID) {
	i := c.indexOf(productID)
	if i < 0 {
		return
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	c.notify()
}

func (c *Cart) Clear() {
	c.items = []LineItem{}
	c.notify()
}

func (c *Cart) Items() []LineItem {
	items := make([]LineItem, len(c.items))
	copy(items, c.items)
	return items
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// TotalItemCount sums quantities, not lines.
func (c *Cart) TotalItemCount() int {
	total := 0
	for _, item := range c.items {
		total += item.Quantity.Int()
	}
	return total
}

func (c *Cart) RawSubtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range c.items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	return subtotal
}

func (c *Cart) IsOpen() bool {
	return c.open
}

func (c *Cart) SetOpen(open bool) {
	c.open = open
}

func (c *Cart) Toggle() {
	c.open = !c.open
}

func (c *Cart) Snapshot() Snapshot {
	return Snapshot{Items: c.Items()}
}

// Restore replaces the lines with the snapshot's, merging lines that share a
// product. Merged lines are capped at MaxQuantity. Subscribers are not
// notified and the display flag is untouched.
func (c *Cart) Restore(snapshot Snapshot) {
	items := make([]LineItem, 0, len(snapshot.Items))
	index := make(map[uuid.UUID]int, len(snapshot.Items))
	for _, item := range snapshot.Items {
		if i, ok := index[item.ProductID]; ok {
			merged, err := items[i].Quantity.add(item.Quantity)
			if err != nil {
				merged = Quantity{minusOne: MaxQuantity - 1}
			}
			items[i].Quantity = merged
			continue
		}
		if item.LineID == uuid.Nil {
			item.LineID = uuid.New()
		}
		index[item.ProductID] = len(items)
		items = append(items, item)
	}
	c.items = items
}
