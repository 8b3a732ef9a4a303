package cart

import (
	"github.com/shopspring/decimal"
)

// StorageNamespace is the fixed key prefix carts are persisted under
const StorageNamespace = "cart-storage"

// Item is a single cart line. Name, price and image are snapshots taken at
// add-time so the cart renders stably even if the product changes later.
type Item struct {
	ProductID string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
	Variant   string          `json:"variant,omitempty"`
}

// Cart holds a shopper's line items and the open/closed flag of the cart
// drawer. All totals are derived on read; nothing is cached, so there is no
// staleness to manage. The container itself is not safe for concurrent use;
// callers own synchronization.
type Cart struct {
	Items  []Item `json:"items"`
	IsOpen bool   `json:"isOpen"`
}

// New creates an empty cart
func New() *Cart {
	return &Cart{Items: []Item{}}
}

// AddItem upserts a line by product id. Adding a product already in the cart
// increments its quantity instead of duplicating the line; the original
// add-time snapshot is kept.
func (c *Cart) AddItem(item Item) {
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity++
			return
		}
	}
	item.Quantity = 1
	c.Items = append(c.Items, item)
}

// RemoveItem deletes the line for the given product id, if present
func (c *Cart) RemoveItem(productID string) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the quantity for a line. A quantity of zero or less
// removes the line outright.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			return
		}
	}
}

// Clear removes every line from the cart
func (c *Cart) Clear() {
	c.Items = []Item{}
}

// Toggle flips the open/closed flag of the cart drawer
func (c *Cart) Toggle() {
	c.IsOpen = !c.IsOpen
}

// TotalItems returns the sum of quantities across all lines
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalPrice returns the sum of price times quantity across all lines
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
