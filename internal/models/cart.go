package models

import "errors"

// ErrProductNotInCart is returned when removing a product the cart does not hold
var ErrProductNotInCart = errors.New("product is not in the cart")

// CartItem is one cart line
type CartItem struct {
	Product  Product
	Quantity int
}

// SubtotalCents is price times quantity
func (i CartItem) SubtotalCents() int64 {
	return i.Product.PriceCents * int64(i.Quantity)
}

// Cart keeps lines in the order products were first added.
// Adding a product that is already present increments its quantity.
type Cart struct {
	items []CartItem
}

// Add puts one unit of p in the cart
func (c *Cart) Add(p Product) {
	for i := range c.items {
		if c.items[i].Product.ID == p.ID {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, CartItem{Product: p, Quantity: 1})
}

// Remove drops the whole line for productID
func (c *Cart) Remove(productID int) error {
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return nil
		}
	}
	return ErrProductNotInCart
}

// Items returns a copy of the cart lines
func (c *Cart) Items() []CartItem {
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Quantity returns how many units of productID the cart holds
func (c *Cart) Quantity(productID int) int {
	for _, item := range c.items {
		if item.Product.ID == productID {
			return item.Quantity
		}
	}
	return 0
}

// Count is the total number of units, shown on the cart badge
func (c *Cart) Count() int {
	n := 0
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}

// ItemTotalCents sums every line
func (c *Cart) ItemTotalCents() int64 {
	var total int64
	for _, item := range c.items {
		total += item.SubtotalCents()
	}
	return total
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.items = nil
}
