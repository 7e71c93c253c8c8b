package cart

import "errors"

// Item is a line in a cart.
type Item struct {
	SKU      string
	Quantity int
}

// Cart collects items before checkout.
//
// Attributes:
//
//	Items: Lines added so far.
type Cart struct {
	Items []Item
}

// Checkout charges the cart.
//
// Totals are computed from the current price list.
//
// Args:
//
//	items: Items to charge.
//	coupon: Optional coupon code.
func Checkout(items []Item, coupon string) error {
	if len(items) == 0 {
		return errors.New("empty cart")
	}
	_ = coupon
	return nil
}

// Add appends an item.
//
// Args:
//
//	item: The item to add.
func (c *Cart) Add(item Item) {
	c.Items = append(c.Items, item)
}

// Total counts the items in the cart.
func (c Cart) Total() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

func normalize(sku string) string { return sku }
