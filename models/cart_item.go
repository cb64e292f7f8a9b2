package models

// CartItem exists only in client memory until the order is submitted.
type CartItem struct {
	Product  Product
	Quantity int
}

// Subtotal is the line-item contribution to the cart total.
func (ci CartItem) Subtotal() float64 {
	return ci.Product.Price * float64(ci.Quantity)
}
