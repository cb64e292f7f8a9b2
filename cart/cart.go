package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/claudiojas/rockbandpay-table-client/client"
	"github.com/claudiojas/rockbandpay-table-client/models"
)

// ErrEmptyCart is returned by Submit when there is nothing to order. No
// request is sent in that case.
var ErrEmptyCart = errors.New("cart is empty")

// API is the slice of the REST client the cart needs.
type API interface {
	CreateOrder(ctx context.Context, sessionID string, items []client.OrderItemRequest) (models.Order, error)
}

// Cart accumulates selected products until they are submitted as one order.
type Cart struct {
	mu    sync.Mutex
	items []models.CartItem
}

func New() *Cart {
	return &Cart{}
}

// Add puts qty units of the product in the cart, merging with an existing
// line for the same product. The line quantity is clamped to [1, stock].
// It reports whether the line is now at the stock cap, so further increments
// can be disabled.
func (c *Cart) Add(p models.Product, qty int) bool {
	if p.SoldOut() {
		return true
	}
	if qty < 1 {
		qty = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].Product.ID == p.ID {
			q := c.items[i].Quantity + qty
			if q > p.Stock {
				q = p.Stock
			}
			c.items[i].Quantity = q
			return q >= p.Stock
		}
	}

	if qty > p.Stock {
		qty = p.Stock
	}
	c.items = append(c.items, models.CartItem{Product: p, Quantity: qty})
	return qty >= p.Stock
}

// Remove drops the line for a product, reporting whether it existed.
func (c *Cart) Remove(productID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Items returns a copy of the lines in selection order.
func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Total is the sum of line-item subtotals.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for _, item := range c.items {
		total += item.Subtotal()
	}
	return total
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// Submit sends the whole cart as one order. On success the cart is cleared
// and the created order returned for the optimistic path; on failure the
// cart is preserved unchanged so the user can retry.
func (c *Cart) Submit(ctx context.Context, api API, sessionID string) (models.Order, error) {
	c.mu.Lock()
	if len(c.items) == 0 {
		c.mu.Unlock()
		return models.Order{}, ErrEmptyCart
	}
	req := make([]client.OrderItemRequest, 0, len(c.items))
	for _, item := range c.items {
		req = append(req, client.OrderItemRequest{
			ProductID: item.Product.ID,
			Quantity:  item.Quantity,
		})
	}
	c.mu.Unlock()

	order, err := api.CreateOrder(ctx, sessionID, req)
	if err != nil {
		return models.Order{}, err
	}
	c.Clear()
	return order, nil
}
