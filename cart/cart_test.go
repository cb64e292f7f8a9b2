package cart

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claudiojas/rockbandpay-table-client/client"
	"github.com/claudiojas/rockbandpay-table-client/models"
)

type fakeAPI struct {
	mu    sync.Mutex
	calls int
	err   error
	order models.Order
	items []client.OrderItemRequest
}

func (a *fakeAPI) CreateOrder(_ context.Context, _ string, items []client.OrderItemRequest) (models.Order, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls++
	a.items = items
	if a.err != nil {
		return models.Order{}, a.err
	}
	return a.order, nil
}

func product(id string, price float64, stock int) models.Product {
	return models.Product{ID: id, Name: "P" + id, Price: price, Stock: stock}
}

func TestAddMergesSameProduct(t *testing.T) {
	c := New()
	p := product("P1", 10, 10)

	c.Add(p, 2)
	c.Add(p, 3)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestAddClampsToStock(t *testing.T) {
	c := New()
	p := product("P1", 10, 3)

	atCap := c.Add(p, 2)
	assert.False(t, atCap)

	atCap = c.Add(p, 5)
	assert.True(t, atCap, "further increments must be disabled at the cap")

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity, "quantity never exceeds stock")
}

func TestAddSoldOutProductIsRefused(t *testing.T) {
	c := New()
	atCap := c.Add(product("P1", 10, 0), 1)
	assert.True(t, atCap)
	assert.Zero(t, c.Len())
}

func TestTotal(t *testing.T) {
	c := New()
	c.Add(product("P1", 10.00, 100), 2)
	c.Add(product("P2", 5.50, 100), 1)

	assert.InDelta(t, 25.50, c.Total(), 1e-9)
}

func TestRemove(t *testing.T) {
	c := New()
	c.Add(product("P1", 10, 10), 1)
	c.Add(product("P2", 5, 10), 1)

	assert.True(t, c.Remove("P1"))
	assert.False(t, c.Remove("P1"))
	require.Len(t, c.Items(), 1)
	assert.Equal(t, "P2", c.Items()[0].Product.ID)
}

func TestSubmitEmptyCartIsNoOp(t *testing.T) {
	api := &fakeAPI{}
	c := New()

	_, err := c.Submit(context.Background(), api, "S1")
	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, api.calls, "no request for an empty cart")
}

func TestSubmitSuccessClearsCart(t *testing.T) {
	api := &fakeAPI{order: models.Order{ID: "O1", TotalAmount: 25.50}}
	c := New()
	c.Add(product("P1", 10.00, 100), 2)
	c.Add(product("P2", 5.50, 100), 1)

	order, err := c.Submit(context.Background(), api, "S1")
	require.NoError(t, err)
	assert.Equal(t, "O1", order.ID)
	assert.Zero(t, c.Len())

	require.Len(t, api.items, 2)
	assert.Equal(t, client.OrderItemRequest{ProductID: "P1", Quantity: 2}, api.items[0])
	assert.Equal(t, client.OrderItemRequest{ProductID: "P2", Quantity: 1}, api.items[1])
}

func TestSubmitFailurePreservesCart(t *testing.T) {
	api := &fakeAPI{err: assert.AnError}
	c := New()
	c.Add(product("P1", 10, 100), 2)

	_, err := c.Submit(context.Background(), api, "S1")
	require.Error(t, err)
	assert.Equal(t, 1, c.Len(), "failed submit leaves the cart for a manual retry")
}
