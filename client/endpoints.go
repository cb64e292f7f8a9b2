package client

import (
	"context"
	"net/http"

	"github.com/claudiojas/rockbandpay-table-client/models"
)

// OrderItemRequest is one line of a POST /orders body.
type OrderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (c *Client) GetSession(ctx context.Context, sessionID string) (models.Session, error) {
	var s models.Session
	err := c.do(ctx, http.MethodGet, "/sessions/id/"+sessionID, nil, &s)
	return s, err
}

func (c *Client) GetActiveSession(ctx context.Context, tableID string) (models.Session, error) {
	var s models.Session
	err := c.do(ctx, http.MethodGet, "/sessions/table/"+tableID+"/active", nil, &s)
	return s, err
}

func (c *Client) CreateSession(ctx context.Context, tableID string) (models.Session, error) {
	var s models.Session
	body := map[string]string{"tableId": tableID}
	err := c.do(ctx, http.MethodPost, "/sessions", body, &s)
	return s, err
}

func (c *Client) GetProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := c.do(ctx, http.MethodGet, "/products", nil, &products)
	return products, err
}

func (c *Client) GetCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := c.do(ctx, http.MethodGet, "/categories", nil, &categories)
	return categories, err
}

func (c *Client) CreateOrder(ctx context.Context, sessionID string, items []OrderItemRequest) (models.Order, error) {
	var o models.Order
	body := map[string]interface{}{
		"sessionId": sessionID,
		"items":     items,
	}
	err := c.do(ctx, http.MethodPost, "/orders", body, &o)
	return o, err
}

func (c *Client) GetSessionOrders(ctx context.Context, sessionID string) ([]models.Order, error) {
	var out struct {
		Orders []models.Order `json:"orders"`
	}
	err := c.do(ctx, http.MethodGet, "/orders/session/"+sessionID, nil, &out)
	return out.Orders, err
}

func (c *Client) UpdateOrderStatus(ctx context.Context, orderID, status string) (models.Order, error) {
	var o models.Order
	body := map[string]string{"status": status}
	err := c.do(ctx, http.MethodPatch, "/orders/"+orderID+"/status", body, &o)
	return o, err
}
