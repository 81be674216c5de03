package storefront

import (
	"context"
	"fmt"
)

// CreateOrderParams is the checkout payload.
type CreateOrderParams struct {
	Items           []OrderItem     `json:"items"`
	Total           float64         `json:"total"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
}

// CreateOrder places an order and returns its id.
func (c *Client) CreateOrder(ctx context.Context, params CreateOrderParams) (string, error) {
	var resp struct {
		ID string `json:"id"`
	}
	if err := c.post(ctx, "/api/orders", params, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// Orders lists the caller's orders, newest first.
func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.get(ctx, "/api/orders", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus drives the pending order transition; requires an admin
// token.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	body := map[string]string{"status": status}
	return c.patch(ctx, fmt.Sprintf("/api/orders/%s/status", orderID), body, nil)
}
