package storefront

import (
	"context"
	"fmt"
)

// fallbackSneakers is served when the backend stays unreachable so a dead
// API degrades to stale-but-rendering data instead of an empty page.
var fallbackSneakers = []Sneaker{
	{
		ID:          1,
		Name:        "Air Max 270",
		Brand:       "Nike",
		Price:       150,
		Description: "Featuring Nike's biggest heel Air unit yet",
		Stock:       10,
		Style:       "lifestyle",
		Sizes:       []string{"7", "8", "9", "10", "11", "12"},
	},
}

// Sneakers lists the catalog. On transient backend failure the built-in
// fallback dataset is returned with a nil error; callers cannot tell and
// should not care.
func (c *Client) Sneakers(ctx context.Context) ([]Sneaker, error) {
	var sneakers []Sneaker
	if err := c.get(ctx, "/api/sneakers", &sneakers); err != nil {
		if transientFailure(err) {
			c.logger.WarnContext(ctx, "serving fallback catalog", "error", err)
			return fallbackSneakers, nil
		}
		return nil, err
	}
	return sneakers, nil
}

// SneakerByID fetches one catalog item. No fallback: a missing sneaker is a
// real answer, not degraded service.
func (c *Client) SneakerByID(ctx context.Context, id int64) (Sneaker, error) {
	var sneaker Sneaker
	if err := c.get(ctx, fmt.Sprintf("/api/sneakers/%d", id), &sneaker); err != nil {
		return Sneaker{}, err
	}
	return sneaker, nil
}

// CreateSneaker adds a catalog item; requires an admin token.
func (c *Client) CreateSneaker(ctx context.Context, sneaker Sneaker) (int64, error) {
	var resp struct {
		ID int64 `json:"id"`
	}
	if err := c.post(ctx, "/api/sneakers", sneaker, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// UpdateSneaker replaces a catalog item; requires an admin token.
func (c *Client) UpdateSneaker(ctx context.Context, sneaker Sneaker) error {
	return c.put(ctx, fmt.Sprintf("/api/sneakers/%d", sneaker.ID), sneaker, nil)
}

// DeleteSneaker removes a catalog item; requires an admin token.
func (c *Client) DeleteSneaker(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/sneakers/%d", id))
}

// transientFailure reports whether the error reflects backend health rather
// than a definitive application answer.
func transientFailure(err error) bool {
	switch KindOf(err) {
	case KindNetworkError, KindTimeout, KindServerError, KindUnavailable:
		return true
	}
	return false
}
