package storefront

import "context"

var fallbackPromotions = []Promotion{
	{
		Title:              "Welcome Offer",
		Description:        "10% off your first order",
		DiscountPercentage: 10,
	},
}

// Promotions lists active promotions, degrading to the built-in banner on
// transient backend failure.
func (c *Client) Promotions(ctx context.Context) ([]Promotion, error) {
	var promotions []Promotion
	if err := c.get(ctx, "/api/promotions", &promotions); err != nil {
		if transientFailure(err) {
			c.logger.WarnContext(ctx, "serving fallback promotions", "error", err)
			return fallbackPromotions, nil
		}
		return nil, err
	}
	return promotions, nil
}

// CreatePromotion adds a promotion; requires an admin token.
func (c *Client) CreatePromotion(ctx context.Context, p Promotion) (Promotion, error) {
	var created Promotion
	if err := c.post(ctx, "/api/promotions", p, &created); err != nil {
		return Promotion{}, err
	}
	return created, nil
}
