package storefront

import "context"

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (User, error) {
	var user User
	if err := c.get(ctx, "/api/profile", &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// UpdateProfileParams carries the editable profile fields.
type UpdateProfileParams struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone,omitempty"`
}

// UpdateProfile writes the editable fields and returns the fresh profile.
func (c *Client) UpdateProfile(ctx context.Context, params UpdateProfileParams) (User, error) {
	var user User
	if err := c.put(ctx, "/api/profile", params, &user); err != nil {
		return User{}, err
	}
	return user, nil
}
