package storefront

import "context"

// RegisterParams is the registration payload.
type RegisterParams struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone,omitempty"`
}

// Register creates an account and returns the issued token.
func (c *Client) Register(ctx context.Context, params RegisterParams) (AuthResult, error) {
	var result AuthResult
	if err := c.post(ctx, "/api/auth/register", params, &result); err != nil {
		return AuthResult{}, err
	}
	return result, nil
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, email, password string) (AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	var result AuthResult
	if err := c.post(ctx, "/api/auth/login", body, &result); err != nil {
		return AuthResult{}, err
	}
	return result, nil
}

// ValidateToken asks the server whether the current token still maps to a
// live user. The server, not the token's claims, is the source of truth.
func (c *Client) ValidateToken(ctx context.Context) (User, error) {
	var user User
	if err := c.get(ctx, "/api/auth/validate", &user); err != nil {
		return User{}, err
	}
	return user, nil
}
