package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/kiralabs/kira/pkg/domain"
)

// RegisterRequest is the JSON payload for account creation.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges a username/password pair for an access token. The login
// endpoint speaks the OAuth2 password flow, so credentials go form-encoded.
// A 2xx response without an access token fails with ErrMalformed.
//
// Login does not mutate the client's token: callers decide whether the
// token is good (normally by confirming it against Me) before adopting it.
func (c *Client) Login(ctx context.Context, username, password string) (Token, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var tok Token
	if err := c.postForm(ctx, "/token", form.Encode(), &tok); err != nil {
		return Token{}, fmt.Errorf("client.Login: %w", err)
	}
	if tok.Access == "" {
		return Token{}, fmt.Errorf("client.Login: %w: no access token in response", ErrMalformed)
	}
	return tok, nil
}

// Register creates a new account. The response body is ignored on success;
// failures come back as *APIError with the server's status code (409 for a
// duplicate account, 422 for validation, 5xx for server faults).
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	req := RegisterRequest{Username: username, Email: email, Password: password}
	if err := c.postJSON(ctx, "/register", req, nil); err != nil {
		return fmt.Errorf("client.Register: %w", err)
	}
	return nil
}

// Me returns the account that owns the client's token.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var u domain.User
	if err := c.get(ctx, "/users/me", &u); err != nil {
		return nil, fmt.Errorf("client.Me: %w", err)
	}
	return &u, nil
}
