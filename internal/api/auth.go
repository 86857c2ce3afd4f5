package api

import (
	"context"
	"net/http"
)

// AuthAPI covers /api/auth.
type AuthAPI interface {
	Register(ctx context.Context, creds Credentials) (*Response, error)
	Login(ctx context.Context, email, password string) (*Response, error)
	Me(ctx context.Context, token string) (*Response, error)
	MeWithoutToken(ctx context.Context) (*Response, error)
	MeWithInvalidToken(ctx context.Context) (*Response, error)
}

// AuthClient implements AuthAPI
type AuthClient struct {
	transport Transport
}

// NewAuthClient creates an auth facade over transport
func NewAuthClient(transport Transport) *AuthClient {
	return &AuthClient{transport: transport}
}

// Register posts a new account.
func (c *AuthClient) Register(ctx context.Context, creds Credentials) (*Response, error) {
	return c.transport.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   "/api/auth/register",
		Body:   creds,
	})
}

// Login exchanges credentials for a bearer token.
func (c *AuthClient) Login(ctx context.Context, email, password string) (*Response, error) {
	return c.transport.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   "/api/auth/login",
		Body:   Credentials{Email: email, Password: password},
	})
}

// Me returns the account the token belongs to.
func (c *AuthClient) Me(ctx context.Context, token string) (*Response, error) {
	return c.transport.Do(ctx, &Request{
		Method:  http.MethodGet,
		Path:    "/api/auth/me",
		Headers: bearer(token),
	})
}

// MeWithoutToken calls /me with no Authorization header at all.
func (c *AuthClient) MeWithoutToken(ctx context.Context) (*Response, error) {
	return c.transport.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   "/api/auth/me",
	})
}

// MeWithInvalidToken calls /me with a syntactically bogus bearer token.
func (c *AuthClient) MeWithInvalidToken(ctx context.Context) (*Response, error) {
	return c.transport.Do(ctx, &Request{
		Method:  http.MethodGet,
		Path:    "/api/auth/me",
		Headers: bearer(InvalidToken),
	})
}
