package fixtures

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/simplecom/storefront-e2e/internal/api"
	"github.com/simplecom/storefront-e2e/internal/config"
)

// ErrEmptyToken is returned when a successful login carries no access token
var ErrEmptyToken = errors.New("login response has no access_token")

// StatusError reports a fixture call that got an unexpected HTTP status
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.StatusCode, e.Body)
}

func expect(op string, resp *api.Response, status int) error {
	if resp.Status() != status {
		return &StatusError{Op: op, StatusCode: resp.Status(), Body: resp.Text()}
	}
	return nil
}

// Identity is a registered account together with a live token
type Identity struct {
	api.Credentials
	Token string
}

// Login performs one login and returns the bearer token. No retry.
func Login(ctx context.Context, auth api.AuthAPI, email, password string) (string, error) {
	resp, err := auth.Login(ctx, email, password)
	if err != nil {
		return "", fmt.Errorf("failed to log in as %s: %w", email, err)
	}
	if err := expect("login "+email, resp, http.StatusOK); err != nil {
		return "", err
	}

	var token api.TokenResponse
	if err := resp.JSON(&token); err != nil {
		return "", fmt.Errorf("failed to log in as %s: %w", email, err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("failed to log in as %s: %w", email, ErrEmptyToken)
	}
	return token.AccessToken, nil
}

// AdminToken logs in as the configured admin
func AdminToken(ctx context.Context, auth api.AuthAPI, cfg config.Config) (string, error) {
	return Login(ctx, auth, cfg.Admin.Email, cfg.Admin.Password)
}

// UserToken logs in as the configured seed user
func UserToken(ctx context.Context, auth api.AuthAPI, cfg config.Config) (string, error) {
	return Login(ctx, auth, cfg.User.Email, cfg.User.Password)
}

// RegisterThrowaway registers fresh random credentials and logs in with them
func RegisterThrowaway(ctx context.Context, auth api.AuthAPI) (Identity, error) {
	creds := RandomCredentials()

	resp, err := auth.Register(ctx, creds)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to register %s: %w", creds.Email, err)
	}
	if err := expect("register "+creds.Email, resp, http.StatusCreated); err != nil {
		return Identity{}, err
	}

	token, err := Login(ctx, auth, creds.Email, creds.Password)
	if err != nil {
		return Identity{}, err
	}
	return Identity{Credentials: creds, Token: token}, nil
}

// RegisterAndToken registers a throwaway account and returns only its token
func RegisterAndToken(ctx context.Context, auth api.AuthAPI) (string, error) {
	identity, err := RegisterThrowaway(ctx, auth)
	if err != nil {
		return "", err
	}
	return identity.Token, nil
}
