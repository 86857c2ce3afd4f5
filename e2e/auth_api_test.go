//go:build e2e

package e2e

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplecom/storefront-e2e/internal/api"
	"github.com/simplecom/storefront-e2e/internal/fixtures"
)

// Feature: Auth API
//
//	As a shopper
//	I want to register and log in
//	So that the storefront knows who I am
func TestAuthAPI_Register(t *testing.T) {
	ctx := scenarioContext(t)

	// Scenario: Register new user
	//   Given freshly generated credentials
	//   When I register
	//   Then the account echoes my email and name with the user role
	creds := fixtures.RandomCredentials()
	resp, err := client.Auth.Register(ctx, creds)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.Status(), resp.Text())

	user := decode[api.User](t, resp)
	assert.Equal(t, creds.Email, user.Email)
	assert.Equal(t, creds.Name, user.Name)
	assert.Equal(t, "user", user.Role)
	assert.NotZero(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	// Scenario: Register duplicate email
	//   When I register the same email again
	//   Then the storefront reports a conflict
	resp, err = client.Auth.Register(ctx, creds)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.Status())
}

func TestAuthAPI_RegisteredUserCanLogIn(t *testing.T) {
	ctx := scenarioContext(t)

	for i := 0; i < 3; i++ {
		creds := fixtures.RandomCredentials()
		resp, err := client.Auth.Register(ctx, creds)
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.Status(), resp.Text())

		token, err := fixtures.Login(ctx, client.Auth, creds.Email, creds.Password)
		require.NoError(t, err)

		me, err := client.Auth.Me(ctx, token)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, me.Status())
		assert.Equal(t, "user", decode[api.User](t, me).Role)
	}
}

func TestAuthAPI_Login(t *testing.T) {
	ctx := scenarioContext(t)

	// Scenario: Login with valid credentials
	resp, err := client.Auth.Login(ctx, cfg.Admin.Email, cfg.Admin.Password)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Status())

	token := decode[api.TokenResponse](t, resp)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "bearer", token.TokenType)

	// Scenario: Login with wrong password
	resp, err = client.Auth.Login(ctx, cfg.Admin.Email, "wrong-password")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.Status())
}

func TestAuthAPI_Me(t *testing.T) {
	ctx := scenarioContext(t)

	// Scenario: Get me with valid token
	token, err := fixtures.AdminToken(ctx, client.Auth, cfg)
	require.NoError(t, err)

	resp, err := client.Auth.Me(ctx, token)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Status())
	me := decode[api.User](t, resp)
	assert.NotZero(t, me.ID)
	assert.Equal(t, cfg.Admin.Email, me.Email)
	assert.Equal(t, "admin", me.Role)

	// Scenario: Get me without token
	resp, err = client.Auth.MeWithoutToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.Status())

	// Scenario: Get me with invalid token
	resp, err = client.Auth.MeWithInvalidToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.Status())
}
