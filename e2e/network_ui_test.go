//go:build e2e

package e2e

import (
	"encoding/json"
	"net/http"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplecom/storefront-e2e/internal/pages"
)

// The twin renders on the server, so there are no browser API calls to intercept
func skipOnTwin(t *testing.T) {
	t.Helper()
	if os.Getenv("E2E_TARGET") == "twin" {
		t.Skip("network interception needs the storefront SPA")
	}
}

// fulfillJSON answers every matching request with status and body
func fulfillJSON(t *testing.T, page playwright.Page, pattern string, status int, body any) {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	require.NoError(t, page.Route(pattern, func(route playwright.Route) {
		if err := route.Fulfill(playwright.RouteFulfillOptions{
			Status:      playwright.Int(status),
			ContentType: playwright.String("application/json"),
			Body:        string(data),
		}); err != nil {
			t.Logf("failed to fulfill %s: %v", pattern, err)
		}
	}))
}

func emptyProductPage() map[string]any {
	return map[string]any{"items": []any{}, "total": 0, "page": 1, "limit": 12, "pages": 0}
}

func mockProduct(id int, name, description string, price float64, stock int) map[string]any {
	return map[string]any{
		"id":          id,
		"name":        name,
		"description": description,
		"price":       price,
		"stock":       stock,
		"category_id": 1,
		"category":    map[string]any{"id": 1, "name": "Electronics", "slug": "electronics"},
		"image_url":   "",
		"created_at":  "2025-01-01T00:00:00",
	}
}

// Feature: Network interception
//
//	As a shopper on a flaky connection
//	I want the storefront to degrade gracefully
//	So that errors and slow responses never break the page
func TestUI_NetworkProductList(t *testing.T) {
	skipOnTwin(t)

	t.Run("Empty product list shows message", func(t *testing.T) {
		page, opts := newPage(t)
		fulfillJSON(t, page, "**/api/products*", http.StatusOK, emptyProductPage())

		home := pages.NewHomePage(page, opts...)
		require.NoError(t, home.Open())
		require.NoError(t, expect.Locator(home.EmptyMessage()).ToBeVisible())
	})

	t.Run("Server error shows graceful fallback", func(t *testing.T) {
		page, opts := newPage(t)
		fulfillJSON(t, page, "**/api/products*", http.StatusInternalServerError,
			map[string]string{"detail": "Internal Server Error"})

		home := pages.NewHomePage(page, opts...)
		require.NoError(t, home.Open())
		require.NoError(t, expect.Locator(page.Locator("nav")).ToBeVisible())
		require.NoError(t, expect.Locator(home.ProductCards()).ToHaveCount(0))
	})

	t.Run("Mock product data renders correctly", func(t *testing.T) {
		page, opts := newPage(t)
		fulfillJSON(t, page, "**/api/products*", http.StatusOK, map[string]any{
			"items": []any{
				mockProduct(9999, "Mock Laptop Pro", "A mocked product for testing", 1299.99, 42),
				mockProduct(9998, "Mock Headphones", "Another mocked product", 49.99, 0),
			},
			"total": 2, "page": 1, "limit": 12, "pages": 1,
		})

		home := pages.NewHomePage(page, opts...)
		require.NoError(t, home.Open())
		require.NoError(t, expect.Locator(page.GetByText("Mock Laptop Pro")).ToBeVisible())
		require.NoError(t, expect.Locator(page.GetByText("$1,299.99").Or(page.GetByText("$1299.99"))).ToBeVisible())
		require.NoError(t, expect.Locator(page.GetByText("Mock Headphones")).ToBeVisible())
		require.NoError(t, expect.Locator(home.ProductCards()).ToHaveCount(2))
	})
}

func TestUI_NetworkSlowProduct(t *testing.T) {
	skipOnTwin(t)

	// Scenario: Slow network shows loading state
	page, _ := newPage(t)
	require.NoError(t, page.Route("**/api/products/1", func(route playwright.Route) {
		time.AfterFunc(3*time.Second, func() {
			if err := route.Continue(); err != nil {
				t.Logf("failed to continue delayed product request: %v", err)
			}
		})
	}))

	_, err := page.Goto(cfg.UIBaseURL + "/products/1")
	require.NoError(t, err)
	require.NoError(t, expect.Locator(page.GetByText("Loading...")).ToBeVisible())
	require.NoError(t, expect.Locator(page.Locator("h1")).ToBeVisible(playwright.LocatorAssertionsToBeVisibleOptions{
		Timeout: playwright.Float(10000),
	}))
}

func TestUI_NetworkFailures(t *testing.T) {
	skipOnTwin(t)

	t.Run("Add to cart with network failure shows error", func(t *testing.T) {
		page, opts := newPage(t)
		loginUI(t, page, opts, cfg.User.Email, cfg.User.Password)

		pp := pages.NewProductPage(page, opts...)
		require.NoError(t, pp.Open(1))
		fulfillJSON(t, page, "**/api/cart/items", http.StatusInternalServerError,
			map[string]string{"detail": "Internal Server Error"})

		require.NoError(t, pp.SetQuantity(1))
		require.NoError(t, pp.AddToCart())
		require.NoError(t, expect.Locator(page.Locator("p.text-red-600")).ToBeVisible(playwright.LocatorAssertionsToBeVisibleOptions{
			Timeout: playwright.Float(5000),
		}))
	})

	t.Run("Login with network failure shows error", func(t *testing.T) {
		page, opts := newPage(t)
		lp := pages.NewLoginPage(page, opts...)
		require.NoError(t, lp.Open())
		fulfillJSON(t, page, "**/api/auth/login", http.StatusInternalServerError,
			map[string]string{"detail": "Service Unavailable"})

		require.NoError(t, lp.Login("test@test.com", "password"))
		require.NoError(t, expect.Locator(lp.ErrorMessage()).ToBeVisible())
	})
}

func TestUI_NetworkLoginPayload(t *testing.T) {
	skipOnTwin(t)

	// Scenario: Intercept and verify API request payload
	page, opts := newPage(t)
	type loginPayload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	var (
		mu       sync.Mutex
		captured *loginPayload
	)
	require.NoError(t, page.Route("**/api/auth/login", func(route playwright.Route) {
		var payload loginPayload
		if err := route.Request().PostDataJSON(&payload); err != nil {
			t.Logf("failed to read login payload: %v", err)
		} else {
			mu.Lock()
			captured = &payload
			mu.Unlock()
		}
		if err := route.Continue(); err != nil {
			t.Logf("failed to continue login request: %v", err)
		}
	}))

	lp := pages.NewLoginPage(page, opts...)
	require.NoError(t, lp.Open())
	require.NoError(t, lp.Login(cfg.Admin.Email, cfg.Admin.Password))
	require.NoError(t, pages.NewNavBar(page, opts...).WaitLoggedIn())

	mu.Lock()
	defer mu.Unlock()
	require.NotNil(t, captured, "login request was not intercepted")
	assert.Equal(t, cfg.Admin.Email, captured.Email)
	assert.Equal(t, cfg.Admin.Password, captured.Password)
}
