//go:build e2e

package e2e

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplecom/storefront-e2e/internal/api"
	"github.com/simplecom/storefront-e2e/internal/fixtures"
)

const missingProductID = 99999

// Feature: Products API
//
//	As a shopper
//	I want to browse the catalog
//	So that I can find what to buy
func TestProductsAPI_List(t *testing.T) {
	ctx := scenarioContext(t)

	// Scenario: Get products list
	resp, err := client.Products.List(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Status())

	page := decode[api.ProductPage](t, resp)
	assert.NotEmpty(t, page.Items)
	assert.Positive(t, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Positive(t, page.Limit)
	assert.Positive(t, page.Pages)

	// Scenario: Filter by category
	resp, err = client.Products.List(ctx, &api.QueryParams{Category: api.Ptr(1)})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Status())
	for _, p := range decode[api.ProductPage](t, resp).Items {
		assert.Equal(t, 1, p.CategoryID, p.Name)
	}

	// Scenario: Search by name
	term := strings.Fields(page.Items[0].Name)[0]
	resp, err = client.Products.List(ctx, &api.QueryParams{Search: api.Ptr(term)})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Status())
	for _, p := range decode[api.ProductPage](t, resp).Items {
		assert.Contains(t, strings.ToLower(p.Name), strings.ToLower(term))
	}
}

func TestProductsAPI_Sort(t *testing.T) {
	tests := []struct {
		sortBy  string
		ordered func(prev, next float64) bool
	}{
		{api.SortPriceAsc, func(prev, next float64) bool { return next >= prev }},
		{api.SortPriceDesc, func(prev, next float64) bool { return next <= prev }},
	}

	for _, tt := range tests {
		t.Run(tt.sortBy, func(t *testing.T) {
			ctx := scenarioContext(t)

			resp, err := client.Products.List(ctx, &api.QueryParams{SortBy: api.Ptr(tt.sortBy)})
			require.NoError(t, err)
			require.Equal(t, http.StatusOK, resp.Status())

			items := decode[api.ProductPage](t, resp).Items
			for i := 1; i < len(items); i++ {
				prev, next := items[i-1].Price.Float64(), items[i].Price.Float64()
				assert.True(t, tt.ordered(prev, next), "%s: %v then %v", tt.sortBy, prev, next)
			}
		})
	}
}

func TestProductsAPI_Get(t *testing.T) {
	ctx := scenarioContext(t)

	// Scenario: Get product by ID
	resp, err := client.Products.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Status())

	p := decode[api.Product](t, resp)
	assert.Equal(t, 1, p.ID)
	assert.NotEmpty(t, p.Name)
	assert.Positive(t, p.Price.Float64())
	assert.NotZero(t, p.CategoryID)
	require.NotNil(t, p.Category)
	assert.NotEmpty(t, p.Category.Name)
	assert.False(t, p.CreatedAt.IsZero())

	// Scenario: Get non-existent product
	resp, err = client.Products.Get(ctx, missingProductID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.Status())
}

// Feature: Product management
//
//	As an admin
//	I want to maintain the catalog
//	So that shoppers see current products
func TestProductsAPI_Manage(t *testing.T) {
	ctx := scenarioContext(t)
	adminToken, err := fixtures.AdminToken(ctx, client.Auth, cfg)
	require.NoError(t, err)
	userToken, err := fixtures.UserToken(ctx, client.Auth, cfg)
	require.NoError(t, err)

	// Scenario: Create product as admin
	payload := fixtures.TestProduct(1)
	resp, err := client.Products.Create(ctx, adminToken, payload)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.Status(), resp.Text())

	created := decode[api.Product](t, resp)
	assert.Equal(t, payload.Name, created.Name)
	assert.InDelta(t, payload.Price, created.Price.Float64(), 0.001)
	assert.Equal(t, payload.Stock, created.Stock)
	assert.Equal(t, payload.CategoryID, created.CategoryID)

	// Scenario: Create product as user
	resp, err = client.Products.CreateAsUser(ctx, userToken, fixtures.TestProduct(1))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.Status())

	// Scenario: Create product without auth
	resp, err = client.Products.CreateWithoutAuth(ctx, fixtures.TestProduct(1))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.Status())

	// Scenario: Update product as admin
	renamed := fixtures.TestProductPrefix + "Renamed"
	resp, err = client.Products.Update(ctx, adminToken, created.ID, api.ProductPatch{Name: api.Ptr(renamed)})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Status())
	assert.Equal(t, renamed, decode[api.Product](t, resp).Name)

	// Scenario: Delete product as admin
	resp, err = client.Products.Delete(ctx, adminToken, created.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.Status())

	resp, err = client.Products.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.Status())

	// Scenario: Delete non-existent product
	resp, err = client.Products.Delete(ctx, adminToken, missingProductID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.Status())
}
