package api

import (
	"context"
	"fmt"
	"net/http"
)

// ProductAPI covers /api/products.
type ProductAPI interface {
	List(ctx context.Context, params *QueryParams) (*Response, error)
	Get(ctx context.Context, productID int) (*Response, error)
	Create(ctx context.Context, token string, product ProductPayload) (*Response, error)
	CreateAsUser(ctx context.Context, token string, product ProductPayload) (*Response, error)
	CreateWithoutAuth(ctx context.Context, product ProductPayload) (*Response, error)
	Update(ctx context.Context, token string, productID int, patch ProductPatch) (*Response, error)
	Delete(ctx context.Context, token string, productID int) (*Response, error)
}

// ProductClient implements ProductAPI
type ProductClient struct {
	transport Transport
}

// NewProductClient creates a product facade over transport
func NewProductClient(transport Transport) *ProductClient {
	return &ProductClient{transport: transport}
}

// List returns one page of products. A nil params lists with backend defaults.
func (c *ProductClient) List(ctx context.Context, params *QueryParams) (*Response, error) {
	return c.transport.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   "/api/products",
		Query:  params.Values(),
	})
}

// Get returns a single product; no authentication required.
func (c *ProductClient) Get(ctx context.Context, productID int) (*Response, error) {
	return c.transport.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/api/products/%d", productID),
	})
}

// Create adds a product with an admin token.
func (c *ProductClient) Create(ctx context.Context, token string, product ProductPayload) (*Response, error) {
	return c.create(ctx, bearer(token), product)
}

// CreateAsUser attempts a product creation with a non-admin token.
// The request is identical to Create; the name keeps the negative intent visible.
func (c *ProductClient) CreateAsUser(ctx context.Context, token string, product ProductPayload) (*Response, error) {
	return c.create(ctx, bearer(token), product)
}

// CreateWithoutAuth attempts a product creation with no Authorization header.
func (c *ProductClient) CreateWithoutAuth(ctx context.Context, product ProductPayload) (*Response, error) {
	return c.create(ctx, nil, product)
}

func (c *ProductClient) create(ctx context.Context, headers map[string]string, product ProductPayload) (*Response, error) {
	return c.transport.Do(ctx, &Request{
		Method:  http.MethodPost,
		Path:    "/api/products",
		Headers: headers,
		Body:    product,
	})
}

// Update applies a partial update.
func (c *ProductClient) Update(ctx context.Context, token string, productID int, patch ProductPatch) (*Response, error) {
	return c.transport.Do(ctx, &Request{
		Method:  http.MethodPut,
		Path:    fmt.Sprintf("/api/products/%d", productID),
		Headers: bearer(token),
		Body:    patch,
	})
}

// Delete removes a product.
func (c *ProductClient) Delete(ctx context.Context, token string, productID int) (*Response, error) {
	return c.transport.Do(ctx, &Request{
		Method:  http.MethodDelete,
		Path:    fmt.Sprintf("/api/products/%d", productID),
		Headers: bearer(token),
	})
}
