package api

import (
	"context"
	"fmt"
	"net/http"
)

// CartAPI covers /api/cart.
type CartAPI interface {
	Get(ctx context.Context, token string) (*Response, error)
	AddItem(ctx context.Context, token string, item CartItemRef) (*Response, error)
	AddItemWithoutAuth(ctx context.Context, item CartItemRef) (*Response, error)
	UpdateItem(ctx context.Context, token string, itemID, quantity int) (*Response, error)
	DeleteItem(ctx context.Context, token string, itemID int) (*Response, error)
	Clear(ctx context.Context, token string) (*Response, error)
}

// CartClient implements CartAPI
type CartClient struct {
	transport Transport
}

// NewCartClient creates a cart facade over transport
func NewCartClient(transport Transport) *CartClient {
	return &CartClient{transport: transport}
}

// Get returns the caller's cart.
func (c *CartClient) Get(ctx context.Context, token string) (*Response, error) {
	return c.transport.Do(ctx, &Request{
		Method:  http.MethodGet,
		Path:    "/api/cart",
		Headers: bearer(token),
	})
}

// AddItem adds quantity units of a product to the cart.
func (c *CartClient) AddItem(ctx context.Context, token string, item CartItemRef) (*Response, error) {
	return c.transport.Do(ctx, &Request{
		Method:  http.MethodPost,
		Path:    "/api/cart/items",
		Headers: bearer(token),
		Body:    item,
	})
}

// AddItemWithoutAuth posts a cart item with no Authorization header.
func (c *CartClient) AddItemWithoutAuth(ctx context.Context, item CartItemRef) (*Response, error) {
	return c.transport.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   "/api/cart/items",
		Body:   item,
	})
}

// UpdateItem sets the quantity of a cart line.
func (c *CartClient) UpdateItem(ctx context.Context, token string, itemID, quantity int) (*Response, error) {
	return c.transport.Do(ctx, &Request{
		Method:  http.MethodPut,
		Path:    fmt.Sprintf("/api/cart/items/%d", itemID),
		Headers: bearer(token),
		Body:    map[string]int{"quantity": quantity},
	})
}

// DeleteItem removes a cart line.
func (c *CartClient) DeleteItem(ctx context.Context, token string, itemID int) (*Response, error) {
	return c.transport.Do(ctx, &Request{
		Method:  http.MethodDelete,
		Path:    fmt.Sprintf("/api/cart/items/%d", itemID),
		Headers: bearer(token),
	})
}

// Clear empties the cart.
func (c *CartClient) Clear(ctx context.Context, token string) (*Response, error) {
	return c.transport.Do(ctx, &Request{
		Method:  http.MethodDelete,
		Path:    "/api/cart",
		Headers: bearer(token),
	})
}
