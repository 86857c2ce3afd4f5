package api

import (
	"context"
	"fmt"
	"net/http"
)

// OrderAPI covers /api/orders and /api/admin/orders.
type OrderAPI interface {
	Create(ctx context.Context, token string) (*Response, error)
	List(ctx context.Context, token string) (*Response, error)
	Get(ctx context.Context, token string, orderID int) (*Response, error)
	ListAll(ctx context.Context, token string) (*Response, error)
	UpdateStatus(ctx context.Context, token string, orderID int, status OrderStatus) (*Response, error)
}

// OrderClient implements OrderAPI
type OrderClient struct {
	transport Transport
}

// NewOrderClient creates an order facade over transport
func NewOrderClient(transport Transport) *OrderClient {
	return &OrderClient{transport: transport}
}

// Create turns the caller's cart into an order.
func (c *OrderClient) Create(ctx context.Context, token string) (*Response, error) {
	return c.transport.Do(ctx, &Request{
		Method:  http.MethodPost,
		Path:    "/api/orders",
		Headers: bearer(token),
	})
}

// List returns the caller's orders.
func (c *OrderClient) List(ctx context.Context, token string) (*Response, error) {
	return c.transport.Do(ctx, &Request{
		Method:  http.MethodGet,
		Path:    "/api/orders",
		Headers: bearer(token),
	})
}

// Get returns one of the caller's orders.
func (c *OrderClient) Get(ctx context.Context, token string, orderID int) (*Response, error) {
	return c.transport.Do(ctx, &Request{
		Method:  http.MethodGet,
		Path:    fmt.Sprintf("/api/orders/%d", orderID),
		Headers: bearer(token),
	})
}

// ListAll returns every order; admin only.
func (c *OrderClient) ListAll(ctx context.Context, token string) (*Response, error) {
	return c.transport.Do(ctx, &Request{
		Method:  http.MethodGet,
		Path:    "/api/admin/orders",
		Headers: bearer(token),
	})
}

// UpdateStatus moves an order to status; admin only.
func (c *OrderClient) UpdateStatus(ctx context.Context, token string, orderID int, status OrderStatus) (*Response, error) {
	return c.transport.Do(ctx, &Request{
		Method:  http.MethodPut,
		Path:    fmt.Sprintf("/api/admin/orders/%d/status", orderID),
		Headers: bearer(token),
		Body:    map[string]OrderStatus{"status": status},
	})
}
