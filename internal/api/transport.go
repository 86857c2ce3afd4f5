// Package api provides one facade per storefront REST resource.
//
// Every facade method performs exactly one HTTP exchange and returns the
// response as received. Non-2xx statuses are not errors: the caller decides
// what a status means. An error is returned only when no response exists
// (connection refused, timeout, body could not be encoded or read).
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// InvalidToken is the malformed bearer value sent by the invalid-token variants.
const InvalidToken = "invalid-token-12345"

// Transport performs a single request against the storefront API.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// Request describes one call relative to the API base URL.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Headers map[string]string
	Body    any
}

// URL joins the path and the encoded query.
func (r *Request) URL() string {
	if len(r.Query) == 0 {
		return r.Path
	}
	return r.Path + "?" + r.Query.Encode()
}

// Response is a fully read API response.
type Response struct {
	StatusCode int
	Body       []byte
	Header     http.Header
}

// Status returns the HTTP status code
func (r *Response) Status() int {
	return r.StatusCode
}

// OK reports whether the status is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Text returns the body as a string
func (r *Response) Text() string {
	return string(r.Body)
}

// JSON decodes the body into v
func (r *Response) JSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode %d response: %w (body: %s)", r.StatusCode, err, truncate(r.Text(), 512))
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
