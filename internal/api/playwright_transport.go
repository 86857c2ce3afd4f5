package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/playwright-community/playwright-go"
)

// PlaywrightTransport implements Transport on top of a Playwright request
// context, so API calls share the browser engine's networking stack.
// The request context must be created with the API base URL.
type PlaywrightTransport struct {
	request playwright.APIRequestContext
}

// NewPlaywrightTransport wraps an existing request context
func NewPlaywrightTransport(request playwright.APIRequestContext) *PlaywrightTransport {
	return &PlaywrightTransport{request: request}
}

// Do sends the request through the Playwright request context
func (t *PlaywrightTransport) Do(ctx context.Context, req *Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to send %s %s: %w", req.Method, req.Path, err)
	}

	headers := map[string]string{"Accept": "application/json"}
	for k, v := range req.Headers {
		headers[k] = v
	}

	opts := playwright.APIRequestContextFetchOptions{
		Method:           playwright.String(req.Method),
		Headers:          headers,
		FailOnStatusCode: playwright.Bool(false),
	}
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		headers["Content-Type"] = "application/json"
		opts.Data = data
	}
	if deadline, ok := ctx.Deadline(); ok {
		opts.Timeout = playwright.Float(fetchTimeout(time.Until(deadline)))
	}

	resp, err := t.request.Fetch(req.URL(), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to send %s %s: %w", req.Method, req.Path, err)
	}
	defer resp.Dispose()

	body, err := resp.Body()
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	header := http.Header{}
	for k, v := range resp.Headers() {
		header.Set(k, v)
	}

	return &Response{
		StatusCode: resp.Status(),
		Body:       body,
		Header:     header,
	}, nil
}

// fetchTimeout converts the time left on a context into a Playwright timeout.
// Playwright treats 0 as no timeout, so the result is never below 1ms.
func fetchTimeout(remaining time.Duration) float64 {
	return float64(max(remaining.Milliseconds(), 1))
}
