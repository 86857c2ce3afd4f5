package twin

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Options configures a twin instance
type Options struct {
	JWTSecret string
	Seed      SeedOptions
}

// Twin bundles the store with its REST surface and metrics
type Twin struct {
	Store   *Store
	Tokens  *Tokens
	API     *API
	Metrics *Metrics
}

// New creates a seeded twin
func New(opts Options) (*Twin, error) {
	store := NewStore()
	if err := Seed(store, opts.Seed); err != nil {
		return nil, fmt.Errorf("failed to seed twin: %w", err)
	}

	tokens := NewTokens(opts.JWTSecret)
	return &Twin{
		Store:   store,
		Tokens:  tokens,
		API:     NewAPI(store, tokens),
		Metrics: NewMetrics(),
	}, nil
}

// Handler builds the router: REST under /api, Prometheus under /metrics,
// plus whatever extra routes mount (the server-rendered UI).
func (t *Twin) Handler(mounts ...func(chi.Router)) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(t.Metrics.Middleware)

	t.API.Routes(r)
	r.Method(http.MethodGet, "/metrics", t.Metrics.Handler())
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	for _, mount := range mounts {
		mount(r)
	}
	return r
}
