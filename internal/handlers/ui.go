// Package handlers renders the storefront twin's browser screens.
//
// The markup mirrors the selectors the page objects drive, so the same
// scenarios run against the twin and against a deployed storefront.
package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/simplecom/storefront-e2e/internal/models"
	"github.com/simplecom/storefront-e2e/internal/twin"
)

//go:embed templates/*.html
var templateFS embed.FS

// SessionCookie holds the bearer token of the logged-in browser
const SessionCookie = "token"

var screens = []string{"home", "product", "login", "register", "cart", "orders", "admin"}

// pageData is what every screen template receives
type pageData struct {
	Title   string
	User    *models.User
	Error   string
	Message string
	Data    any
}

// UI serves the server-rendered screens of the twin
type UI struct {
	store     *twin.Store
	tokens    *twin.Tokens
	api       *twin.API
	templates map[string]*template.Template
}

// NewUI parses the screen templates for t
func NewUI(t *twin.Twin) (*UI, error) {
	funcs := template.FuncMap{
		"price": models.FormatPrice,
		"inc":   func(n int) int { return n + 1 },
		"dec":   func(n int) int { return n - 1 },
	}

	templates := make(map[string]*template.Template, len(screens))
	for _, name := range screens {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		templates[name] = tmpl
	}

	return &UI{
		store:     t.Store,
		tokens:    t.Tokens,
		api:       t.API,
		templates: templates,
	}, nil
}

// Routes mounts the screens and their form endpoints
func (u *UI) Routes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(u.session)

		r.Get("/", u.Home)
		r.Get("/products/{id}", u.ProductDetail)
		r.Get("/login", u.LoginForm)
		r.Post("/login", u.Login)
		r.Get("/register", u.RegisterForm)
		r.Post("/register", u.Register)
		r.Post("/logout", u.Logout)

		r.Group(func(r chi.Router) {
			r.Use(requireLogin)

			r.Post("/products/{id}/cart", u.AddToCart)
			r.Get("/cart", u.Cart)
			r.Post("/cart/items/{id}", u.UpdateCartItem)
			r.Post("/cart/items/{id}/remove", u.RemoveCartItem)
			r.Post("/cart/clear", u.ClearCart)
			r.Post("/cart/checkout", u.Checkout)
			r.Get("/orders", u.Orders)

			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)

				r.Get("/admin", u.Admin)
				r.Post("/admin/orders/{id}/status", u.UpdateOrderStatus)
				r.Post("/admin/products", u.CreateProduct)
				r.Post("/admin/products/{id}/delete", u.DeleteProduct)
			})
		})
	})
}

// session resolves the token cookie. A stale cookie is dropped, not rejected.
func (u *UI) session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := u.api.Authenticate(cookie.Value)
		if err != nil {
			clearSession(w)
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(twin.WithUser(r.Context(), user)))
	})
}

func requireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := twin.UserFrom(r.Context()); !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, ok := twin.UserFrom(r.Context()); !ok || !user.IsAdmin() {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (u *UI) startSession(w http.ResponseWriter, user models.User) error {
	token, err := u.tokens.Issue(user.ID)
	if err != nil {
		return fmt.Errorf("failed to issue session token: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(twin.TokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// render executes a screen template inside the layout
func (u *UI) render(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	if user, ok := twin.UserFrom(r.Context()); ok {
		data.User = &user
	}
	if data.Error == "" {
		data.Error = r.URL.Query().Get("error")
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := u.templates[name].Execute(w, data); err != nil {
		log.Printf("Error rendering %s template: %v", name, err)
	}
}

// redirectWithError sends the browser back to path with a flash error
func redirectWithError(w http.ResponseWriter, r *http.Request, path string, err error) {
	target, _ := url.Parse(path)
	q := target.Query()
	q.Set("error", err.Error())
	target.RawQuery = q.Encode()
	http.Redirect(w, r, target.String(), http.StatusSeeOther)
}

func currentUser(r *http.Request) models.User {
	user, _ := twin.UserFrom(r.Context())
	return user
}

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	return id, err == nil && id > 0
}
