package twin

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/simplecom/storefront-e2e/internal/models"
)

type contextKey struct{}

// API serves the storefront REST surface under /api
type API struct {
	store  *Store
	tokens *Tokens
}

// NewAPI creates the REST handlers
func NewAPI(store *Store, tokens *Tokens) *API {
	return &API{store: store, tokens: tokens}
}

// Routes mounts the REST routes
func (a *API) Routes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", a.Register)
		r.Post("/auth/login", a.Login)
		r.Get("/categories", a.ListCategories)
		r.Get("/products", a.ListProducts)
		r.Get("/products/{id}", a.GetProduct)

		r.Group(func(r chi.Router) {
			r.Use(a.RequireUser)

			r.Get("/auth/me", a.Me)

			r.Get("/cart", a.GetCart)
			r.Delete("/cart", a.ClearCart)
			r.Post("/cart/items", a.AddCartItem)
			r.Put("/cart/items/{id}", a.UpdateCartItem)
			r.Delete("/cart/items/{id}", a.DeleteCartItem)

			r.Post("/orders", a.CreateOrder)
			r.Get("/orders", a.ListOrders)
			r.Get("/orders/{id}", a.GetOrder)

			r.Group(func(r chi.Router) {
				r.Use(RequireAdmin)

				r.Post("/products", a.CreateProduct)
				r.Put("/products/{id}", a.UpdateProduct)
				r.Delete("/products/{id}", a.DeleteProduct)

				r.Get("/admin/orders", a.ListAllOrders)
				r.Put("/admin/orders/{id}/status", a.UpdateOrderStatus)
			})
		})
	})
}

// RequireUser resolves the bearer token. A missing header is 403, an untrusted token 401.
func (a *API) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			writeDetail(w, http.StatusForbidden, "Not authenticated")
			return
		}

		user, err := a.Authenticate(token)
		if err != nil {
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// Authenticate resolves a bearer token to its account
func (a *API) Authenticate(token string) (models.User, error) {
	userID, err := a.tokens.Verify(strings.TrimSpace(token))
	if err != nil {
		return models.User{}, err
	}
	user, err := a.store.User(userID)
	if err != nil {
		return models.User{}, ErrInvalidToken
	}
	return user, nil
}

// RequireAdmin rejects non-admin accounts with 403
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFrom(r.Context())
		if !ok || !user.IsAdmin() {
			writeDetail(w, http.StatusForbidden, "Not enough permissions")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithUser stores the authenticated account in ctx
func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// UserFrom returns the authenticated account, if any
func UserFrom(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(contextKey{}).(models.User)
	return user, ok
}

func currentUser(r *http.Request) models.User {
	user, _ := UserFrom(r.Context())
	return user
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid id")
		return 0, false
	}
	return id, true
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Register handles POST /api/auth/register
func (a *API) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decode(w, r, &req) {
		return
	}

	user, err := a.store.Register(req.Email, req.Password, req.Name, models.RoleUser)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserView(user))
}

// Login handles POST /api/auth/login
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decode(w, r, &req) {
		return
	}

	user, err := a.store.Authenticate(req.Email, req.Password)
	if err != nil {
		writeDetail(w, http.StatusUnauthorized, "Incorrect email or password")
		return
	}

	token, err := a.tokens.Issue(user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// Me handles GET /api/auth/me
func (a *API) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toUserView(currentUser(r)))
}

// ListCategories handles GET /api/categories
func (a *API) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories := a.store.Categories()
	views := make([]categoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, categoryView{ID: c.ID, Name: c.Name})
	}
	writeJSON(w, http.StatusOK, views)
}

// ParseProductQuery reads the listing filters from a query string.
// Unknown sort orders fall back to the default ordering. Page numbers
// above MaxPage are rejected.
func ParseProductQuery(values map[string][]string) (ProductQuery, error) {
	get := func(key string) string {
		if v := values[key]; len(v) > 0 {
			return v[0]
		}
		return ""
	}

	q := ProductQuery{Search: get("search")}
	switch sortBy := get("sort_by"); sortBy {
	case SortPriceAsc, SortPriceDesc, SortNameAsc, SortNewest:
		q.SortBy = sortBy
	}

	for key, dst := range map[string]*int{"category": &q.CategoryID, "page": &q.Page, "limit": &q.Limit} {
		raw := get(key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || (key == "page" && n > MaxPage) {
			return ProductQuery{}, ErrInvalidQuery
		}
		*dst = n
	}
	return q, nil
}

// ListProducts handles GET /api/products
func (a *API) ListProducts(w http.ResponseWriter, r *http.Request) {
	q, err := ParseProductQuery(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}

	page := a.store.ListProducts(q)
	view := productPageView{
		Items: make([]productView, 0, len(page.Items)),
		Total: page.Total,
		Page:  page.Page,
		Limit: page.Limit,
		Pages: page.Pages,
	}
	for _, p := range page.Items {
		view.Items = append(view.Items, a.toProductView(p))
	}
	writeJSON(w, http.StatusOK, view)
}

// GetProduct handles GET /api/products/{id}
func (a *API) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	p, err := a.store.Product(id)
	if err != nil {
		writeDetail(w, http.StatusNotFound, "Product not found")
		return
	}
	writeJSON(w, http.StatusOK, a.toProductView(p))
}

type productRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	CategoryID  *int     `json:"category_id"`
	ImageURL    *string  `json:"image_url"`
}

func (p productRequest) update() ProductUpdate {
	return ProductUpdate{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		CategoryID:  p.CategoryID,
		ImageURL:    p.ImageURL,
	}
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}

// CreateProduct handles POST /api/products
func (a *API) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !decode(w, r, &req) {
		return
	}

	p, err := a.store.CreateProduct(models.Product{
		Name:        deref(req.Name),
		Description: deref(req.Description),
		Price:       deref(req.Price),
		Stock:       deref(req.Stock),
		CategoryID:  deref(req.CategoryID),
		ImageURL:    deref(req.ImageURL),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a.toProductView(p))
}

// UpdateProduct handles PUT /api/products/{id}
func (a *API) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req productRequest
	if !decode(w, r, &req) {
		return
	}

	p, err := a.store.UpdateProduct(id, req.update())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a.toProductView(p))
}

// DeleteProduct handles DELETE /api/products/{id}
func (a *API) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := a.store.DeleteProduct(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetCart handles GET /api/cart
func (a *API) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.toCartView(a.store.Cart(currentUser(r).ID)))
}

// ClearCart handles DELETE /api/cart
func (a *API) ClearCart(w http.ResponseWriter, r *http.Request) {
	a.store.ClearCart(currentUser(r).ID)
	w.WriteHeader(http.StatusNoContent)
}

type cartItemRequest struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// AddCartItem handles POST /api/cart/items
func (a *API) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if !decode(w, r, &req) {
		return
	}

	item, err := a.store.AddToCart(currentUser(r).ID, req.ProductID, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a.toCartItemView(item))
}

// UpdateCartItem handles PUT /api/cart/items/{id}
func (a *API) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req cartItemRequest
	if !decode(w, r, &req) {
		return
	}

	item, err := a.store.UpdateCartItem(currentUser(r).ID, id, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a.toCartItemView(item))
}

// DeleteCartItem handles DELETE /api/cart/items/{id}
func (a *API) DeleteCartItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := a.store.RemoveCartItem(currentUser(r).ID, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateOrder handles POST /api/orders
func (a *API) CreateOrder(w http.ResponseWriter, r *http.Request) {
	order, err := a.store.PlaceOrder(currentUser(r).ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderView(order))
}

func writeOrders(w http.ResponseWriter, orders []models.Order) {
	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, toOrderView(o))
	}
	writeJSON(w, http.StatusOK, views)
}

// ListOrders handles GET /api/orders
func (a *API) ListOrders(w http.ResponseWriter, r *http.Request) {
	writeOrders(w, a.store.Orders(currentUser(r).ID))
}

// GetOrder handles GET /api/orders/{id}
func (a *API) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	order, err := a.store.Order(currentUser(r).ID, id)
	if err != nil {
		writeDetail(w, http.StatusNotFound, "Order not found")
		return
	}
	writeJSON(w, http.StatusOK, toOrderView(order))
}

// ListAllOrders handles GET /api/admin/orders
func (a *API) ListAllOrders(w http.ResponseWriter, r *http.Request) {
	writeOrders(w, a.store.AllOrders())
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus handles PUT /api/admin/orders/{id}/status
func (a *API) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req statusRequest
	if !decode(w, r, &req) {
		return
	}

	status, err := models.ParseOrderStatus(req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	order, err := a.store.UpdateOrderStatus(id, status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderView(order))
}
