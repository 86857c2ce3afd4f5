// Package twin is an in-memory stand-in for the storefront backend.
//
// It serves the same REST surface the harness drives, so facades, fixtures
// and page objects can be exercised without a deployed storefront.
package twin

import (
	"errors"
	"fmt"
	"math"
	"net/mail"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/simplecom/storefront-e2e/internal/models"
)

// MinPasswordLength is the shortest password registration accepts
const MinPasswordLength = 6

// Store errors
var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrWeakPassword       = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrUnknownCategory    = errors.New("unknown category")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidQuery       = errors.New("invalid query parameter")
)

// Store holds all storefront state behind a single lock.
// Every accessor returns copies, never pointers into the maps.
type Store struct {
	mu sync.RWMutex

	users      map[int]*models.User
	emails     map[string]int
	categories []models.Category
	products   map[int]*models.Product
	carts      map[int]*models.Cart
	orders     map[int]*models.Order

	lastUser      int
	lastProduct   int
	lastCartItem  int
	lastOrder     int
	lastOrderItem int

	now func() time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		users:    make(map[int]*models.User),
		emails:   make(map[string]int),
		products: make(map[int]*models.Product),
		carts:    make(map[int]*models.Cart),
		orders:   make(map[int]*models.Order),
		now:      time.Now,
	}
}

// Register creates an account
func (s *Store) Register(email, password, name string, role models.Role) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil || !strings.Contains(email, "@") {
		return models.User{}, ErrInvalidEmail
	}
	if len(password) < MinPasswordLength {
		return models.User{}, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.emails[email]; ok {
		return models.User{}, ErrDuplicateEmail
	}

	s.lastUser++
	user := &models.User{
		ID:           s.lastUser,
		Email:        email,
		Name:         strings.TrimSpace(name),
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	s.users[user.ID] = user
	s.emails[email] = user.ID
	return *user, nil
}

// Authenticate checks a password against the stored hash
func (s *Store) Authenticate(email, password string) (models.User, error) {
	s.mu.RLock()
	id, ok := s.emails[strings.ToLower(strings.TrimSpace(email))]
	var user models.User
	if ok {
		user = *s.users[id]
	}
	s.mu.RUnlock()

	if !ok {
		return models.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// User returns an account by id
func (s *Store) User(id int) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return *user, nil
}

// Categories returns all categories ordered by id
func (s *Store) Categories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.Category(nil), s.categories...)
}

// Category returns a category by id
func (s *Store) Category(id int) (models.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.category(id)
}

func (s *Store) category(id int) (models.Category, bool) {
	for _, c := range s.categories {
		if c.ID == id {
			return c, true
		}
	}
	return models.Category{}, false
}

// AddCategory registers a category with a fixed id
func (s *Store) AddCategory(category models.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.categories = append(s.categories, category)
	sort.Slice(s.categories, func(i, j int) bool { return s.categories[i].ID < s.categories[j].ID })
}

// Product sort orders
const (
	SortDefault   = ""
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNameAsc   = "name_asc"
	SortNewest    = "newest"
)

// Listing defaults
const (
	DefaultPageSize = 12
	MaxPageSize     = 100
	MaxPage         = 1_000_000
)

// ProductQuery filters and pages the catalog. Zero values mean "no filter".
type ProductQuery struct {
	CategoryID int
	Search     string
	SortBy     string
	Page       int
	Limit      int
}

// ProductPage is one page of the catalog
type ProductPage struct {
	Items []models.Product
	Total int
	Page  int
	Limit int
	Pages int
}

// ListProducts filters, sorts and pages the catalog
func (s *Store) ListProducts(q ProductQuery) ProductPage {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageSize
	}
	if q.Limit > MaxPageSize {
		q.Limit = MaxPageSize
	}
	search := strings.ToLower(strings.TrimSpace(q.Search))

	s.mu.RLock()
	matched := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		if q.CategoryID != 0 && p.CategoryID != q.CategoryID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		matched = append(matched, *p)
	}
	s.mu.RUnlock()

	sortProducts(matched, q.SortBy)

	page := ProductPage{
		Total: len(matched),
		Page:  q.Page,
		Limit: q.Limit,
		Pages: int(math.Ceil(float64(len(matched)) / float64(q.Limit))),
	}
	// Compare page numbers before multiplying so huge pages cannot overflow
	if q.Page-1 < page.Pages {
		start := (q.Page - 1) * q.Limit
		end := min(start+q.Limit, len(matched))
		page.Items = matched[start:end]
	} else {
		page.Items = []models.Product{}
	}
	return page
}

func sortProducts(products []models.Product, sortBy string) {
	var less func(a, b models.Product) bool
	switch sortBy {
	case SortPriceAsc:
		less = func(a, b models.Product) bool { return a.Price < b.Price }
	case SortPriceDesc:
		less = func(a, b models.Product) bool { return a.Price > b.Price }
	case SortNameAsc:
		less = func(a, b models.Product) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case SortNewest:
		less = func(a, b models.Product) bool { return a.ID > b.ID }
	default:
		less = func(a, b models.Product) bool { return a.ID < b.ID }
	}
	sort.SliceStable(products, func(i, j int) bool {
		if less(products[i], products[j]) {
			return true
		}
		if less(products[j], products[i]) {
			return false
		}
		return products[i].ID < products[j].ID
	})
}

// Product returns a product by id
func (s *Store) Product(id int) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return models.Product{}, ErrNotFound
	}
	return *p, nil
}

// CreateProduct validates and stores a new product
func (s *Store) CreateProduct(p models.Product) (models.Product, error) {
	if err := p.Validate(); err != nil {
		return models.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.category(p.CategoryID); !ok {
		return models.Product{}, ErrUnknownCategory
	}

	s.lastProduct++
	p.ID = s.lastProduct
	p.CreatedAt = s.now()
	s.products[p.ID] = &p
	return p, nil
}

// ProductUpdate is a partial product change. Nil fields are kept.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
	CategoryID  *int
	ImageURL    *string
}

// UpdateProduct applies a partial update
func (s *Store) UpdateProduct(id int, u ProductUpdate) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.products[id]
	if !ok {
		return models.Product{}, ErrNotFound
	}

	next := *current
	if u.Name != nil {
		next.Name = *u.Name
	}
	if u.Description != nil {
		next.Description = *u.Description
	}
	if u.Price != nil {
		next.Price = *u.Price
	}
	if u.Stock != nil {
		next.Stock = *u.Stock
	}
	if u.CategoryID != nil {
		next.CategoryID = *u.CategoryID
	}
	if u.ImageURL != nil {
		next.ImageURL = *u.ImageURL
	}

	if err := next.Validate(); err != nil {
		return models.Product{}, err
	}
	if _, ok := s.category(next.CategoryID); !ok {
		return models.Product{}, ErrUnknownCategory
	}

	*current = next
	return next, nil
}

// DeleteProduct removes a product and every cart line referencing it.
// Orders keep their frozen copy of the line.
func (s *Store) DeleteProduct(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return ErrNotFound
	}
	delete(s.products, id)
	for _, cart := range s.carts {
		cart.RemoveProduct(id)
	}
	return nil
}

// CartLine is a cart item joined with its product
type CartLine struct {
	Item    models.CartItem
	Product models.Product
}

// CartView is a priced snapshot of a cart
type CartView struct {
	Lines []CartLine
	Total float64
}

// Cart returns the user's cart, empty if none exists yet
func (s *Store) Cart(userID int) CartView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cartView(userID)
}

func (s *Store) cartView(userID int) CartView {
	view := CartView{Lines: []CartLine{}}
	cart, ok := s.carts[userID]
	if !ok {
		return view
	}
	for _, item := range cart.Items {
		p, ok := s.products[item.ProductID]
		if !ok {
			continue
		}
		view.Lines = append(view.Lines, CartLine{Item: *item, Product: *p})
	}
	view.Total = cart.Total(func(productID int) float64 {
		if p, ok := s.products[productID]; ok {
			return p.Price
		}
		return 0
	})
	return view
}

func (s *Store) cartFor(userID int) *models.Cart {
	cart, ok := s.carts[userID]
	if !ok {
		cart = &models.Cart{UserID: userID}
		s.carts[userID] = cart
	}
	return cart
}

// AddToCart adds quantity of a product, accumulating onto an existing line
func (s *Store) AddToCart(userID, productID, quantity int) (models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[productID]; !ok {
		return models.CartItem{}, ErrNotFound
	}
	item, err := s.cartFor(userID).Add(productID, quantity, func() int {
		s.lastCartItem++
		return s.lastCartItem
	})
	if err != nil {
		return models.CartItem{}, err
	}
	return *item, nil
}

// UpdateCartItem sets the quantity of one of the user's lines
func (s *Store) UpdateCartItem(userID, itemID, quantity int) (models.CartItem, error) {
	if quantity <= 0 {
		return models.CartItem{}, models.ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.cartFor(userID).Item(itemID)
	if !ok {
		return models.CartItem{}, ErrNotFound
	}
	item.Quantity = quantity
	return *item, nil
}

// RemoveCartItem deletes one of the user's lines
func (s *Store) RemoveCartItem(userID, itemID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cartFor(userID).Remove(itemID) {
		return ErrNotFound
	}
	return nil
}

// ClearCart empties the user's cart. Clearing an empty cart is not an error.
func (s *Store) ClearCart(userID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cartFor(userID).Clear()
}

// PlaceOrder turns the user's cart into a pending order.
// Stock is decremented and the cart emptied under the same lock.
func (s *Store) PlaceOrder(userID int) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cartFor(userID)
	if len(cart.Items) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		p, ok := s.products[line.ProductID]
		if !ok {
			return models.Order{}, fmt.Errorf("product %d: %w", line.ProductID, ErrNotFound)
		}
		if line.Quantity > p.Stock {
			return models.Order{}, fmt.Errorf("%s: %w", p.Name, models.ErrInsufficientStock)
		}
		s.lastOrderItem++
		items = append(items, models.OrderItem{
			ID:          s.lastOrderItem,
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    line.Quantity,
			Price:       p.Price,
		})
	}

	order, err := models.NewOrder(userID, items)
	if err != nil {
		return models.Order{}, err
	}
	for _, line := range cart.Items {
		if err := s.products[line.ProductID].Reserve(line.Quantity); err != nil {
			return models.Order{}, err
		}
	}
	cart.Clear()

	s.lastOrder++
	order.ID = s.lastOrder
	order.CreatedAt = s.now()
	order.UpdatedAt = order.CreatedAt
	s.orders[order.ID] = order
	return copyOrder(order), nil
}

// Orders returns the user's orders, newest first
func (s *Store) Orders(userID int) []models.Order {
	return s.listOrders(func(o *models.Order) bool { return o.UserID == userID })
}

// AllOrders returns every order, newest first
func (s *Store) AllOrders() []models.Order {
	return s.listOrders(func(*models.Order) bool { return true })
}

func (s *Store) listOrders(keep func(*models.Order) bool) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if keep(o) {
			orders = append(orders, copyOrder(o))
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID > orders[j].ID })
	return orders
}

// Order returns one of the user's orders. Another user's order is reported as not found.
func (s *Store) Order(userID, orderID int) (models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[orderID]
	if !ok || o.UserID != userID {
		return models.Order{}, ErrNotFound
	}
	return copyOrder(o), nil
}

// UpdateOrderStatus moves an order along the status graph
func (s *Store) UpdateOrderStatus(orderID int, status models.OrderStatus) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok {
		return models.Order{}, ErrNotFound
	}
	if err := o.TransitionTo(status); err != nil {
		return models.Order{}, err
	}
	return copyOrder(o), nil
}

func copyOrder(o *models.Order) models.Order {
	c := *o
	c.Items = append([]models.OrderItem(nil), o.Items...)
	return c
}
