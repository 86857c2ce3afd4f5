package twin

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/simplecom/storefront-e2e/internal/models"
)

// decimal serializes money as a quoted two-decimal string
type decimal float64

// MarshalJSON implements json.Marshaler
func (d decimal) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(strconv.FormatFloat(float64(d), 'f', 2, 64))), nil
}

type userView struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type categoryView struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type productView struct {
	ID          int           `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Price       decimal       `json:"price"`
	Stock       int           `json:"stock"`
	CategoryID  int           `json:"category_id"`
	ImageURL    string        `json:"image_url"`
	Category    *categoryView `json:"category"`
	CreatedAt   time.Time     `json:"created_at"`
}

type productPageView struct {
	Items []productView `json:"items"`
	Total int           `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
	Pages int           `json:"pages"`
}

type cartItemView struct {
	ID        int         `json:"id"`
	ProductID int         `json:"product_id"`
	Quantity  int         `json:"quantity"`
	Product   productView `json:"product"`
}

// Cart totals are plain numbers, unlike product and order prices.
type cartView struct {
	Items []cartItemView `json:"items"`
	Total float64        `json:"total"`
}

type orderItemView struct {
	ID          int     `json:"id"`
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       decimal `json:"price"`
}

type orderView struct {
	ID        int             `json:"id"`
	UserID    int             `json:"user_id"`
	Status    string          `json:"status"`
	Total     decimal         `json:"total"`
	Items     []orderItemView `json:"items"`
	CreatedAt time.Time       `json:"created_at"`
}

type errorView struct {
	Detail string `json:"detail"`
}

func toUserView(u models.User) userView {
	return userView{ID: u.ID, Email: u.Email, Name: u.Name, Role: string(u.Role), CreatedAt: u.CreatedAt}
}

func (a *API) toProductView(p models.Product) productView {
	view := productView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       decimal(p.Price),
		Stock:       p.Stock,
		CategoryID:  p.CategoryID,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
	}
	if c, ok := a.store.Category(p.CategoryID); ok {
		view.Category = &categoryView{ID: c.ID, Name: c.Name}
	}
	return view
}

func (a *API) toCartItemView(item models.CartItem) cartItemView {
	view := cartItemView{ID: item.ID, ProductID: item.ProductID, Quantity: item.Quantity}
	if p, err := a.store.Product(item.ProductID); err == nil {
		view.Product = a.toProductView(p)
	}
	return view
}

func (a *API) toCartView(c CartView) cartView {
	view := cartView{Items: make([]cartItemView, 0, len(c.Lines)), Total: c.Total}
	for _, line := range c.Lines {
		view.Items = append(view.Items, cartItemView{
			ID:        line.Item.ID,
			ProductID: line.Item.ProductID,
			Quantity:  line.Item.Quantity,
			Product:   a.toProductView(line.Product),
		})
	}
	return view
}

func toOrderView(o models.Order) orderView {
	view := orderView{
		ID:        o.ID,
		UserID:    o.UserID,
		Status:    string(o.Status),
		Total:     decimal(o.Total),
		Items:     make([]orderItemView, 0, len(o.Items)),
		CreatedAt: o.CreatedAt,
	}
	for _, item := range o.Items {
		view.Items = append(view.Items, orderItemView{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       decimal(item.Price),
		})
	}
	return view
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorView{Detail: detail})
}

// StatusFor maps a store or domain error onto the HTTP status the storefront uses
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateEmail):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrEmptyCart),
		errors.Is(err, models.ErrInsufficientStock),
		errors.Is(err, models.ErrInvalidStatusTransition):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidEmail),
		errors.Is(err, ErrWeakPassword),
		errors.Is(err, ErrUnknownCategory),
		errors.Is(err, ErrInvalidQuery),
		errors.Is(err, models.ErrInvalidProductName),
		errors.Is(err, models.ErrInvalidPrice),
		errors.Is(err, models.ErrInvalidStock),
		errors.Is(err, models.ErrInvalidQuantity),
		errors.Is(err, models.ErrInvalidStatus):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("Unexpected twin error: %v", err)
	}
	writeDetail(w, status, err.Error())
}
