package api

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Credentials is the register/login payload. Name is only sent on register.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// ProductPayload is the full product shape accepted on create.
type ProductPayload struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	CategoryID  int     `json:"category_id"`
	ImageURL    string  `json:"image_url"`
}

// ProductPatch is the partial product shape accepted on update.
// Nil fields are left out of the request body.
type ProductPatch struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	CategoryID  *int     `json:"category_id,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
}

// CartItemRef is the write shape of a cart line.
type CartItemRef struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// OrderStatus is a backend-owned order state.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Sort orders understood by the product listing.
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

// QueryParams filters the product listing. Nil fields are omitted from the query string.
type QueryParams struct {
	Category *int
	Search   *string
	SortBy   *string
	Limit    *int
	Page     *int
}

// Values serializes the set fields only; an unset field never appears as an empty key.
func (q *QueryParams) Values() url.Values {
	values := url.Values{}
	if q == nil {
		return values
	}
	if q.Category != nil {
		values.Set("category", strconv.Itoa(*q.Category))
	}
	if q.Search != nil {
		values.Set("search", *q.Search)
	}
	if q.SortBy != nil {
		values.Set("sort_by", *q.SortBy)
	}
	if q.Limit != nil {
		values.Set("limit", strconv.Itoa(*q.Limit))
	}
	if q.Page != nil {
		values.Set("page", strconv.Itoa(*q.Page))
	}
	return values
}

// Ptr returns a pointer to v, for building QueryParams and ProductPatch literals.
func Ptr[T any](v T) *T {
	return &v
}

// Money decodes a price serialized either as a JSON number or as a decimal string.
type Money float64

// UnmarshalJSON implements json.Unmarshaler
func (m *Money) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid money value %q: %w", s, err)
		}
		*m = Money(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*m = Money(f)
	return nil
}

// Float64 returns the amount as a float64
func (m Money) Float64() float64 {
	return float64(m)
}

// User is the public representation of an account.
type User struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenResponse is the login response body.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Category is a product category.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Product is the read representation of a product.
type Product struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       Money     `json:"price"`
	Stock       int       `json:"stock"`
	CategoryID  int       `json:"category_id"`
	ImageURL    string    `json:"image_url"`
	Category    *Category `json:"category,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProductPage is one page of the product listing.
type ProductPage struct {
	Items []Product `json:"items"`
	Total int       `json:"total"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
	Pages int       `json:"pages"`
}

// CartItem is the read representation of a cart line.
type CartItem struct {
	ID        int      `json:"id"`
	ProductID int      `json:"product_id"`
	Quantity  int      `json:"quantity"`
	Product   *Product `json:"product,omitempty"`
}

// Cart is the read representation of a user's cart.
type Cart struct {
	Items []CartItem `json:"items"`
	Total Money      `json:"total"`
}

// Find returns the line holding productID, if any.
func (c Cart) Find(productID int) (CartItem, bool) {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return item, true
		}
	}
	return CartItem{}, false
}

// OrderItem is one line of an order.
type OrderItem struct {
	ID        int      `json:"id"`
	ProductID int      `json:"product_id"`
	Quantity  int      `json:"quantity"`
	Price     Money    `json:"price"`
	Product   *Product `json:"product,omitempty"`
}

// Order is the read representation of an order.
type Order struct {
	ID        int         `json:"id"`
	UserID    int         `json:"user_id"`
	Status    OrderStatus `json:"status"`
	Total     Money       `json:"total"`
	Items     []OrderItem `json:"items"`
	CreatedAt time.Time   `json:"created_at"`
}

// ErrorBody is the error envelope returned for 4xx/5xx responses.
type ErrorBody struct {
	Detail any `json:"detail"`
}
