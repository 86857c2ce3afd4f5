package models

import "time"

// Role of an account
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is a storefront account
type User struct {
	ID           int
	Email        string
	Name         string
	Role         Role
	PasswordHash []byte
	CreatedAt    time.Time
}

// IsAdmin returns true for admin accounts
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CartItem is one line of a cart
type CartItem struct {
	ID        int
	ProductID int
	Quantity  int
}

// Cart holds a user's lines in insertion order
type Cart struct {
	UserID int
	Items  []*CartItem
}

// Add accumulates quantity onto an existing line for the product, or appends a new one.
// nextID is only called when a new line is created.
func (c *Cart) Add(productID, quantity int, nextID func() int) (*CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	for _, item := range c.Items {
		if item.ProductID == productID {
			item.Quantity += quantity
			return item, nil
		}
	}
	item := &CartItem{ID: nextID(), ProductID: productID, Quantity: quantity}
	c.Items = append(c.Items, item)
	return item, nil
}

// Item returns the line with the given id
func (c *Cart) Item(itemID int) (*CartItem, bool) {
	for _, item := range c.Items {
		if item.ID == itemID {
			return item, true
		}
	}
	return nil, false
}

// Remove deletes the line with the given id
func (c *Cart) Remove(itemID int) bool {
	for i, item := range c.Items {
		if item.ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveProduct drops every line referencing productID
func (c *Cart) RemoveProduct(productID int) {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	c.Items = kept
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.Items = nil
}

// Total prices the cart with the given lookup
func (c *Cart) Total(priceOf func(productID int) float64) float64 {
	var total float64
	for _, item := range c.Items {
		total += priceOf(item.ProductID) * float64(item.Quantity)
	}
	return RoundCents(total)
}
