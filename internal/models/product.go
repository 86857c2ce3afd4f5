package models

import (
	"errors"
	"strings"
	"time"
)

// Category groups products
type Category struct {
	ID   int
	Name string
}

// Product is a catalog entry
type Product struct {
	ID          int
	Name        string
	Description string
	Price       float64
	Stock       int
	CategoryID  int
	ImageURL    string
	CreatedAt   time.Time
}

// Validation errors
var (
	ErrInvalidProductName = errors.New("product name cannot be empty")
	ErrInvalidPrice       = errors.New("price must be positive")
	ErrInvalidStock       = errors.New("stock cannot be negative")
	ErrInsufficientStock  = errors.New("insufficient stock")
)

// Validate checks the fields a product must always satisfy
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidProductName
	}
	if p.Price <= 0 {
		return ErrInvalidPrice
	}
	if p.Stock < 0 {
		return ErrInvalidStock
	}
	return nil
}

// Reserve takes quantity units out of stock
func (p *Product) Reserve(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if quantity > p.Stock {
		return ErrInsufficientStock
	}
	p.Stock -= quantity
	return nil
}
