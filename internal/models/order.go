package models

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents valid order states
type OrderStatus string

// Order statuses
const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderStatuses lists every status in lifecycle order
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// orderTransitions is the legal transition graph. Statuses without an entry are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered},
}

// OrderItem is a priced line of an order, frozen at creation time
type OrderItem struct {
	ID          int
	ProductID   int
	ProductName string
	Quantity    int
	Price       float64
}

// Order represents a customer order with business logic
type Order struct {
	ID        int
	Reference string
	UserID    int
	Status    OrderStatus
	Items     []OrderItem
	Total     float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Domain errors
var (
	ErrEmptyOrder              = errors.New("order must contain at least one item")
	ErrInvalidQuantity         = errors.New("quantity must be positive")
	ErrInvalidStatus           = errors.New("unknown order status")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
)

// NewOrder creates a pending order from priced lines
func NewOrder(userID int, items []OrderItem) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	var total float64
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		total += item.Price * float64(item.Quantity)
	}

	now := time.Now()
	return &Order{
		Reference: fmt.Sprintf("ORDER-%s", uuid.New().String()[:8]),
		UserID:    userID,
		Status:    OrderStatusPending,
		Items:     items,
		Total:     RoundCents(total),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ParseOrderStatus validates a raw status value
func ParseOrderStatus(raw string) (OrderStatus, error) {
	switch status := OrderStatus(raw); status {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return status, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}

// NextStatuses returns the statuses the order may move to
func (o *Order) NextStatuses() []OrderStatus {
	return orderTransitions[o.Status]
}

// CanTransitionTo reports whether moving to status is legal
func (o *Order) CanTransitionTo(status OrderStatus) bool {
	for _, next := range orderTransitions[o.Status] {
		if next == status {
			return true
		}
	}
	return false
}

// TransitionTo moves the order to status if the graph allows it
func (o *Order) TransitionTo(status OrderStatus) error {
	if !o.CanTransitionTo(status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, o.Status, status)
	}

	o.Status = status
	o.UpdatedAt = time.Now()
	return nil
}

// IsPending returns true if the order is in pending status
func (o *Order) IsPending() bool {
	return o.Status == OrderStatusPending
}

// IsTerminal returns true if no further transition is possible
func (o *Order) IsTerminal() bool {
	return len(orderTransitions[o.Status]) == 0
}

// GetFormattedTotal returns the total formatted as dollars
func (o *Order) GetFormattedTotal() string {
	return FormatPrice(o.Total)
}

// RoundCents rounds an amount to two decimals
func RoundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// FormatPrice renders an amount the way the storefront displays it
func FormatPrice(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}
