package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents valid order states
type OrderStatus string

// Order statuses
const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// TaxRatePercent is applied to the item total on the overview page
const TaxRatePercent = 8

// Domain errors
var (
	ErrEmptyCart               = errors.New("cannot create an order from an empty cart")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
)

// Order is a checkout in progress or finished
type Order struct {
	ID             string
	Reference      string
	Items          []CartItem
	Customer       Customer
	ItemTotalCents int64
	TaxCents       int64
	Status         OrderStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewOrder prices the cart lines for customer. The items slice is copied.
func NewOrder(items []CartItem, customer Customer) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	if err := customer.Validate(); err != nil {
		return nil, err
	}

	lines := make([]CartItem, len(items))
	copy(lines, items)

	var itemTotal int64
	for _, item := range lines {
		itemTotal += item.SubtotalCents()
	}

	id := uuid.New()
	now := time.Now()
	return &Order{
		ID:             id.String(),
		Reference:      "ORDER-" + strings.ToUpper(id.String()[:8]),
		Items:          lines,
		Customer:       customer,
		ItemTotalCents: itemTotal,
		TaxCents:       CalculateTax(itemTotal),
		Status:         OrderStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// CalculateTax applies TaxRatePercent, rounding half up to the cent
func CalculateTax(cents int64) int64 {
	return (cents*TaxRatePercent + 50) / 100
}

// TotalCents is item total plus tax
func (o *Order) TotalCents() int64 {
	return o.ItemTotalCents + o.TaxCents
}

// Complete marks a pending order as placed
func (o *Order) Complete() error {
	if o.Status != OrderStatusPending {
		return fmt.Errorf("%w: cannot complete order with status %s", ErrInvalidStatusTransition, o.Status)
	}
	o.Status = OrderStatusCompleted
	o.UpdatedAt = time.Now()
	return nil
}

// Cancel abandons a pending order
func (o *Order) Cancel() error {
	if o.Status == OrderStatusCompleted {
		return fmt.Errorf("%w: cannot cancel a completed order", ErrInvalidStatusTransition)
	}
	o.Status = OrderStatusCancelled
	o.UpdatedAt = time.Now()
	return nil
}

// IsPending returns true if the order is awaiting completion
func (o *Order) IsPending() bool {
	return o.Status == OrderStatusPending
}

// IsCompleted returns true if the order was placed
func (o *Order) IsCompleted() bool {
	return o.Status == OrderStatusCompleted
}
