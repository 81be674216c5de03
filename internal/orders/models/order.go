package models

import (
	"time"

	"github.com/google/uuid"
)

// Status is the order lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo enforces the order state machine: pending is the only
// state with outgoing edges.
func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusPending && (next == StatusCompleted || next == StatusCancelled)
}

// ShippingAddress is stored serialized with the order; field names follow
// the client payload.
type ShippingAddress struct {
	FullName string `json:"fullName"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state,omitempty"`
	ZipCode  string `json:"zipCode"`
	Country  string `json:"country"`
}

// OrderItem references a sneaker at purchase time. Price is captured per
// unit when the order is placed so later catalog price changes never
// rewrite history.
type OrderItem struct {
	SneakerID int64   `json:"sneakerId"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size"`
	Price     float64 `json:"price"`
}

// Order is an order header with its line items.
type Order struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"userId"`
	Total           float64         `json:"total"`
	Status          Status          `json:"status"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	CreatedAt       time.Time       `json:"createdAt"`
	Items           []OrderItem     `json:"items"`
}

// Cents converts a decimal amount to integer cents. The order total
// invariant is compared in cents so float accumulation error cannot fail
// a legitimate checkout.
func Cents(amount float64) int64 {
	if amount < 0 {
		return int64(amount*100 - 0.5)
	}
	return int64(amount*100 + 0.5)
}
