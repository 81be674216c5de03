package handler

import (
	"strings"

	"solestore/internal/orders/models"
	dErrors "solestore/pkg/domain-errors"
)

// CreateOrderRequest is the POST /api/orders body.
type CreateOrderRequest struct {
	Items           []models.OrderItem     `json:"items"`
	Total           float64                `json:"total"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
}

// Validate rejects structurally broken checkouts before the transaction
// starts; stock and size checks happen later under row locks.
func (r *CreateOrderRequest) Validate() error {
	var details []string

	if len(r.Items) == 0 {
		details = append(details, "Order must contain at least one item")
	}
	for _, item := range r.Items {
		if item.Quantity <= 0 {
			details = append(details, "Item quantities must be positive")
			break
		}
	}
	for _, item := range r.Items {
		if strings.TrimSpace(item.Size) == "" {
			details = append(details, "Item sizes are required")
			break
		}
	}
	if r.Total <= 0 {
		details = append(details, "Order total must be positive")
	}
	details = append(details, addressViolations(r.ShippingAddress)...)

	if len(details) > 0 {
		return dErrors.New(dErrors.CodeValidation, "Validation failed").WithDetails(details...)
	}
	return nil
}

func addressViolations(a models.ShippingAddress) []string {
	var details []string
	if strings.TrimSpace(a.FullName) == "" {
		details = append(details, "Full name is required")
	}
	if strings.TrimSpace(a.Address) == "" {
		details = append(details, "Address is required")
	}
	if strings.TrimSpace(a.City) == "" {
		details = append(details, "City is required")
	}
	if strings.TrimSpace(a.ZipCode) == "" {
		details = append(details, "Zip code is required")
	}
	if strings.TrimSpace(a.Country) == "" {
		details = append(details, "Country is required")
	}
	return details
}

// UpdateStatusRequest is the PATCH /api/orders/{id}/status body.
type UpdateStatusRequest struct {
	Status models.Status `json:"status"`
}

func (r *UpdateStatusRequest) Validate() error {
	if !r.Status.Valid() || r.Status == models.StatusPending {
		return dErrors.New(dErrors.CodeValidation, "Validation failed").
			WithDetails("Status must be completed or cancelled")
	}
	return nil
}
