package models

import (
	"time"

	"github.com/google/uuid"
)

// Promotion is a time-bounded discount banner.
type Promotion struct {
	ID                 uuid.UUID `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	DiscountPercentage int       `json:"discount_percentage"`
	ValidUntil         time.Time `json:"valid_until"`
	ImageURL           string    `json:"image_url,omitempty"`
	CreatedAt          time.Time `json:"created_at,omitzero"`
}

// Active reports whether the promotion is still valid on the given day.
func (p Promotion) Active(now time.Time) bool {
	return !p.ValidUntil.Before(now.Truncate(24 * time.Hour))
}
