package models

import "time"

// Sneaker is a catalog item. Sizes is the ordered list of sizes the sneaker
// can be ordered in; order items must reference one of them.
type Sneaker struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Brand       string    `json:"brand"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image_url,omitempty"`
	Description string    `json:"description,omitempty"`
	Stock       int       `json:"stock"`
	Style       string    `json:"style,omitempty"`
	Sizes       []string  `json:"sizes"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
}

// HasSize reports whether size is in the sneaker's available size set.
func (s Sneaker) HasSize(size string) bool {
	for _, have := range s.Sizes {
		if have == size {
			return true
		}
	}
	return false
}

// SampleCatalog is the built-in dataset served when the catalog is empty or
// (client-side) when the backend is persistently unavailable, so browsing
// degrades gracefully instead of showing a broken page.
func SampleCatalog() []Sneaker {
	return []Sneaker{
		{
			ID:          1,
			Name:        "Air Max 270",
			Brand:       "Nike",
			Price:       149.99,
			ImageURL:    "https://images.unsplash.com/photo-1514989940723-e8e51635b782?auto=format&fit=crop&q=80",
			Description: "The Nike Air Max 270 delivers visible cushioning under every step.",
			Stock:       10,
			Style:       "Lifestyle",
			Sizes:       []string{"38", "39", "40", "41", "42", "43", "44"},
		},
	}
}
