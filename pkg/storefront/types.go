package storefront

import "time"

// User is the API's user projection.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone,omitempty"`
	IsAdmin   bool   `json:"isAdmin"`
}

// AuthResult is the register/login reply.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Sneaker is a catalog item.
type Sneaker struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Brand       string   `json:"brand"`
	Price       float64  `json:"price"`
	ImageURL    string   `json:"image_url,omitempty"`
	Description string   `json:"description,omitempty"`
	Stock       int      `json:"stock"`
	Style       string   `json:"style,omitempty"`
	Sizes       []string `json:"sizes"`
}

// Promotion is a storewide discount banner.
type Promotion struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	DiscountPercentage int       `json:"discount_percentage"`
	ValidUntil         time.Time `json:"valid_until"`
	ImageURL           string    `json:"image_url,omitempty"`
}

// ShippingAddress is the checkout delivery target.
type ShippingAddress struct {
	FullName string `json:"fullName"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state,omitempty"`
	ZipCode  string `json:"zipCode"`
	Country  string `json:"country"`
}

// OrderItem is one purchased line.
type OrderItem struct {
	SneakerID int64   `json:"sneakerId"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size"`
	Price     float64 `json:"price"`
}

// Order is an order header with its items.
type Order struct {
	ID              string          `json:"id"`
	Total           float64         `json:"total"`
	Status          string          `json:"status"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	CreatedAt       time.Time       `json:"createdAt"`
	Items           []OrderItem     `json:"items"`
}
