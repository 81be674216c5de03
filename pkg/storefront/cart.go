package storefront

import (
	"log/slog"
	"sync"
)

const cartKey = "cart"

// CartItem is one cart line. A (SneakerID, Size) pair is the identity key;
// display fields are captured at add-time.
type CartItem struct {
	SneakerID int64   `json:"sneakerId"`
	Size      string  `json:"size"`
	Quantity  int     `json:"quantity"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"imageUrl,omitempty"`
}

// The reducer core is pure: each transition takes an item list and returns
// the next one, so every sequence of operations is testable without I/O.
// The Cart wrapper owns locking and the persistence hook.

func addItem(items []CartItem, item CartItem) []CartItem {
	next := make([]CartItem, len(items))
	copy(next, items)
	for i := range next {
		if next[i].SneakerID == item.SneakerID && next[i].Size == item.Size {
			next[i].Quantity += item.Quantity
			return next
		}
	}
	return append(next, item)
}

func removeItem(items []CartItem, sneakerID int64, size string) []CartItem {
	next := make([]CartItem, 0, len(items))
	for _, item := range items {
		if item.SneakerID == sneakerID && item.Size == size {
			continue
		}
		next = append(next, item)
	}
	return next
}

// setQuantity replaces a line's quantity. Zero is allowed and keeps the
// line; removal is its own operation.
func setQuantity(items []CartItem, sneakerID int64, size string, quantity int) []CartItem {
	next := make([]CartItem, len(items))
	copy(next, items)
	for i := range next {
		if next[i].SneakerID == sneakerID && next[i].Size == size {
			next[i].Quantity = quantity
		}
	}
	return next
}

// cartTotal is recomputed from the items on every read; the total is never
// stored, so it cannot drift from the lines.
func cartTotal(items []CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Cart is the client-side cart: a reducer over line items with a
// persistence hook after every accepted transition.
type Cart struct {
	mu      sync.Mutex
	items   []CartItem
	storage Storage
	logger  *slog.Logger
}

func NewCart(storage Storage, logger *slog.Logger) *Cart {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cart{storage: storage, logger: logger}
}

// Restore rehydrates the cart from storage.
func (c *Cart) Restore() error {
	var items []CartItem
	ok, err := c.storage.Load(cartKey, &items)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	return nil
}

// Add merges by identity key: an existing (id, size) line gains quantity,
// a new pair appends. Non-positive quantities are rejected transitions.
func (c *Cart) Add(item CartItem) {
	if item.Quantity <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = addItem(c.items, item)
	c.persist()
}

// Remove drops the line with the given identity key.
func (c *Cart) Remove(sneakerID int64, size string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = removeItem(c.items, sneakerID, size)
	c.persist()
}

// SetQuantity replaces a line's quantity; negative values are rejected.
func (c *Cart) SetQuantity(sneakerID int64, size string, quantity int) {
	if quantity < 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = setQuantity(c.items, sneakerID, size, quantity)
	c.persist()
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.persist()
}

// Items returns a copy of the cart lines.
func (c *Cart) Items() []CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]CartItem, len(c.items))
	copy(items, c.items)
	return items
}

// Total is Σ price × quantity over the current lines.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cartTotal(c.items)
}

// OrderItems projects the cart into a checkout payload.
func (c *Cart) OrderItems() []OrderItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]OrderItem, 0, len(c.items))
	for _, item := range c.items {
		items = append(items, OrderItem{
			SneakerID: item.SneakerID,
			Quantity:  item.Quantity,
			Size:      item.Size,
			Price:     item.Price,
		})
	}
	return items
}

// persist runs under the cart lock. Storage failure is logged, not fatal:
// the in-memory cart stays authoritative for this run.
func (c *Cart) persist() {
	if err := c.storage.Save(cartKey, c.items); err != nil {
		c.logger.Warn("cart persistence failed", "error", err)
	}
}
