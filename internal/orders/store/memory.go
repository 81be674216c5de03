package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	catalogmodels "solestore/internal/catalog/models"
	catalogstore "solestore/internal/catalog/store"
	"solestore/internal/orders/models"
	"solestore/internal/orders/service"
	"solestore/pkg/platform/sentinel"
)

// Memory is an in-memory order store for tests. A coarse mutex stands in
// for the database transaction; writes buffer in a journal and apply only
// on commit, so a failed transaction leaves no trace.
type Memory struct {
	mu       sync.Mutex
	catalog  *catalogstore.MemoryStore
	orders   map[uuid.UUID]models.Order
	statuses map[uuid.UUID]models.Status

	// FailOn aborts the transaction when the named operation runs:
	// "insert_order", "insert_item", "decrement_stock".
	FailOn string
}

func NewMemory(catalog *catalogstore.MemoryStore) *Memory {
	return &Memory{
		catalog:  catalog,
		orders:   make(map[uuid.UUID]models.Order),
		statuses: make(map[uuid.UUID]models.Status),
	}
}

// RunInTx serializes order creation under one lock and discards buffered
// writes unless fn succeeds.
func (m *Memory) RunInTx(ctx context.Context, fn func(stores service.TxStores) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &memoryTx{store: m, ctx: ctx}
	if err := fn(tx); err != nil {
		return err
	}
	return tx.commit()
}

type memoryTx struct {
	store      *Memory
	ctx        context.Context
	pending    []models.Order
	decrements map[int64]int
}

func (t *memoryTx) SneakerForUpdate(_ context.Context, sneakerID int64) (catalogmodels.Sneaker, error) {
	sneaker, err := t.store.catalog.FindByID(t.ctx, sneakerID)
	if err != nil {
		return catalogmodels.Sneaker{}, err
	}
	sneaker.Stock -= t.decrements[sneakerID]
	return sneaker, nil
}

func (t *memoryTx) InsertOrder(_ context.Context, order models.Order) error {
	if t.store.FailOn == "insert_order" {
		return fmt.Errorf("insert order: %w", sentinel.ErrUnavailable)
	}
	order.Items = nil
	t.pending = append(t.pending, order)
	return nil
}

func (t *memoryTx) InsertItem(_ context.Context, orderID uuid.UUID, item models.OrderItem) error {
	if t.store.FailOn == "insert_item" {
		return fmt.Errorf("insert order item: %w", sentinel.ErrUnavailable)
	}
	for i := range t.pending {
		if t.pending[i].ID == orderID {
			t.pending[i].Items = append(t.pending[i].Items, item)
			return nil
		}
	}
	return fmt.Errorf("insert order item: %w", sentinel.ErrNotFound)
}

func (t *memoryTx) DecrementStock(_ context.Context, sneakerID int64, quantity int) error {
	if t.store.FailOn == "decrement_stock" {
		return fmt.Errorf("decrement stock: %w", sentinel.ErrUnavailable)
	}
	sneaker, err := t.store.catalog.FindByID(t.ctx, sneakerID)
	if err != nil {
		return err
	}
	if t.decrements == nil {
		t.decrements = make(map[int64]int)
	}
	if sneaker.Stock-t.decrements[sneakerID]-quantity < 0 {
		return fmt.Errorf("decrement stock: %w", sentinel.ErrInsufficientStock)
	}
	t.decrements[sneakerID] += quantity
	return nil
}

func (t *memoryTx) commit() error {
	for id, dec := range t.decrements {
		sneaker, err := t.store.catalog.FindByID(t.ctx, id)
		if err != nil {
			return err
		}
		sneaker.Stock -= dec
		if err := t.store.catalog.Update(t.ctx, sneaker); err != nil {
			return err
		}
	}
	for _, order := range t.pending {
		t.store.orders[order.ID] = order
		t.store.statuses[order.ID] = order.Status
	}
	return nil
}

// ListByUser returns the user's orders newest first.
func (m *Memory) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	orders := []models.Order{}
	for id, order := range m.orders {
		if order.UserID != userID {
			continue
		}
		order.Status = m.statuses[id]
		if order.Items == nil {
			order.Items = []models.OrderItem{}
		}
		orders = append(orders, order)
	}
	sort.Slice(orders, func(i, j int) bool {
		if orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].ID.String() < orders[j].ID.String()
		}
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (m *Memory) UpdateStatus(_ context.Context, orderID uuid.UUID, from, to models.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.statuses[orderID]
	if !ok {
		return fmt.Errorf("update order status: %w", sentinel.ErrNotFound)
	}
	if current != from {
		return fmt.Errorf("update order status: %w", sentinel.ErrConflict)
	}
	m.statuses[orderID] = to
	return nil
}
