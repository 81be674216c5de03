package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	catalogmodels "solestore/internal/catalog/models"
	"solestore/internal/orders/models"
	"solestore/internal/platform/metrics"
	dErrors "solestore/pkg/domain-errors"
	"solestore/pkg/platform/sentinel"
)

// TxStores provides access to stores within the transaction scope. Every
// method sees the same unit of work: either all writes commit or none do.
type TxStores interface {
	// SneakerForUpdate reads a sneaker and locks its row for the duration
	// of the transaction, serializing concurrent stock decrements.
	SneakerForUpdate(ctx context.Context, sneakerID int64) (catalogmodels.Sneaker, error)
	InsertOrder(ctx context.Context, order models.Order) error
	InsertItem(ctx context.Context, orderID uuid.UUID, item models.OrderItem) error
	DecrementStock(ctx context.Context, sneakerID int64, quantity int) error
}

// OrderTx provides the transactional boundary for order creation.
// Implementations wrap a database transaction or, in-memory, a coarse lock.
type OrderTx interface {
	RunInTx(ctx context.Context, fn func(stores TxStores) error) error
}

// OrderReader serves order queries outside the transaction boundary.
type OrderReader interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	// UpdateStatus transitions an order from one status to another as a
	// single conditional write. Returns sentinel.ErrConflict when the
	// order is no longer in the expected source status.
	UpdateStatus(ctx context.Context, orderID uuid.UUID, from, to models.Status) error
}

// CacheInvalidator drops cached catalog reads whose stock counts a
// committed order just made stale.
type CacheInvalidator interface {
	Invalidate(ctx context.Context)
}

// noopInvalidator is used when no cache is configured.
type noopInvalidator struct{}

func (noopInvalidator) Invalidate(context.Context) {}

// Service owns the order-creation transaction and order queries.
type Service struct {
	tx      OrderTx
	reader  OrderReader
	cache   CacheInvalidator
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures a Service.
type Option func(*Service)

// WithCacheInvalidator wires a catalog cache to be cleared after commits.
func WithCacheInvalidator(cache CacheInvalidator) Option {
	return func(s *Service) {
		if cache != nil {
			s.cache = cache
		}
	}
}

func NewService(tx OrderTx, reader OrderReader, logger *slog.Logger, m *metrics.Metrics, opts ...Option) *Service {
	s := &Service{
		tx:      tx,
		reader:  reader,
		cache:   noopInvalidator{},
		logger:  logger,
		metrics: m,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateParams is the checkout payload for one order.
type CreateParams struct {
	Items           []models.OrderItem
	Total           float64
	ShippingAddress models.ShippingAddress
}

// Create atomically validates the cart against locked sneaker rows, inserts
// the order header and line items, and decrements stock. Any failure rolls
// the whole unit of work back: no partial order and no partial stock
// decrement is ever observable.
//
// Validation happens inside the transaction, after the row locks are taken,
// so the stock and size checks cannot race a concurrent order.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, params CreateParams) (uuid.UUID, error) {
	if len(params.Items) == 0 {
		return uuid.Nil, dErrors.New(dErrors.CodeValidation, "Validation failed").
			WithDetails("Order must contain at least one item")
	}

	order := models.Order{
		ID:              uuid.New(),
		UserID:          userID,
		Total:           params.Total,
		Status:          models.StatusPending,
		ShippingAddress: params.ShippingAddress,
		CreatedAt:       time.Now(),
		Items:           params.Items,
	}

	err := s.tx.RunInTx(ctx, func(stores TxStores) error {
		if err := s.validateAndLock(ctx, stores, order); err != nil {
			return err
		}

		if err := stores.InsertOrder(ctx, order); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		for _, item := range order.Items {
			if err := stores.InsertItem(ctx, order.ID, item); err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}
			if err := stores.DecrementStock(ctx, item.SneakerID, item.Quantity); err != nil {
				return fmt.Errorf("decrement stock: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		s.metrics.OrdersFailed.Inc()
		// Validation and invariant rejections are client-correctable and
		// carry no internal detail; everything else collapses to a generic
		// failure with the cause logged, never exposed.
		if dErrors.Is(err, dErrors.CodeValidation) || dErrors.Is(err, dErrors.CodeInvariantViolation) {
			return uuid.Nil, err
		}
		s.logger.ErrorContext(ctx, "order transaction failed",
			"user_id", userID,
			"order_id", order.ID,
			"error", err,
		)
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInternal, "Failed to create order")
	}

	s.metrics.OrdersCreated.Inc()
	s.cache.Invalidate(ctx)
	s.logger.InfoContext(ctx, "order created",
		"user_id", userID,
		"order_id", order.ID,
		"items", len(order.Items),
		"total", order.Total,
	)
	return order.ID, nil
}

// validateAndLock locks every referenced sneaker row in ascending id order
// (stable lock order prevents deadlocks between concurrent multi-item
// orders) and rejects the order on any violation before the first write.
func (s *Service) validateAndLock(ctx context.Context, stores TxStores, order models.Order) error {
	ids := make([]int64, 0, len(order.Items))
	byID := make(map[int64][]models.OrderItem, len(order.Items))
	for _, item := range order.Items {
		if item.Quantity <= 0 {
			return dErrors.New(dErrors.CodeValidation, "Validation failed").
				WithDetails(fmt.Sprintf("Quantity for sneaker %d must be positive", item.SneakerID))
		}
		if _, seen := byID[item.SneakerID]; !seen {
			ids = append(ids, item.SneakerID)
		}
		byID[item.SneakerID] = append(byID[item.SneakerID], item)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var sumCents int64
	for _, id := range ids {
		sneaker, err := stores.SneakerForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeValidation, "Validation failed").
					WithDetails(fmt.Sprintf("Sneaker %d does not exist", id))
			}
			return fmt.Errorf("lock sneaker %d: %w", id, err)
		}

		needed := 0
		for _, item := range byID[id] {
			if !sneaker.HasSize(item.Size) {
				return dErrors.New(dErrors.CodeValidation, "Validation failed").
					WithDetails(fmt.Sprintf("Size %q is not available for %s", item.Size, sneaker.Name))
			}
			needed += item.Quantity
			sumCents += models.Cents(item.Price) * int64(item.Quantity)
		}
		if needed > sneaker.Stock {
			return dErrors.New(dErrors.CodeValidation, "Validation failed").
				WithDetails(fmt.Sprintf("Insufficient stock for %s", sneaker.Name))
		}
	}

	if sumCents != models.Cents(order.Total) {
		return dErrors.New(dErrors.CodeInvariantViolation, "order total does not match item sum")
	}
	return nil
}

// ListByUser returns the user's orders, newest first, items included.
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	orders, err := s.reader.ListByUser(ctx, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "order list failed", "user_id", userID, "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Failed to fetch orders")
	}
	return orders, nil
}

// UpdateStatus drives the pending -> completed|cancelled transition. The
// trigger is an external operation (admin action today; a payment webhook
// would call the same path).
func (s *Service) UpdateStatus(ctx context.Context, orderID uuid.UUID, next models.Status) error {
	if !next.Valid() || !models.StatusPending.CanTransitionTo(next) {
		return dErrors.New(dErrors.CodeBadRequest, "invalid status transition")
	}
	if err := s.reader.UpdateStatus(ctx, orderID, models.StatusPending, next); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			return dErrors.New(dErrors.CodeNotFound, "Order not found")
		case errors.Is(err, sentinel.ErrConflict):
			return dErrors.New(dErrors.CodeConflict, "order is not pending")
		}
		s.logger.ErrorContext(ctx, "order status update failed", "order_id", orderID, "error", err)
		return dErrors.Wrap(err, dErrors.CodeInternal, "Failed to update order")
	}
	return nil
}
