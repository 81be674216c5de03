package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogmodels "solestore/internal/catalog/models"
	catalogstore "solestore/internal/catalog/store"
	"solestore/internal/orders/models"
	"solestore/internal/orders/service"
	"solestore/internal/orders/store"
	"solestore/internal/platform/metrics"
	dErrors "solestore/pkg/domain-errors"
)

type fixture struct {
	catalog *catalogstore.MemoryStore
	orders  *store.Memory
	service *service.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	catalog := catalogstore.NewMemory()
	orders := store.NewMemory(catalog)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewService(orders, orders, logger, metrics.NewForTest())
	return &fixture{catalog: catalog, orders: orders, service: svc}
}

func (f *fixture) seedSneaker(t *testing.T, name string, price float64, stock int, sizes ...string) int64 {
	t.Helper()
	id, err := f.catalog.Create(context.Background(), catalogmodels.Sneaker{
		Name:  name,
		Brand: "Nike",
		Price: price,
		Stock: stock,
		Sizes: sizes,
	})
	require.NoError(t, err)
	return id
}

func (f *fixture) stock(t *testing.T, id int64) int {
	t.Helper()
	sneaker, err := f.catalog.FindByID(context.Background(), id)
	require.NoError(t, err)
	return sneaker.Stock
}

func validAddress() models.ShippingAddress {
	return models.ShippingAddress{
		FullName: "Jordan Lee",
		Address:  "1 Main St",
		City:     "Portland",
		State:    "OR",
		ZipCode:  "97201",
		Country:  "USA",
	}
}

func TestCreate_Success(t *testing.T) {
	f := newFixture(t)
	userID := uuid.New()
	id := f.seedSneaker(t, "Air Max 270", 150, 10, "9", "10")

	orderID, err := f.service.Create(context.Background(), userID, service.CreateParams{
		Items: []models.OrderItem{
			{SneakerID: id, Quantity: 2, Size: "10", Price: 150},
		},
		Total:           300,
		ShippingAddress: validAddress(),
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, orderID)

	assert.Equal(t, 8, f.stock(t, id))

	orders, err := f.service.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, orderID, orders[0].ID)
	assert.Equal(t, models.StatusPending, orders[0].Status)
	assert.Equal(t, 300.0, orders[0].Total)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, 2, orders[0].Items[0].Quantity)
}

func TestCreate_MultiItem(t *testing.T) {
	f := newFixture(t)
	userID := uuid.New()
	dunk := f.seedSneaker(t, "Dunk Low", 110, 5, "9", "10")
	jordan := f.seedSneaker(t, "Air Jordan 1", 180, 3, "9")

	// Same sneaker twice in different sizes plus a second sneaker.
	_, err := f.service.Create(context.Background(), userID, service.CreateParams{
		Items: []models.OrderItem{
			{SneakerID: dunk, Quantity: 1, Size: "9", Price: 110},
			{SneakerID: dunk, Quantity: 2, Size: "10", Price: 110},
			{SneakerID: jordan, Quantity: 1, Size: "9", Price: 180},
		},
		Total:           510,
		ShippingAddress: validAddress(),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, f.stock(t, dunk))
	assert.Equal(t, 2, f.stock(t, jordan))
}

// Three items at 59.99 sum to 179.97 exactly in cents even though the
// float sum drifts; the invariant must not reject this order.
func TestCreate_FloatTotalNoDrift(t *testing.T) {
	f := newFixture(t)
	id := f.seedSneaker(t, "Pegasus 41", 59.99, 10, "9")

	_, err := f.service.Create(context.Background(), uuid.New(), service.CreateParams{
		Items: []models.OrderItem{
			{SneakerID: id, Quantity: 3, Size: "9", Price: 59.99},
		},
		Total:           179.97,
		ShippingAddress: validAddress(),
	})
	assert.NoError(t, err)
}

func TestCreate_ValidationRejections(t *testing.T) {
	f := newFixture(t)
	id := f.seedSneaker(t, "Air Max 270", 150, 2, "9", "10")

	tests := []struct {
		name   string
		params service.CreateParams
	}{
		{
			name:   "empty items",
			params: service.CreateParams{Total: 150, ShippingAddress: validAddress()},
		},
		{
			name: "unknown sneaker",
			params: service.CreateParams{
				Items:           []models.OrderItem{{SneakerID: 999, Quantity: 1, Size: "9", Price: 150}},
				Total:           150,
				ShippingAddress: validAddress(),
			},
		},
		{
			name: "size not offered",
			params: service.CreateParams{
				Items:           []models.OrderItem{{SneakerID: id, Quantity: 1, Size: "13", Price: 150}},
				Total:           150,
				ShippingAddress: validAddress(),
			},
		},
		{
			name: "insufficient stock",
			params: service.CreateParams{
				Items:           []models.OrderItem{{SneakerID: id, Quantity: 3, Size: "9", Price: 150}},
				Total:           450,
				ShippingAddress: validAddress(),
			},
		},
		{
			name: "insufficient stock across sizes of one sneaker",
			params: service.CreateParams{
				Items: []models.OrderItem{
					{SneakerID: id, Quantity: 1, Size: "9", Price: 150},
					{SneakerID: id, Quantity: 2, Size: "10", Price: 150},
				},
				Total:           450,
				ShippingAddress: validAddress(),
			},
		},
		{
			name: "zero quantity",
			params: service.CreateParams{
				Items:           []models.OrderItem{{SneakerID: id, Quantity: 0, Size: "9", Price: 150}},
				Total:           0,
				ShippingAddress: validAddress(),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Create(context.Background(), uuid.New(), tt.params)
			require.Error(t, err)
			assert.True(t, dErrors.Is(err, dErrors.CodeValidation), "want validation error, got %v", err)
			assert.Equal(t, 2, f.stock(t, id), "stock must be untouched after rejection")
		})
	}
}

func TestCreate_TotalMismatch(t *testing.T) {
	f := newFixture(t)
	id := f.seedSneaker(t, "Air Max 270", 150, 5, "9")

	_, err := f.service.Create(context.Background(), uuid.New(), service.CreateParams{
		Items:           []models.OrderItem{{SneakerID: id, Quantity: 2, Size: "9", Price: 150}},
		Total:           299,
		ShippingAddress: validAddress(),
	})
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeInvariantViolation))
	assert.Equal(t, 5, f.stock(t, id))
}

// A failure at any write inside the transaction must roll everything back:
// no order visible, no stock consumed.
func TestCreate_RollbackOnWriteFailure(t *testing.T) {
	for _, failOn := range []string{"insert_order", "insert_item", "decrement_stock"} {
		t.Run(failOn, func(t *testing.T) {
			f := newFixture(t)
			f.orders.FailOn = failOn
			userID := uuid.New()
			id := f.seedSneaker(t, "Air Max 270", 150, 5, "9")

			_, err := f.service.Create(context.Background(), userID, service.CreateParams{
				Items:           []models.OrderItem{{SneakerID: id, Quantity: 1, Size: "9", Price: 150}},
				Total:           150,
				ShippingAddress: validAddress(),
			})
			require.Error(t, err)
			assert.True(t, dErrors.Is(err, dErrors.CodeInternal), "cause must not leak, got %v", err)

			assert.Equal(t, 5, f.stock(t, id))
			orders, err := f.service.ListByUser(context.Background(), userID)
			require.NoError(t, err)
			assert.Empty(t, orders)
		})
	}
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t)
	userID := uuid.New()
	id := f.seedSneaker(t, "Air Max 270", 150, 5, "9")

	orderID, err := f.service.Create(context.Background(), userID, service.CreateParams{
		Items:           []models.OrderItem{{SneakerID: id, Quantity: 1, Size: "9", Price: 150}},
		Total:           150,
		ShippingAddress: validAddress(),
	})
	require.NoError(t, err)

	t.Run("pending to completed", func(t *testing.T) {
		require.NoError(t, f.service.UpdateStatus(context.Background(), orderID, models.StatusCompleted))

		orders, err := f.service.ListByUser(context.Background(), userID)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, models.StatusCompleted, orders[0].Status)
	})

	t.Run("second transition conflicts", func(t *testing.T) {
		err := f.service.UpdateStatus(context.Background(), orderID, models.StatusCancelled)
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeConflict))
	})

	t.Run("unknown order", func(t *testing.T) {
		err := f.service.UpdateStatus(context.Background(), uuid.New(), models.StatusCompleted)
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
	})

	t.Run("pending is not a transition target", func(t *testing.T) {
		err := f.service.UpdateStatus(context.Background(), orderID, models.StatusPending)
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeBadRequest))
	})
}
