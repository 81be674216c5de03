//go:build integration

package store_test

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"solestore/internal/orders/models"
	"solestore/internal/orders/service"
	"solestore/internal/orders/store"
	"solestore/internal/platform/database"
	"solestore/internal/platform/metrics"
	"solestore/pkg/testutil/containers"
)

// txRunner is the transaction boundary for this suite, mirroring the one
// the server wires in.
type txRunner struct {
	db *sql.DB
}

func (r *txRunner) RunInTx(ctx context.Context, fn func(stores service.TxStores) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()
	if err := fn(store.NewPostgresTx(tx)); err != nil {
		return err
	}
	return tx.Commit()
}

func setupOrderService(t *testing.T) (*service.Service, *sql.DB, uuid.UUID) {
	t.Helper()

	pg := containers.NewPostgresContainer(t)
	ctx := context.Background()
	require.NoError(t, database.EnsureSchema(ctx, pg.DB))

	userID := uuid.New()
	_, err := pg.DB.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, first_name, last_name)
		VALUES ($1, 'buyer@example.com', 'x', 'Test', 'Buyer')
	`, userID)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewService(&txRunner{db: pg.DB}, store.NewPostgresReader(pg.DB), logger, metrics.NewForTest())
	return svc, pg.DB, userID
}

func seedSneaker(t *testing.T, db *sql.DB, price float64, stock int) int64 {
	t.Helper()
	var id int64
	err := db.QueryRow(`
		INSERT INTO sneakers (name, brand, price, stock, sizes)
		VALUES ('Air Max 270', 'Nike', $1, $2, '{"9","10"}')
		RETURNING id
	`, price, stock).Scan(&id)
	require.NoError(t, err)
	return id
}

func currentStock(t *testing.T, db *sql.DB, id int64) int {
	t.Helper()
	var stock int
	require.NoError(t, db.QueryRow(`SELECT stock FROM sneakers WHERE id = $1`, id).Scan(&stock))
	return stock
}

func TestOrderTransaction_CommitsAtomically(t *testing.T) {
	svc, db, userID := setupOrderService(t)
	ctx := context.Background()
	sneakerID := seedSneaker(t, db, 150, 10)

	orderID, err := svc.Create(ctx, userID, service.CreateParams{
		Items: []models.OrderItem{
			{SneakerID: sneakerID, Quantity: 2, Size: "9", Price: 150},
			{SneakerID: sneakerID, Quantity: 1, Size: "10", Price: 150},
		},
		Total: 450,
		ShippingAddress: models.ShippingAddress{
			FullName: "Test Buyer", Address: "1 Main St", City: "Portland",
			ZipCode: "97201", Country: "USA",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 7, currentStock(t, db, sneakerID))

	orders, err := svc.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, orderID, orders[0].ID)
	assert.Len(t, orders[0].Items, 2)
}

func TestOrderTransaction_RollsBackOnRejection(t *testing.T) {
	svc, db, userID := setupOrderService(t)
	ctx := context.Background()
	sneakerID := seedSneaker(t, db, 150, 1)

	_, err := svc.Create(ctx, userID, service.CreateParams{
		Items: []models.OrderItem{
			{SneakerID: sneakerID, Quantity: 1, Size: "9", Price: 150},
			{SneakerID: sneakerID, Quantity: 5, Size: "10", Price: 150},
		},
		Total: 900,
		ShippingAddress: models.ShippingAddress{
			FullName: "Test Buyer", Address: "1 Main St", City: "Portland",
			ZipCode: "97201", Country: "USA",
		},
	})
	require.Error(t, err)

	assert.Equal(t, 1, currentStock(t, db, sneakerID))
	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM orders`).Scan(&count))
	assert.Zero(t, count)
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM order_items`).Scan(&count))
	assert.Zero(t, count)
}

// N concurrent orders against the same sneaker must serialize on the row
// lock: every decrement lands exactly once, none are lost.
func TestOrderTransaction_ConcurrentOrdersNoLostUpdates(t *testing.T) {
	svc, db, userID := setupOrderService(t)
	ctx := context.Background()

	const (
		workers  = 10
		quantity = 2
	)
	sneakerID := seedSneaker(t, db, 100, workers*quantity)

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()
			_, err := svc.Create(callCtx, userID, service.CreateParams{
				Items: []models.OrderItem{
					{SneakerID: sneakerID, Quantity: quantity, Size: "9", Price: 100},
				},
				Total: float64(quantity) * 100,
				ShippingAddress: models.ShippingAddress{
					FullName: "Test Buyer", Address: "1 Main St", City: "Portland",
					ZipCode: "97201", Country: "USA",
				},
			})
			return err
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, 0, currentStock(t, db, sneakerID))
	orders, err := svc.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, orders, workers)
}

func TestOrderStatus_ConditionalTransition(t *testing.T) {
	svc, db, userID := setupOrderService(t)
	ctx := context.Background()
	sneakerID := seedSneaker(t, db, 100, 5)

	orderID, err := svc.Create(ctx, userID, service.CreateParams{
		Items: []models.OrderItem{{SneakerID: sneakerID, Quantity: 1, Size: "9", Price: 100}},
		Total: 100,
		ShippingAddress: models.ShippingAddress{
			FullName: "Test Buyer", Address: "1 Main St", City: "Portland",
			ZipCode: "97201", Country: "USA",
		},
	})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(ctx, orderID, models.StatusCompleted))
	err = svc.UpdateStatus(ctx, orderID, models.StatusCancelled)
	require.Error(t, err, "second transition must lose the conditional write")
}
