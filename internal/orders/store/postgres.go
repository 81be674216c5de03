package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	catalogmodels "solestore/internal/catalog/models"
	"solestore/internal/orders/models"
	"solestore/pkg/platform/sentinel"
)

// PostgresTxStores exposes the order writes scoped to one open transaction.
// Constructed inside RunInTx; never outlives the transaction.
type PostgresTxStores struct {
	tx *sql.Tx
}

// NewPostgresTx wraps an open transaction.
func NewPostgresTx(tx *sql.Tx) *PostgresTxStores {
	return &PostgresTxStores{tx: tx}
}

// SneakerForUpdate reads a sneaker under FOR UPDATE so concurrent orders
// against the same sneaker serialize on the row lock.
func (s *PostgresTxStores) SneakerForUpdate(ctx context.Context, sneakerID int64) (catalogmodels.Sneaker, error) {
	var sneaker catalogmodels.Sneaker
	var sizes pq.StringArray
	err := s.tx.QueryRowContext(ctx, `
		SELECT id, name, brand, price, stock, sizes
		FROM sneakers WHERE id = $1
		FOR UPDATE
	`, sneakerID).Scan(&sneaker.ID, &sneaker.Name, &sneaker.Brand, &sneaker.Price, &sneaker.Stock, &sizes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return catalogmodels.Sneaker{}, fmt.Errorf("lock sneaker: %w", sentinel.ErrNotFound)
		}
		return catalogmodels.Sneaker{}, fmt.Errorf("lock sneaker: %w", err)
	}
	sneaker.Sizes = sizes
	return sneaker, nil
}

func (s *PostgresTxStores) InsertOrder(ctx context.Context, order models.Order) error {
	address, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return fmt.Errorf("marshal shipping address: %w", err)
	}
	_, err = s.tx.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, total, status, shipping_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, order.ID, order.UserID, order.Total, order.Status, address, order.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (s *PostgresTxStores) InsertItem(ctx context.Context, orderID uuid.UUID, item models.OrderItem) error {
	_, err := s.tx.ExecContext(ctx, `
		INSERT INTO order_items (order_id, sneaker_id, quantity, size, price)
		VALUES ($1, $2, $3, $4, $5)
	`, orderID, item.SneakerID, item.Quantity, item.Size, item.Price)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

// DecrementStock subtracts quantity from the already-locked sneaker row.
// The schema-level CHECK (stock >= 0) is the last line of defense; the
// service validates sufficiency before calling this.
func (s *PostgresTxStores) DecrementStock(ctx context.Context, sneakerID int64, quantity int) error {
	res, err := s.tx.ExecContext(ctx, `
		UPDATE sneakers SET stock = stock - $2 WHERE id = $1
	`, sneakerID, quantity)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "check_violation" {
			return fmt.Errorf("decrement stock: %w", sentinel.ErrInsufficientStock)
		}
		return fmt.Errorf("decrement stock: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("decrement stock: %w", sentinel.ErrNotFound)
	}
	return nil
}

// PostgresReader serves order queries outside the transaction boundary.
type PostgresReader struct {
	db *sql.DB
}

func NewPostgresReader(db *sql.DB) *PostgresReader {
	return &PostgresReader{db: db}
}

// ListByUser returns the user's orders newest first, items grouped under
// their header in one LEFT JOIN pass.
func (r *PostgresReader) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT o.id, o.user_id, o.total, o.status, o.shipping_address, o.created_at,
		       oi.sneaker_id, oi.quantity, oi.size, oi.price
		FROM orders o
		LEFT JOIN order_items oi ON o.id = oi.order_id
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC, o.id, oi.id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var (
			order   models.Order
			address []byte
			// Item columns are NULL for orders without items.
			sneakerID sql.NullInt64
			quantity  sql.NullInt64
			size      sql.NullString
			price     sql.NullFloat64
		)
		err := rows.Scan(&order.ID, &order.UserID, &order.Total, &order.Status, &address, &order.CreatedAt,
			&sneakerID, &quantity, &size, &price)
		if err != nil {
			return nil, fmt.Errorf("list orders: %w", err)
		}

		pos, seen := index[order.ID]
		if !seen {
			if err := json.Unmarshal(address, &order.ShippingAddress); err != nil {
				return nil, fmt.Errorf("unmarshal shipping address: %w", err)
			}
			order.Items = []models.OrderItem{}
			orders = append(orders, order)
			pos = len(orders) - 1
			index[order.ID] = pos
		}
		if sneakerID.Valid {
			orders[pos].Items = append(orders[pos].Items, models.OrderItem{
				SneakerID: sneakerID.Int64,
				Quantity:  int(quantity.Int64),
				Size:      size.String,
				Price:     price.Float64,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus performs the transition as one conditional write so two
// concurrent transitions cannot both win.
func (r *PostgresReader) UpdateStatus(ctx context.Context, orderID uuid.UUID, from, to models.Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = $3 WHERE id = $1 AND status = $2
	`, orderID, from, to)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if affected == 0 {
		var status models.Status
		err := r.db.QueryRowContext(ctx, `SELECT status FROM orders WHERE id = $1`, orderID).Scan(&status)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("update order status: %w", sentinel.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		return fmt.Errorf("update order status: %w", sentinel.ErrConflict)
	}
	return nil
}
