package main

import (
	"context"
	"database/sql"
	"time"

	ordersservice "solestore/internal/orders/service"
	ordersstore "solestore/internal/orders/store"
	dErrors "solestore/pkg/domain-errors"
)

const defaultOrderTxTimeout = 5 * time.Second

// ordersPostgresTx runs the order-creation unit of work in one database
// transaction. The deferred rollback is a no-op after a successful commit.
type ordersPostgresTx struct {
	db      *sql.DB
	timeout time.Duration
}

func newOrdersPostgresTx(db *sql.DB) *ordersPostgresTx {
	return &ordersPostgresTx{db: db}
}

func (t *ordersPostgresTx) RunInTx(ctx context.Context, fn func(stores ordersservice.TxStores) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultOrderTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(ordersstore.NewPostgresTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	return nil
}
