package postgres

import (
	"context"
	"errors"
	"fmt"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rafaelleal24/aceitera/internal/core/logger"
	"github.com/rafaelleal24/aceitera/internal/core/port"
	"github.com/rafaelleal24/aceitera/internal/core/serviceerrors"
)

type txKey struct{}

type TransactionManager struct {
	pool *pgxpool.Pool
}

func NewTransactionManager(pool *pgxpool.Pool) port.TransactionManager {
	return &TransactionManager{pool: pool}
}

// WithTransaction runs fn in one database transaction. Repositories pick the
// transaction up from the context; a nested call joins the outer one.
func (tm *TransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, tm.pool)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	txCtx := context.WithValue(ctx, txKey{}, tx.Transaction().(pgx.Tx))

	if err := fn(txCtx); err != nil {
		if tx.IsActive() {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				// the server drops an unfinished transaction with its connection
				logger.Error(ctx, "postgres: rollback failed", rbErr, nil)
			}
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			return err
		}
		return fmt.Errorf("%w: %w", serviceerrors.ErrCommitOutcomeUnknown, err)
	}
	return nil
}

func txFromContext(ctx context.Context) pgx.Tx {
	tx, _ := ctx.Value(txKey{}).(pgx.Tx)
	return tx
}
