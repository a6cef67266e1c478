package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rafaelleal24/aceitera/internal/core/domain"
	"github.com/rafaelleal24/aceitera/internal/core/serviceerrors"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
)

// querier is satisfied by both the pool and a running transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type baseRepository struct {
	pool *pgxpool.Pool
}

func (r baseRepository) conn(ctx context.Context) querier {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func parseID(id domain.ID) (uuid.UUID, error) {
	parsed, err := uuid.Parse(string(id))
	if err != nil {
		return uuid.Nil, serviceerrors.NewInvalidRequestError("invalid ID format")
	}
	return parsed, nil
}

func parseError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return serviceerrors.NewNotFoundError("entity not found")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return serviceerrors.NewConflictError("duplicate key error")
		case foreignKeyViolation:
			return serviceerrors.NewConflictError("entity is still referenced")
		case checkViolation:
			return serviceerrors.NewInvalidRequestError(pgErr.Message)
		}
	}
	return err
}
