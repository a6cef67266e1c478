package postgres

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rafaelleal24/aceitera/internal/adapters/outbox"
	"github.com/rafaelleal24/aceitera/internal/core/serviceerrors"
)

type OutboxRepository struct {
	baseRepository
}

func NewOutboxRepository(pool *pgxpool.Pool) outbox.Repository {
	return &OutboxRepository{baseRepository{pool: pool}}
}

func (r *OutboxRepository) Insert(ctx context.Context, entry outbox.Entry) error {
	_, err := r.conn(ctx).Exec(ctx,
		`INSERT INTO outbox (event_name, entity_name, event_data) VALUES ($1, $2, $3)`,
		entry.EventName, entry.EntityName, entry.EventData,
	)
	return parseError(err)
}

func (r *OutboxRepository) FetchPending(ctx context.Context, limit int) ([]outbox.Entry, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT id, event_name, entity_name, event_data FROM outbox ORDER BY id LIMIT $1`, limit)
	if err != nil {
		return nil, parseError(err)
	}
	defer rows.Close()

	entries := make([]outbox.Entry, 0, limit)
	for rows.Next() {
		var (
			id    int64
			entry outbox.Entry
		)
		if err := rows.Scan(&id, &entry.EventName, &entry.EntityName, &entry.EventData); err != nil {
			return nil, err
		}
		entry.ID = strconv.FormatInt(id, 10)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *OutboxRepository) Delete(ctx context.Context, id string) error {
	outboxID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return serviceerrors.NewInvalidRequestError("invalid ID format")
	}

	_, err = r.conn(ctx).Exec(ctx, `DELETE FROM outbox WHERE id = $1`, outboxID)
	return parseError(err)
}
