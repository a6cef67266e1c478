package memory

import (
	"context"
	"strconv"

	"github.com/rafaelleal24/aceitera/internal/adapters/outbox"
)

type OutboxRepository struct {
	store *Store
}

func NewOutboxRepository(store *Store) outbox.Repository {
	return &OutboxRepository{store: store}
}

func (r *OutboxRepository) Insert(ctx context.Context, entry outbox.Entry) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.outboxID++
	entry.ID = strconv.FormatInt(s.outboxID, 10)
	s.outbox = append(s.outbox, entry)

	id := entry.ID
	record(ctx, func() error {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.outbox = removeEntry(s.outbox, id)
		return nil
	})
	return nil
}

func (r *OutboxRepository) FetchPending(_ context.Context, limit int) ([]outbox.Entry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if limit > len(r.store.outbox) {
		limit = len(r.store.outbox)
	}
	entries := make([]outbox.Entry, limit)
	copy(entries, r.store.outbox[:limit])
	return entries, nil
}

func (r *OutboxRepository) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.outbox = removeEntry(r.store.outbox, id)
	return nil
}

func removeEntry(entries []outbox.Entry, id string) []outbox.Entry {
	kept := make([]outbox.Entry, 0, len(entries))
	for _, entry := range entries {
		if entry.ID != id {
			kept = append(kept, entry)
		}
	}
	return kept
}
