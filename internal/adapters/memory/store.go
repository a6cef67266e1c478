// Package memory keeps every store in process. It backs local development
// and tests, and serializes units of work instead of isolating them.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rafaelleal24/aceitera/internal/adapters/outbox"
	"github.com/rafaelleal24/aceitera/internal/core/domain"
	"github.com/rafaelleal24/aceitera/internal/core/port"
	"github.com/rafaelleal24/aceitera/internal/core/serviceerrors"
)

type Store struct {
	mu       sync.RWMutex
	products map[domain.ID]*domain.Product
	sales    []*domain.Sale
	outbox   []outbox.Entry
	outboxID int64

	// txMu admits one unit of work at a time.
	txMu sync.Mutex
}

func NewStore() *Store {
	return &Store{
		products: make(map[domain.ID]*domain.Product),
	}
}

type journalKey struct{}

// journal records how to undo each write of the running unit of work.
type journal struct {
	undo []func() error
}

func journalFromContext(ctx context.Context) *journal {
	j, _ := ctx.Value(journalKey{}).(*journal)
	return j
}

func record(ctx context.Context, undo func() error) {
	if j := journalFromContext(ctx); j != nil {
		j.undo = append(j.undo, undo)
	}
}

func (j *journal) rollback() error {
	var errs []error
	for i := len(j.undo) - 1; i >= 0; i-- {
		if err := j.undo[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type TransactionManager struct {
	store *Store
}

func NewTransactionManager(store *Store) port.TransactionManager {
	return &TransactionManager{store: store}
}

// WithTransaction runs fn alone and replays the undo journal when fn fails.
// A nested call joins the outer unit of work.
func (tm *TransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if journalFromContext(ctx) != nil {
		return fn(ctx)
	}

	tm.store.txMu.Lock()
	defer tm.store.txMu.Unlock()

	j := &journal{}
	err := fn(context.WithValue(ctx, journalKey{}, j))
	if err == nil {
		return nil
	}

	if rbErr := j.rollback(); rbErr != nil {
		return errors.Join(err, fmt.Errorf("%w: %w", serviceerrors.ErrRollbackIncomplete, rbErr))
	}
	return err
}

func copyProduct(p *domain.Product) *domain.Product {
	cp := *p
	return &cp
}

func copySale(s *domain.Sale) *domain.Sale {
	cp := *s
	return &cp
}
