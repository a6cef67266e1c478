package memory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rafaelleal24/aceitera/internal/core/domain"
	"github.com/rafaelleal24/aceitera/internal/core/port"
	"github.com/rafaelleal24/aceitera/internal/core/serviceerrors"
)

// SaleRepository keeps the ledger in insertion order.
type SaleRepository struct {
	store *Store
}

func NewSaleRepository(store *Store) port.SalePort {
	return &SaleRepository{store: store}
}

func (r *SaleRepository) Create(ctx context.Context, sale *domain.Sale) error {
	if sale.ID != "" {
		return errors.New("cannot create sale with existing ID")
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	// the relational stores enforce this with a foreign key
	if _, ok := s.products[sale.ProductID]; !ok {
		return serviceerrors.NewNotFoundError("entity not found")
	}

	sale.ID = domain.ID(uuid.NewString())
	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = time.Now().UTC()
	}
	s.sales = append(s.sales, copySale(sale))

	id := sale.ID
	record(ctx, func() error {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.sales = removeSales(s.sales, func(stored *domain.Sale) bool { return stored.ID == id })
		return nil
	})
	return nil
}

func (r *SaleRepository) GetByID(_ context.Context, id domain.ID) (*domain.Sale, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, sale := range r.store.sales {
		if sale.ID == id {
			return copySale(sale), nil
		}
	}
	return nil, serviceerrors.NewNotFoundError("entity not found")
}

func (r *SaleRepository) GetAll(_ context.Context) ([]*domain.Sale, error) {
	return r.filter(func(*domain.Sale) bool { return true }), nil
}

func (r *SaleRepository) GetByProductID(_ context.Context, productID domain.ID) ([]*domain.Sale, error) {
	return r.filter(func(sale *domain.Sale) bool { return sale.ProductID == productID }), nil
}

func (r *SaleRepository) CountByProductID(_ context.Context, productID domain.ID) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var count int64
	for _, sale := range r.store.sales {
		if sale.ProductID == productID {
			count++
		}
	}
	return count, nil
}

func (r *SaleRepository) DeleteByProductID(ctx context.Context, productID domain.ID) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.sales
	s.sales = removeSales(s.sales, func(sale *domain.Sale) bool { return sale.ProductID == productID })
	deleted := int64(len(before) - len(s.sales))

	record(ctx, func() error {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.sales = before
		return nil
	})
	return deleted, nil
}

func (r *SaleRepository) filter(keep func(*domain.Sale) bool) []*domain.Sale {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	sales := make([]*domain.Sale, 0, len(r.store.sales))
	for _, sale := range r.store.sales {
		if keep(sale) {
			sales = append(sales, copySale(sale))
		}
	}
	return sales
}

// removeSales returns a new slice so earlier snapshots stay intact.
func removeSales(sales []*domain.Sale, drop func(*domain.Sale) bool) []*domain.Sale {
	kept := make([]*domain.Sale, 0, len(sales))
	for _, sale := range sales {
		if !drop(sale) {
			kept = append(kept, sale)
		}
	}
	return kept
}
