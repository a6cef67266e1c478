package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rafaelleal24/aceitera/internal/core/domain"
	"github.com/rafaelleal24/aceitera/internal/core/port"
	"github.com/rafaelleal24/aceitera/internal/core/serviceerrors"
)

type ProductRepository struct {
	store *Store
}

func NewProductRepository(store *Store) port.ProductPort {
	return &ProductRepository{store: store}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	product.ID = domain.ID(uuid.NewString())
	s.products[product.ID] = copyProduct(product)

	id := product.ID
	record(ctx, func() error {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.products, id)
		return nil
	})
	return nil
}

func (r *ProductRepository) GetByID(_ context.Context, id domain.ID) (*domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	product, ok := r.store.products[id]
	if !ok {
		return nil, serviceerrors.NewNotFoundError("entity not found")
	}
	return copyProduct(product), nil
}

func (r *ProductRepository) GetByIDs(_ context.Context, ids []domain.ID) ([]*domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	products := make([]*domain.Product, 0, len(ids))
	for _, id := range ids {
		if product, ok := r.store.products[id]; ok {
			products = append(products, copyProduct(product))
		}
	}
	return products, nil
}

func (r *ProductRepository) GetAll(_ context.Context) ([]*domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	products := make([]*domain.Product, 0, len(r.store.products))
	for _, product := range r.store.products {
		products = append(products, copyProduct(product))
	}
	sort.Slice(products, func(i, j int) bool {
		if products[i].CreatedAt.Equal(products[j].CreatedAt) {
			return products[i].ID < products[j].ID
		}
		return products[i].CreatedAt.Before(products[j].CreatedAt)
	})
	return products, nil
}

// DeductStock checks and decrements under one lock.
func (r *ProductRepository) DeductStock(ctx context.Context, id domain.ID, quantity int) (*domain.Product, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	if !ok {
		return nil, serviceerrors.NewNotFoundError("entity not found")
	}
	if product.Stock < quantity {
		return nil, serviceerrors.NewInsufficientInventoryError(
			fmt.Sprintf("insufficient inventory for product %s: requested %d, available %d", id, quantity, product.Stock),
			map[string]any{
				"product_id": string(id),
				"requested":  quantity,
				"available":  product.Stock,
			},
		)
	}

	previousUpdate := product.UpdatedAt
	product.Stock -= quantity
	product.UpdatedAt = time.Now()

	record(ctx, func() error {
		s.mu.Lock()
		defer s.mu.Unlock()
		current, ok := s.products[id]
		if !ok {
			return fmt.Errorf("restore stock: product %s no longer exists", id)
		}
		current.Stock += quantity
		current.UpdatedAt = previousUpdate
		return nil
	})
	return copyProduct(product), nil
}

func (r *ProductRepository) Delete(ctx context.Context, id domain.ID) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	if !ok {
		return serviceerrors.NewNotFoundError("entity not found")
	}
	delete(s.products, id)

	record(ctx, func() error {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.products[id] = product
		return nil
	})
	return nil
}
