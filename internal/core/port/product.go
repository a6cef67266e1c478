package port

import (
	"context"

	"github.com/rafaelleal24/aceitera/internal/core/domain"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

type ProductPort interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id domain.ID) (*domain.Product, error)
	// GetByIDs skips ids that do not exist; order is not guaranteed.
	GetByIDs(ctx context.Context, ids []domain.ID) ([]*domain.Product, error)
	GetAll(ctx context.Context) ([]*domain.Product, error)
	// DeductStock decrements stock only while stock >= quantity, atomically
	// with the check, and returns the updated product.
	DeductStock(ctx context.Context, id domain.ID, quantity int) (*domain.Product, error)
	Delete(ctx context.Context, id domain.ID) error
}
