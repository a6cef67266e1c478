package port

import (
	"context"

	"github.com/rafaelleal24/aceitera/internal/core/domain"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

type SalePort interface {
	Create(ctx context.Context, sale *domain.Sale) error
	GetByID(ctx context.Context, id domain.ID) (*domain.Sale, error)
	GetAll(ctx context.Context) ([]*domain.Sale, error)
	GetByProductID(ctx context.Context, productID domain.ID) ([]*domain.Sale, error)
	CountByProductID(ctx context.Context, productID domain.ID) (int64, error)
	DeleteByProductID(ctx context.Context, productID domain.ID) (int64, error)
}
