package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rafaelleal24/aceitera/internal/core/domain"
	"github.com/rafaelleal24/aceitera/internal/core/dto"
	"github.com/rafaelleal24/aceitera/internal/core/logger"
	"github.com/rafaelleal24/aceitera/internal/core/port"
	"github.com/rafaelleal24/aceitera/internal/core/serviceerrors"
)

type DeletePolicy string

const (
	// DeletePolicyRestrict refuses to delete a product that sales still reference.
	DeletePolicyRestrict DeletePolicy = "restrict"
	// DeletePolicyCascade deletes the referencing sales together with the product.
	DeletePolicyCascade DeletePolicy = "cascade"
)

func (p DeletePolicy) IsValid() bool {
	return p == DeletePolicyRestrict || p == DeletePolicyCascade
}

type ProductService struct {
	productRepository port.ProductPort
	saleRepository    port.SalePort
	outbox            port.OutboxPort
	saleCache         port.CachePort[domain.Sale]
	txManager         port.TransactionManager
	deletePolicy      DeletePolicy
}

func NewProductService(
	productRepository port.ProductPort,
	saleRepository port.SalePort,
	outbox port.OutboxPort,
	saleCache port.CachePort[domain.Sale],
	txManager port.TransactionManager,
	deletePolicy DeletePolicy,
) *ProductService {
	if !deletePolicy.IsValid() {
		deletePolicy = DeletePolicyRestrict
	}
	return &ProductService{
		productRepository: productRepository,
		saleRepository:    saleRepository,
		outbox:            outbox,
		saleCache:         saleCache,
		txManager:         txManager,
		deletePolicy:      deletePolicy,
	}
}

func validateCreateProduct(request *dto.CreateProductRequest) (costPrice, publicPrice domain.Amount, err error) {
	if strings.TrimSpace(request.Name) == "" {
		return 0, 0, serviceerrors.NewInvalidRequestError("name must not be empty")
	}
	if costPrice, err = parsePrice("costPrice", request.CostPrice); err != nil {
		return 0, 0, err
	}
	if publicPrice, err = parsePrice("publicPrice", request.PublicPrice); err != nil {
		return 0, 0, err
	}
	if request.StockQuantity < 0 {
		return 0, 0, serviceerrors.NewInvalidRequestError("stockQuantity must not be negative")
	}
	if request.StockQuantity > domain.MaxStockQuantity {
		return 0, 0, serviceerrors.NewInvalidRequestError(fmt.Sprintf("stockQuantity must not exceed %d", domain.MaxStockQuantity))
	}
	return costPrice, publicPrice, nil
}

// parsePrice range-checks before rounding to cents, so values beyond int64
// never reach the conversion.
func parsePrice(field string, value decimal.Decimal) (domain.Amount, error) {
	if value.GreaterThan(domain.MaxPrice.Decimal()) {
		return 0, serviceerrors.NewInvalidRequestError(fmt.Sprintf("%s must not exceed %s", field, domain.MaxPrice.Decimal().StringFixed(2)))
	}
	amount := domain.NewAmountFromDecimal(value)
	if amount <= 0 {
		return 0, serviceerrors.NewInvalidRequestError(field + " must be greater than zero")
	}
	return amount, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, request *dto.CreateProductRequest) (*domain.Product, error) {
	costPrice, publicPrice, err := validateCreateProduct(request)
	if err != nil {
		return nil, err
	}

	product := domain.NewProduct(strings.TrimSpace(request.Name), domain.ProductDetails{
		Description:   request.Description,
		Barcode:       request.Barcode,
		SKU:           request.SKU,
		Brand:         request.Brand,
		Supplier:      request.Supplier,
		InvoiceNumber: request.InvoiceNumber,
	}, costPrice, publicPrice, request.StockQuantity)

	if product.ProfitPerUnit < 0 {
		logger.Warn(ctx, "product: public price below cost price", map[string]any{
			"name":         product.Name,
			"cost_price":   int(costPrice),
			"public_price": int(publicPrice),
		})
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.productRepository.Create(txCtx, product); err != nil {
			return err
		}
		return s.outbox.Insert(txCtx, domain.NewProductCreatedEvent(product))
	})
	if err != nil {
		logger.Error(ctx, "product: create failed", err, map[string]any{
			"name":         request.Name,
			"cost_price":   int(costPrice),
			"public_price": int(publicPrice),
			"stock":        request.StockQuantity,
		})
		return nil, translateStoreError(err, "create_product", map[string]any{
			"product_id": string(product.ID),
			"name":       product.Name,
		})
	}

	logger.Info(ctx, "Product created", map[string]any{"product_id": string(product.ID)})
	return product, nil
}

func (s *ProductService) GetByID(ctx context.Context, id domain.ID) (*domain.Product, error) {
	product, err := s.productRepository.GetByID(ctx, id)
	if err != nil {
		if serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
			return nil, serviceerrors.NewNotFoundError(fmt.Sprintf("product %s not found", id))
		}
		return nil, err
	}
	return product, nil
}

// GetByIDs returns the known products keyed by id.
func (s *ProductService) GetByIDs(ctx context.Context, ids []domain.ID) (map[domain.ID]*domain.Product, error) {
	byID := make(map[domain.ID]*domain.Product, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}

	products, err := s.productRepository.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, product := range products {
		byID[product.ID] = product
	}
	return byID, nil
}

func (s *ProductService) GetAll(ctx context.Context) ([]*domain.Product, error) {
	return s.productRepository.GetAll(ctx)
}

func (s *ProductService) DeductStock(ctx context.Context, id domain.ID, quantity int) (*domain.Product, error) {
	return s.productRepository.DeductStock(ctx, id, quantity)
}

// DeleteProduct applies the configured delete policy and returns how many
// sales were removed with the product.
func (s *ProductService) DeleteProduct(ctx context.Context, id domain.ID) (int, error) {
	if !domain.ValidateID(string(id)) {
		return 0, serviceerrors.NewInvalidRequestError("invalid product id")
	}

	var removed []*domain.Sale
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		removed = nil
		if _, err := s.GetByID(txCtx, id); err != nil {
			return err
		}

		switch s.deletePolicy {
		case DeletePolicyCascade:
			sales, err := s.saleRepository.GetByProductID(txCtx, id)
			if err != nil {
				return err
			}
			if _, err := s.saleRepository.DeleteByProductID(txCtx, id); err != nil {
				return err
			}
			removed = sales
		default:
			count, err := s.saleRepository.CountByProductID(txCtx, id)
			if err != nil {
				return err
			}
			if count > 0 {
				return serviceerrors.WithDetails(
					serviceerrors.NewConflictError(fmt.Sprintf("product %s is referenced by %d sales", id, count)),
					map[string]any{"product_id": string(id), "sales": count},
				)
			}
		}

		if err := s.productRepository.Delete(txCtx, id); err != nil {
			return err
		}
		return s.outbox.Insert(txCtx, domain.NewProductDeletedEvent(id, len(removed), time.Now()))
	})
	if err != nil {
		if !isServiceError(err) || isAmbiguousOutcome(err) {
			logger.Error(ctx, "product: delete failed", err, map[string]any{
				"product_id": string(id),
				"policy":     string(s.deletePolicy),
			})
		}
		return 0, translateStoreError(err, "delete_product", map[string]any{
			"product_id": string(id),
			"policy":     string(s.deletePolicy),
		})
	}

	for _, sale := range removed {
		if err := s.saleCache.Del(ctx, saleCacheKey(sale.ID)); err != nil {
			logger.Error(ctx, "cache: evict sale failed", err, map[string]any{
				"sale_id": string(sale.ID),
			})
		}
	}

	logger.Info(ctx, "Product deleted", map[string]any{
		"product_id":    string(id),
		"policy":        string(s.deletePolicy),
		"deleted_sales": len(removed),
	})
	return len(removed), nil
}
