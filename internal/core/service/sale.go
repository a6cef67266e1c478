package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rafaelleal24/aceitera/internal/core/domain"
	"github.com/rafaelleal24/aceitera/internal/core/dto"
	"github.com/rafaelleal24/aceitera/internal/core/logger"
	"github.com/rafaelleal24/aceitera/internal/core/port"
	"github.com/rafaelleal24/aceitera/internal/core/serviceerrors"
)

const (
	SALE_MAX_QUANTITY = 1_000_000
	saleCacheTTL      = 15 * time.Minute
)

// Steps of the sale unit of work, reported on failures.
const (
	stepReadProduct  = "read_product"
	stepDeductStock  = "deduct_stock"
	stepAppendSale   = "append_sale"
	stepAppendOutbox = "append_outbox"
	stepCommit       = "commit"
)

type SaleOptions struct {
	// RecordTotals snapshots unit price, total amount and total profit on
	// every sale; listings then read money only from the snapshot.
	RecordTotals bool
	MaxQuantity  int
}

type SaleService struct {
	saleRepository port.SalePort
	productService *ProductService
	outbox         port.OutboxPort
	broker         port.BrokerPort
	saleCache      port.CachePort[domain.Sale]
	idempotency    *IdempotencyService[domain.Sale]
	txManager      port.TransactionManager
	options        SaleOptions
}

func NewSaleService(
	saleRepository port.SalePort,
	productService *ProductService,
	outbox port.OutboxPort,
	broker port.BrokerPort,
	saleCache port.CachePort[domain.Sale],
	idempotency *IdempotencyService[domain.Sale],
	txManager port.TransactionManager,
	options SaleOptions,
) *SaleService {
	if options.MaxQuantity <= 0 {
		options.MaxQuantity = SALE_MAX_QUANTITY
	}
	if options.MaxQuantity > domain.MaxStockQuantity {
		options.MaxQuantity = domain.MaxStockQuantity
	}
	return &SaleService{
		saleRepository: saleRepository,
		productService: productService,
		outbox:         outbox,
		broker:         broker,
		saleCache:      saleCache,
		idempotency:    idempotency,
		txManager:      txManager,
		options:        options,
	}
}

func saleCacheKey(saleID domain.ID) string {
	return fmt.Sprintf("sale:%s", saleID)
}

func (s *SaleService) GetSaleByID(ctx context.Context, saleID domain.ID) (*domain.Sale, error) {
	cached, err := s.saleCache.Get(ctx, saleCacheKey(saleID))
	if err != nil {
		logger.Error(ctx, "cache: get sale failed", err, map[string]any{
			"sale_id": string(saleID),
		})
	}
	if cached != nil {
		return cached, nil
	}

	sale, err := s.saleRepository.GetByID(ctx, saleID)
	if err != nil {
		if serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
			return nil, serviceerrors.NewNotFoundError(fmt.Sprintf("sale %s not found", saleID))
		}
		return nil, err
	}

	if err := s.saleCache.Set(ctx, saleCacheKey(saleID), sale, saleCacheTTL); err != nil {
		logger.Error(ctx, "cache: set sale failed", err, map[string]any{
			"sale_id": string(saleID),
		})
	}

	return sale, nil
}

// ListSales joins every sale with its product through one batched lookup.
func (s *SaleService) ListSales(ctx context.Context) ([]*domain.SaleView, error) {
	sales, err := s.saleRepository.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[domain.ID]struct{}, len(sales))
	ids := make([]domain.ID, 0, len(sales))
	for _, sale := range sales {
		if _, ok := seen[sale.ProductID]; ok {
			continue
		}
		seen[sale.ProductID] = struct{}{}
		ids = append(ids, sale.ProductID)
	}

	products, err := s.productService.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]*domain.SaleView, len(sales))
	for i, sale := range sales {
		views[i] = domain.NewSaleView(sale, products[sale.ProductID], s.options.RecordTotals)
	}
	return views, nil
}

func (s *SaleService) validateSale(request *dto.RegisterSaleRequest) error {
	if request.QuantitySold <= 0 {
		return serviceerrors.NewInvalidRequestError("quantitySold must be a positive integer")
	}
	if request.QuantitySold > s.options.MaxQuantity {
		return serviceerrors.NewInvalidRequestError(fmt.Sprintf("quantitySold must not exceed %d", s.options.MaxQuantity))
	}
	if !domain.ValidateID(string(request.ProductID)) {
		return serviceerrors.NewInvalidRequestError("invalid product id")
	}
	return nil
}

// saleAttempt tracks how far the unit of work got, for failure reports.
type saleAttempt struct {
	step     string
	product  *domain.Product
	sale     *domain.Sale
	newStock int
}

func (s *SaleService) processSale(ctx context.Context, request *dto.RegisterSaleRequest) (*domain.Sale, error) {
	if err := s.validateSale(request); err != nil {
		return nil, err
	}

	var attempt saleAttempt
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		attempt = saleAttempt{step: stepReadProduct}

		product, err := s.productService.GetByID(txCtx, request.ProductID)
		if err != nil {
			return err
		}
		attempt.product = product
		if !product.HasStockFor(request.QuantitySold) {
			return insufficientInventory(product.ID, request.QuantitySold, product.Stock)
		}
		if s.options.RecordTotals && !product.CanTotal(request.QuantitySold) {
			return serviceerrors.NewInvalidRequestError(fmt.Sprintf(
				"sale total for %d units of product %s exceeds the supported amount", request.QuantitySold, product.ID))
		}

		attempt.step = stepDeductStock
		updated, err := s.productService.DeductStock(txCtx, product.ID, request.QuantitySold)
		if err != nil {
			return err
		}
		attempt.newStock = updated.Stock

		attempt.step = stepAppendSale
		sale := domain.NewSale(updated, request.QuantitySold, s.options.RecordTotals)
		if err := s.saleRepository.Create(txCtx, sale); err != nil {
			return err
		}
		attempt.sale = sale

		attempt.step = stepAppendOutbox
		if err := s.outbox.Insert(txCtx, domain.NewSaleRegisteredEvent(sale, updated.Stock)); err != nil {
			return err
		}

		attempt.step = stepCommit
		return nil
	})
	if err != nil {
		return nil, s.handleSaleFailure(ctx, err, request, attempt)
	}

	sale := attempt.sale
	if err := s.saleCache.Set(ctx, saleCacheKey(sale.ID), sale, saleCacheTTL); err != nil {
		logger.Error(ctx, "cache: set sale failed", err, map[string]any{
			"sale_id": string(sale.ID),
		})
	}

	logger.Info(ctx, "Sale registered", map[string]any{
		"sale_id":         string(sale.ID),
		"product_id":      string(sale.ProductID),
		"quantity_sold":   sale.QuantitySold,
		"remaining_stock": attempt.newStock,
	})
	return sale, nil
}

func insufficientInventory(productID domain.ID, requested, available int) error {
	return serviceerrors.NewInsufficientInventoryError(
		fmt.Sprintf("insufficient inventory for product %s: requested %d, available %d", productID, requested, available),
		map[string]any{
			"product_id": string(productID),
			"requested":  requested,
			"available":  available,
		},
	)
}

func (s *SaleService) handleSaleFailure(ctx context.Context, err error, request *dto.RegisterSaleRequest, attempt saleAttempt) error {
	if isServiceError(err) && !isAmbiguousOutcome(err) {
		return err
	}

	attempted := map[string]any{
		"product_id":    string(request.ProductID),
		"quantity_sold": request.QuantitySold,
	}
	if attempt.product != nil {
		attempted["previous_stock"] = attempt.product.Stock
		attempted["expected_stock"] = attempt.product.Stock - request.QuantitySold
	}
	if attempt.sale != nil && attempt.sale.ID != "" {
		attempted["sale_id"] = string(attempt.sale.ID)
	}

	translated := translateStoreError(err, attempt.step, attempted)
	logger.Error(ctx, "transaction: register sale failed", err, attempted)

	if serviceerrors.IsOfKind(translated, serviceerrors.KindPartialFailure) {
		s.publishReconciliation(ctx, request, attempt, err)
	}
	return translated
}

// publishReconciliation bypasses the outbox, whose write is part of the
// unit of work that just failed.
func (s *SaleService) publishReconciliation(ctx context.Context, request *dto.RegisterSaleRequest, attempt saleAttempt, cause error) {
	event := &domain.SaleReconciliationEvent{
		ProductID:    request.ProductID,
		QuantitySold: request.QuantitySold,
		FailedStep:   attempt.step,
		Reason:       cause.Error(),
		DetectedAt:   time.Now().UTC(),
	}
	if attempt.product != nil {
		previous := attempt.product.Stock
		expected := previous - request.QuantitySold
		event.PreviousStock = &previous
		event.ExpectedStock = &expected
	}
	if attempt.sale != nil {
		event.SaleID = attempt.sale.ID
	}

	publishCtx := context.WithoutCancel(ctx)
	if err := s.broker.Publish(publishCtx, event); err != nil {
		logger.Error(ctx, "reconciliation: publish failed", err, map[string]any{
			"product_id":    string(request.ProductID),
			"quantity_sold": request.QuantitySold,
			"failed_step":   attempt.step,
		})
	}
}

// RegisterSale records one sale. With an idempotency key, retries of the same
// request return the original sale instead of selling twice.
func (s *SaleService) RegisterSale(ctx context.Context, idempotencyKey string, request *dto.RegisterSaleRequest) (*domain.Sale, error) {
	if idempotencyKey == "" {
		return s.processSale(ctx, request)
	}

	sale, replayed, err := s.idempotency.Execute(ctx, idempotencyKey, request, func(ctx context.Context) (*domain.Sale, error) {
		return s.processSale(ctx, request)
	}, func(err error) bool {
		// a partial failure keeps the key claimed until it expires, so a
		// blind retry cannot sell twice while reconciliation is pending
		return serviceerrors.IsOfKind(err, serviceerrors.KindPartialFailure)
	})
	if err != nil {
		return nil, err
	}
	if replayed {
		logger.Info(ctx, "idempotency: replaying sale", map[string]any{
			"idempotency_key": idempotencyKey,
			"sale_id":         string(sale.ID),
		})
	}
	return sale, nil
}
