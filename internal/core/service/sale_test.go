package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/rafaelleal24/aceitera/internal/core/domain"
	"github.com/rafaelleal24/aceitera/internal/core/dto"
	"github.com/rafaelleal24/aceitera/internal/core/port/mock"
	"github.com/rafaelleal24/aceitera/internal/core/serviceerrors"
	"github.com/rafaelleal24/aceitera/internal/core/utils"
	"go.uber.org/mock/gomock"
)

type saleMocks struct {
	saleRepo    *mock.MockSalePort
	productRepo *mock.MockProductPort
	outbox      *mock.MockOutboxPort
	broker      *mock.MockBrokerPort
	saleCache   *mock.MockCachePort[domain.Sale]
	idemCache   *mock.MockCachePort[IdempotencyEntry[domain.Sale]]
	txManager   *mock.MockTransactionManager
}

func setupSaleService(t *testing.T, options SaleOptions) (*SaleService, *saleMocks) {
	ctrl := gomock.NewController(t)
	m := &saleMocks{
		saleRepo:    mock.NewMockSalePort(ctrl),
		productRepo: mock.NewMockProductPort(ctrl),
		outbox:      mock.NewMockOutboxPort(ctrl),
		broker:      mock.NewMockBrokerPort(ctrl),
		saleCache:   mock.NewMockCachePort[domain.Sale](ctrl),
		idemCache:   mock.NewMockCachePort[IdempotencyEntry[domain.Sale]](ctrl),
		txManager:   mock.NewMockTransactionManager(ctrl),
	}

	productSvc := NewProductService(m.productRepo, m.saleRepo, m.outbox, m.saleCache, m.txManager, DeletePolicyRestrict)
	idemSvc := NewIdempotencyService[domain.Sale](m.idemCache, 15*time.Minute, 50*time.Millisecond, 500*time.Millisecond)
	svc := NewSaleService(m.saleRepo, productSvc, m.outbox, m.broker, m.saleCache, idemSvc, m.txManager, options)
	return svc, m
}

func aceite(stock int) *domain.Product {
	return &domain.Product{
		ID:            "prod-aceite",
		Name:          "Aceite",
		CostPrice:     domain.NewAmountFromValue(1000),
		PublicPrice:   domain.NewAmountFromValue(1500),
		ProfitPerUnit: domain.NewAmountFromValue(500),
		Stock:         stock,
	}
}

// expectSuccessfulSale wires the happy path of one sale against the mocks.
func expectSuccessfulSale(m *saleMocks, product *domain.Product, quantity int) {
	passthroughTx(m.txManager)
	m.productRepo.EXPECT().GetByID(gomock.Any(), product.ID).Return(product, nil)

	updated := *product
	updated.Stock -= quantity
	m.productRepo.EXPECT().DeductStock(gomock.Any(), product.ID, quantity).Return(&updated, nil)
	m.saleRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, sale *domain.Sale) error {
			sale.ID = "sale-1"
			return nil
		})
	m.outbox.EXPECT().Insert(gomock.Any(), gomock.AssignableToTypeOf(&domain.SaleRegisteredEvent{})).Return(nil)
	m.saleCache.EXPECT().Set(gomock.Any(), "sale:sale-1", gomock.Any(), saleCacheTTL).Return(nil)
}

func TestSaleService_RegisterSale(t *testing.T) {
	recordTotals := SaleOptions{RecordTotals: true}

	t.Run("records snapshot totals", func(t *testing.T) {
		svc, m := setupSaleService(t, recordTotals)
		expectSuccessfulSale(m, aceite(100), 30)

		sale, err := svc.RegisterSale(context.Background(), "", &dto.RegisterSaleRequest{ProductID: "prod-aceite", QuantitySold: 30})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if sale.ID != "sale-1" || sale.QuantitySold != 30 {
			t.Fatalf("unexpected sale %+v", sale)
		}
		if *sale.TotalAmount != domain.NewAmountFromValue(45000) {
			t.Fatalf("expected total 45000.00, got %d", *sale.TotalAmount)
		}
		if *sale.TotalProfit != domain.NewAmountFromValue(15000) {
			t.Fatalf("expected profit 15000.00, got %d", *sale.TotalProfit)
		}
	})

	t.Run("without totals leaves money empty", func(t *testing.T) {
		svc, m := setupSaleService(t, SaleOptions{})
		expectSuccessfulSale(m, aceite(10), 2)

		sale, err := svc.RegisterSale(context.Background(), "", &dto.RegisterSaleRequest{ProductID: "prod-aceite", QuantitySold: 2})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if sale.TotalAmount != nil || sale.UnitPrice != nil {
			t.Fatalf("expected no money snapshot, got %+v", sale)
		}
	})

	t.Run("selling the whole stock succeeds", func(t *testing.T) {
		svc, m := setupSaleService(t, recordTotals)
		expectSuccessfulSale(m, aceite(5), 5)

		if _, err := svc.RegisterSale(context.Background(), "", &dto.RegisterSaleRequest{ProductID: "prod-aceite", QuantitySold: 5}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	validation := []struct {
		name     string
		request  *dto.RegisterSaleRequest
		contains string
	}{
		{"zero quantity", &dto.RegisterSaleRequest{ProductID: "prod-aceite", QuantitySold: 0}, "quantitySold"},
		{"negative quantity", &dto.RegisterSaleRequest{ProductID: "prod-aceite", QuantitySold: -3}, "quantitySold"},
		{"quantity above maximum", &dto.RegisterSaleRequest{ProductID: "prod-aceite", QuantitySold: SALE_MAX_QUANTITY + 1}, "exceed"},
		{"quantity checked before id", &dto.RegisterSaleRequest{ProductID: "", QuantitySold: 0}, "quantitySold"},
		{"empty product id", &dto.RegisterSaleRequest{ProductID: "", QuantitySold: 1}, "product id"},
	}
	for _, tt := range validation {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := setupSaleService(t, recordTotals)

			_, err := svc.RegisterSale(context.Background(), "", tt.request)
			if !serviceerrors.IsOfKind(err, serviceerrors.KindInvalidRequest) {
				t.Fatalf("expected KindInvalidRequest, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Fatalf("expected message mentioning %q, got %q", tt.contains, err.Error())
			}
		})
	}

	t.Run("totals that overflow are rejected before stock moves", func(t *testing.T) {
		svc, m := setupSaleService(t, recordTotals)
		passthroughTx(m.txManager)
		expensive := aceite(1_000_000)
		expensive.PublicPrice = domain.NewAmountFromValue(90_000_000_000_000)
		expensive.ProfitPerUnit = expensive.PublicPrice.Sub(expensive.CostPrice)
		// no DeductStock, Create or outbox expectations: nothing may be written
		m.productRepo.EXPECT().GetByID(gomock.Any(), expensive.ID).Return(expensive, nil)

		_, err := svc.RegisterSale(context.Background(), "", &dto.RegisterSaleRequest{ProductID: expensive.ID, QuantitySold: 1_000_000})
		if !serviceerrors.IsOfKind(err, serviceerrors.KindInvalidRequest) {
			t.Fatalf("expected KindInvalidRequest, got %v", err)
		}
		if !strings.Contains(err.Error(), "exceeds the supported amount") {
			t.Fatalf("unexpected message %q", err.Error())
		}
	})

	t.Run("largest representable total is recorded exactly", func(t *testing.T) {
		svc, m := setupSaleService(t, recordTotals)
		product := aceite(1_000_000)
		product.PublicPrice = domain.MaxPrice
		product.ProfitPerUnit = product.PublicPrice.Sub(product.CostPrice)
		expectSuccessfulSale(m, product, 1_000_000)

		sale, err := svc.RegisterSale(context.Background(), "", &dto.RegisterSaleRequest{ProductID: product.ID, QuantitySold: 1_000_000})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if *sale.TotalAmount != domain.MaxPrice*1_000_000 || *sale.TotalAmount <= 0 {
			t.Fatalf("expected total %d, got %d", domain.MaxPrice*1_000_000, *sale.TotalAmount)
		}
	})

	t.Run("configured maximum is capped to the store range", func(t *testing.T) {
		svc, _ := setupSaleService(t, SaleOptions{RecordTotals: true, MaxQuantity: math.MaxInt})

		_, err := svc.RegisterSale(context.Background(), "", &dto.RegisterSaleRequest{ProductID: "prod-aceite", QuantitySold: domain.MaxStockQuantity + 1})
		if !serviceerrors.IsOfKind(err, serviceerrors.KindInvalidRequest) {
			t.Fatalf("expected KindInvalidRequest, got %v", err)
		}
	})

	t.Run("idempotency cache outage is store unavailable", func(t *testing.T) {
		svc, m := setupSaleService(t, recordTotals)
		m.idemCache.EXPECT().SetNX(gomock.Any(), "key-down", gomock.Any(), gomock.Any()).Return(false, errors.New("dial tcp: connection refused"))

		_, err := svc.RegisterSale(context.Background(), "key-down", &dto.RegisterSaleRequest{ProductID: "prod-aceite", QuantitySold: 1})
		if !serviceerrors.IsOfKind(err, serviceerrors.KindStoreUnavailable) {
			t.Fatalf("expected KindStoreUnavailable, got %v", err)
		}
	})

	t.Run("insufficient inventory reports requested and available", func(t *testing.T) {
		svc, m := setupSaleService(t, recordTotals)
		passthroughTx(m.txManager)
		m.productRepo.EXPECT().GetByID(gomock.Any(), domain.ID("prod-aceite")).Return(aceite(5), nil)

		_, err := svc.RegisterSale(context.Background(), "", &dto.RegisterSaleRequest{ProductID: "prod-aceite", QuantitySold: 6})
		if !serviceerrors.IsOfKind(err, serviceerrors.KindInsufficientInventory) {
			t.Fatalf("expected KindInsufficientInventory, got %v", err)
		}
		var svcErr *serviceerrors.ServiceError
		errors.As(err, &svcErr)
		if svcErr.Details["requested"] != 6 || svcErr.Details["available"] != 5 {
			t.Fatalf("unexpected details %v", svcErr.Details)
		}
	})

	t.Run("lost race on deduct keeps insufficient inventory", func(t *testing.T) {
		svc, m := setupSaleService(t, recordTotals)
		passthroughTx(m.txManager)
		m.productRepo.EXPECT().GetByID(gomock.Any(), domain.ID("prod-aceite")).Return(aceite(5), nil)
		m.productRepo.EXPECT().
			DeductStock(gomock.Any(), domain.ID("prod-aceite"), 5).
			Return(nil, insufficientInventory("prod-aceite", 5, 0))

		_, err := svc.RegisterSale(context.Background(), "", &dto.RegisterSaleRequest{ProductID: "prod-aceite", QuantitySold: 5})
		if !serviceerrors.IsOfKind(err, serviceerrors.KindInsufficientInventory) {
			t.Fatalf("expected KindInsufficientInventory, got %v", err)
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		svc, m := setupSaleService(t, recordTotals)
		passthroughTx(m.txManager)
		m.productRepo.EXPECT().
			GetByID(gomock.Any(), domain.ID("ghost")).
			Return(nil, serviceerrors.NewNotFoundError("missing"))

		_, err := svc.RegisterSale(context.Background(), "", &dto.RegisterSaleRequest{ProductID: "ghost", QuantitySold: 1})
		if !serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
			t.Fatalf("expected KindNotFound, got %v", err)
		}
	})

	t.Run("rolled back store error is unavailable with step", func(t *testing.T) {
		svc, m := setupSaleService(t, recordTotals)
		passthroughTx(m.txManager)
		m.productRepo.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(aceite(10), nil)
		updated := aceite(9)
		m.productRepo.EXPECT().DeductStock(gomock.Any(), gomock.Any(), 1).Return(updated, nil)
		m.saleRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

		_, err := svc.RegisterSale(context.Background(), "", &dto.RegisterSaleRequest{ProductID: "prod-aceite", QuantitySold: 1})
		if !serviceerrors.IsOfKind(err, serviceerrors.KindStoreUnavailable) {
			t.Fatalf("expected KindStoreUnavailable, got %v", err)
		}
		var svcErr *serviceerrors.ServiceError
		errors.As(err, &svcErr)
		if svcErr.Details["step"] != stepAppendSale {
			t.Fatalf("expected step %s, got %v", stepAppendSale, svcErr.Details)
		}
	})

	t.Run("unknown commit outcome is a partial failure and requests reconciliation", func(t *testing.T) {
		svc, m := setupSaleService(t, recordTotals)
		product := aceite(10)

		m.txManager.EXPECT().
			WithTransaction(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
				if err := fn(ctx); err != nil {
					return err
				}
				return fmt.Errorf("%w: connection lost", serviceerrors.ErrCommitOutcomeUnknown)
			})
		m.productRepo.EXPECT().GetByID(gomock.Any(), product.ID).Return(product, nil)
		m.productRepo.EXPECT().DeductStock(gomock.Any(), product.ID, 4).Return(aceite(6), nil)
		m.saleRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, sale *domain.Sale) error {
				sale.ID = "sale-9"
				return nil
			})
		m.outbox.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		m.broker.EXPECT().
			Publish(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, event domain.Event) error {
				reconciliation, ok := event.(*domain.SaleReconciliationEvent)
				if !ok {
					t.Fatalf("expected SaleReconciliationEvent, got %T", event)
				}
				if reconciliation.SaleID != "sale-9" || *reconciliation.ExpectedStock != 6 || *reconciliation.PreviousStock != 10 {
					t.Fatalf("unexpected reconciliation event %+v", reconciliation)
				}
				if reconciliation.FailedStep != stepCommit {
					t.Fatalf("expected step %s, got %s", stepCommit, reconciliation.FailedStep)
				}
				return nil
			})

		_, err := svc.RegisterSale(context.Background(), "", &dto.RegisterSaleRequest{ProductID: product.ID, QuantitySold: 4})
		if !serviceerrors.IsOfKind(err, serviceerrors.KindPartialFailure) {
			t.Fatalf("expected KindPartialFailure, got %v", err)
		}
		var svcErr *serviceerrors.ServiceError
		errors.As(err, &svcErr)
		if svcErr.Details["quantity_sold"] != 4 || svcErr.Details["expected_stock"] != 6 {
			t.Fatalf("expected attempted values in details, got %v", svcErr.Details)
		}
	})

	t.Run("incomplete rollback is a partial failure", func(t *testing.T) {
		svc, m := setupSaleService(t, recordTotals)
		m.txManager.EXPECT().
			WithTransaction(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
				err := fn(ctx)
				return errors.Join(err, serviceerrors.ErrRollbackIncomplete)
			})
		m.productRepo.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(aceite(10), nil)
		m.productRepo.EXPECT().DeductStock(gomock.Any(), gomock.Any(), 1).Return(aceite(9), nil)
		m.saleRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("write failed"))
		m.broker.EXPECT().Publish(gomock.Any(), gomock.AssignableToTypeOf(&domain.SaleReconciliationEvent{})).Return(errors.New("broker down"))

		_, err := svc.RegisterSale(context.Background(), "", &dto.RegisterSaleRequest{ProductID: "prod-aceite", QuantitySold: 1})
		if !serviceerrors.IsOfKind(err, serviceerrors.KindPartialFailure) {
			t.Fatalf("expected KindPartialFailure, got %v", err)
		}
	})

	t.Run("idempotent replay returns the first sale", func(t *testing.T) {
		svc, m := setupSaleService(t, recordTotals)
		first := &domain.Sale{ID: "sale-1", ProductID: "prod-aceite", QuantitySold: 2}

		m.idemCache.EXPECT().SetNX(gomock.Any(), "key-1", gomock.Any(), 15*time.Minute).Return(false, nil)
		m.idemCache.EXPECT().
			Get(gomock.Any(), "key-1").
			DoAndReturn(func(_ context.Context, _ string) (*IdempotencyEntry[domain.Sale], error) {
				req := &dto.RegisterSaleRequest{ProductID: "prod-aceite", QuantitySold: 2}
				return &IdempotencyEntry[domain.Sale]{
					Status:      IdempotencyCompleted,
					PayloadHash: utils.MustFingerprint(req),
					Result:      first,
				}, nil
			})

		sale, err := svc.RegisterSale(context.Background(), "key-1", &dto.RegisterSaleRequest{ProductID: "prod-aceite", QuantitySold: 2})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if sale.ID != "sale-1" {
			t.Fatalf("expected replayed sale-1, got %s", sale.ID)
		}
	})

	t.Run("idempotent first request completes the key", func(t *testing.T) {
		svc, m := setupSaleService(t, recordTotals)
		m.idemCache.EXPECT().SetNX(gomock.Any(), "key-2", gomock.Any(), gomock.Any()).Return(true, nil)
		expectSuccessfulSale(m, aceite(10), 1)
		m.idemCache.EXPECT().
			Set(gomock.Any(), "key-2", gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, entry *IdempotencyEntry[domain.Sale], _ time.Duration) error {
				if entry.Status != IdempotencyCompleted || entry.Result.ID != "sale-1" {
					t.Fatalf("unexpected entry %+v", entry)
				}
				return nil
			})

		if _, err := svc.RegisterSale(context.Background(), "key-2", &dto.RegisterSaleRequest{ProductID: "prod-aceite", QuantitySold: 1}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("idempotent rejected sale releases the key", func(t *testing.T) {
		svc, m := setupSaleService(t, recordTotals)
		m.idemCache.EXPECT().SetNX(gomock.Any(), "key-3", gomock.Any(), gomock.Any()).Return(true, nil)
		passthroughTx(m.txManager)
		m.productRepo.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(aceite(0), nil)
		m.idemCache.EXPECT().Del(gomock.Any(), "key-3").Return(nil)

		_, err := svc.RegisterSale(context.Background(), "key-3", &dto.RegisterSaleRequest{ProductID: "prod-aceite", QuantitySold: 1})
		if !serviceerrors.IsOfKind(err, serviceerrors.KindInsufficientInventory) {
			t.Fatalf("expected KindInsufficientInventory, got %v", err)
		}
	})
}

func TestSaleService_GetSaleByID(t *testing.T) {
	t.Run("cache hit", func(t *testing.T) {
		svc, m := setupSaleService(t, SaleOptions{RecordTotals: true})
		m.saleCache.EXPECT().Get(gomock.Any(), "sale:s1").Return(&domain.Sale{ID: "s1"}, nil)

		sale, err := svc.GetSaleByID(context.Background(), "s1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if sale.ID != "s1" {
			t.Fatalf("expected s1, got %s", sale.ID)
		}
	})

	t.Run("cache miss fills the cache", func(t *testing.T) {
		svc, m := setupSaleService(t, SaleOptions{RecordTotals: true})
		stored := &domain.Sale{ID: "s1"}
		m.saleCache.EXPECT().Get(gomock.Any(), "sale:s1").Return(nil, nil)
		m.saleRepo.EXPECT().GetByID(gomock.Any(), domain.ID("s1")).Return(stored, nil)
		m.saleCache.EXPECT().Set(gomock.Any(), "sale:s1", stored, saleCacheTTL).Return(nil)

		if _, err := svc.GetSaleByID(context.Background(), "s1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("cache errors are not fatal", func(t *testing.T) {
		svc, m := setupSaleService(t, SaleOptions{RecordTotals: true})
		m.saleCache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, errors.New("redis error"))
		m.saleRepo.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(&domain.Sale{ID: "s1"}, nil)
		m.saleCache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis error"))

		if _, err := svc.GetSaleByID(context.Background(), "s1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		svc, m := setupSaleService(t, SaleOptions{RecordTotals: true})
		m.saleCache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, nil)
		m.saleRepo.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(nil, serviceerrors.NewNotFoundError("missing"))

		_, err := svc.GetSaleByID(context.Background(), "s1")
		if !serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
			t.Fatalf("expected KindNotFound, got %v", err)
		}
	})
}

func TestSaleService_ListSales(t *testing.T) {
	snapshotPrice := domain.NewAmountFromValue(1500)
	sales := []*domain.Sale{
		{ID: "s1", ProductID: "prod-aceite", QuantitySold: 30, UnitPrice: snapshotPrice.Ptr(), TotalAmount: domain.NewAmountFromValue(45000).Ptr()},
		{ID: "s2", ProductID: "prod-aceite", QuantitySold: 1, UnitPrice: snapshotPrice.Ptr(), TotalAmount: snapshotPrice.Ptr()},
		{ID: "s3", ProductID: "gone", QuantitySold: 2},
	}
	repriced := aceite(70)
	repriced.PublicPrice = domain.NewAmountFromValue(1800)

	t.Run("snapshot money is authoritative", func(t *testing.T) {
		svc, m := setupSaleService(t, SaleOptions{RecordTotals: true})
		m.saleRepo.EXPECT().GetAll(gomock.Any()).Return(sales, nil)
		m.productRepo.EXPECT().
			GetByIDs(gomock.Any(), []domain.ID{"prod-aceite", "gone"}).
			Return([]*domain.Product{repriced}, nil)

		views, err := svc.ListSales(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(views) != 3 {
			t.Fatalf("expected 3 views, got %d", len(views))
		}
		if views[0].ProductName != "Aceite" || *views[0].Price != snapshotPrice {
			t.Fatalf("expected snapshot price on first view, got %+v", views[0])
		}
		if *views[0].TotalAmount != domain.NewAmountFromValue(45000) {
			t.Fatalf("expected snapshot total, got %d", *views[0].TotalAmount)
		}
		if views[2].ProductName != "" {
			t.Fatalf("expected empty name for missing product, got %q", views[2].ProductName)
		}
	})

	t.Run("live price when totals are not recorded", func(t *testing.T) {
		svc, m := setupSaleService(t, SaleOptions{})
		m.saleRepo.EXPECT().GetAll(gomock.Any()).Return(sales, nil)
		m.productRepo.EXPECT().GetByIDs(gomock.Any(), gomock.Any()).Return([]*domain.Product{repriced}, nil)

		views, err := svc.ListSales(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if *views[1].Price != domain.NewAmountFromValue(1800) {
			t.Fatalf("expected live price, got %d", *views[1].Price)
		}
		if views[1].TotalAmount != nil {
			t.Fatal("expected snapshot totals to be hidden")
		}
		if views[2].Price != nil {
			t.Fatal("expected no price for missing product")
		}
	})

	t.Run("empty ledger", func(t *testing.T) {
		svc, m := setupSaleService(t, SaleOptions{RecordTotals: true})
		m.saleRepo.EXPECT().GetAll(gomock.Any()).Return(nil, nil)

		views, err := svc.ListSales(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(views) != 0 {
			t.Fatalf("expected no views, got %d", len(views))
		}
	})
}
