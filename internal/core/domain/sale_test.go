package domain

import (
	"testing"
	"time"
)

func aceite() *Product {
	return &Product{
		ID:            "prod-1",
		Name:          "Aceite 1L",
		CostPrice:     1000,
		PublicPrice:   1500,
		ProfitPerUnit: 500,
		Stock:         100,
	}
}

func TestNewSale_WithTotals(t *testing.T) {
	before := time.Now()
	sale := NewSale(aceite(), 30, true)

	if sale.ProductID != "prod-1" {
		t.Fatalf("expected product id prod-1, got %q", sale.ProductID)
	}
	if sale.QuantitySold != 30 {
		t.Fatalf("expected quantity 30, got %d", sale.QuantitySold)
	}
	if sale.UnitPrice == nil || *sale.UnitPrice != 1500 {
		t.Fatalf("expected unit price 1500, got %v", sale.UnitPrice)
	}
	if sale.TotalAmount == nil || *sale.TotalAmount != 45000 {
		t.Fatalf("expected total amount 45000, got %v", sale.TotalAmount)
	}
	if sale.TotalProfit == nil || *sale.TotalProfit != 15000 {
		t.Fatalf("expected total profit 15000, got %v", sale.TotalProfit)
	}
	if sale.CreatedAt.Before(before.Add(-time.Second)) {
		t.Fatalf("CreatedAt %v too old", sale.CreatedAt)
	}
	if sale.ID != "" {
		t.Fatalf("expected empty ID, got %q", sale.ID)
	}
}

func TestNewSale_WithoutTotals(t *testing.T) {
	sale := NewSale(aceite(), 2, false)
	if sale.UnitPrice != nil || sale.TotalAmount != nil || sale.TotalProfit != nil {
		t.Fatalf("expected no money fields, got %+v", sale)
	}
}

func TestNewSaleView(t *testing.T) {
	product := aceite()
	sale := NewSale(product, 2, true)

	t.Run("snapshot keeps sale money even after price change", func(t *testing.T) {
		changed := *product
		changed.PublicPrice = 9900
		view := NewSaleView(sale, &changed, true)
		if view.ProductName != "Aceite 1L" {
			t.Fatalf("expected product name, got %q", view.ProductName)
		}
		if view.Price == nil || *view.Price != 1500 {
			t.Fatalf("expected snapshot price 1500, got %v", view.Price)
		}
		if view.TotalAmount == nil || *view.TotalAmount != 3000 {
			t.Fatalf("expected snapshot total 3000, got %v", view.TotalAmount)
		}
	})

	t.Run("live join reads the product price", func(t *testing.T) {
		changed := *product
		changed.PublicPrice = 9900
		view := NewSaleView(sale, &changed, false)
		if view.Price == nil || *view.Price != 9900 {
			t.Fatalf("expected live price 9900, got %v", view.Price)
		}
		if view.TotalAmount != nil || view.TotalProfit != nil {
			t.Fatalf("live view must not carry snapshot totals, got %+v", view)
		}
		if sale.TotalAmount == nil {
			t.Fatal("view must not mutate the underlying sale")
		}
	})

	t.Run("missing product", func(t *testing.T) {
		view := NewSaleView(sale, nil, false)
		if view.ProductName != "" || view.Price != nil {
			t.Fatalf("expected empty join, got %+v", view)
		}
	})
}

func TestNewSaleRegisteredEvent(t *testing.T) {
	sale := NewSale(aceite(), 30, true)
	sale.ID = "sale-1"

	event := NewSaleRegisteredEvent(sale, 70)
	if event.GetName() != "sale.registered" || event.GetEntityName() != "sale" {
		t.Fatalf("unexpected event identity %q/%q", event.GetName(), event.GetEntityName())
	}
	if event.SaleID != "sale-1" || event.RemainingStock != 70 || event.QuantitySold != 30 {
		t.Fatalf("unexpected payload %+v", event)
	}
	if event.TotalAmount == nil || *event.TotalAmount != 45000 {
		t.Fatalf("expected total 45000, got %v", event.TotalAmount)
	}
}

func TestSaleReconciliationEvent_Identity(t *testing.T) {
	event := &SaleReconciliationEvent{}
	if event.GetName() != "sale.reconciliation_required" {
		t.Fatalf("unexpected name %q", event.GetName())
	}
	if event.GetEntityName() != "sale" {
		t.Fatalf("unexpected entity %q", event.GetEntityName())
	}
}
