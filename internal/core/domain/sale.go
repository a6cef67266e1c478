package domain

import "time"

// Sale is an append-only ledger record. Money fields are nil when the
// deployment does not record totals.
type Sale struct {
	ID           ID
	ProductID    ID
	QuantitySold int
	UnitPrice    *Amount
	TotalAmount  *Amount
	TotalProfit  *Amount
	CreatedAt    time.Time
}

func NewSale(product *Product, quantity int, recordTotals bool) *Sale {
	sale := &Sale{
		ProductID:    product.ID,
		QuantitySold: quantity,
		CreatedAt:    time.Now().UTC(),
	}
	if recordTotals {
		sale.UnitPrice = product.PublicPrice.Ptr()
		sale.TotalAmount = product.PublicPrice.Multiply(quantity).Ptr()
		sale.TotalProfit = product.ProfitPerUnit.Multiply(quantity).Ptr()
	}
	return sale
}

// SaleView is a Sale joined with its product for listings.
type SaleView struct {
	Sale
	ProductName string
	Price       *Amount
}

// NewSaleView reads money from the sale snapshot when snapshots are the
// authoritative source, otherwise from the live product. product may be nil.
func NewSaleView(sale *Sale, product *Product, fromSnapshot bool) *SaleView {
	view := &SaleView{Sale: *sale}
	if product != nil {
		view.ProductName = product.Name
	}

	if fromSnapshot {
		view.Price = sale.UnitPrice
		return view
	}

	view.UnitPrice = nil
	view.TotalAmount = nil
	view.TotalProfit = nil
	if product != nil {
		view.Price = product.PublicPrice.Ptr()
	}
	return view
}

type SaleRegisteredEvent struct {
	SaleID         ID        `json:"sale_id"`
	ProductID      ID        `json:"product_id"`
	QuantitySold   int       `json:"quantity_sold"`
	RemainingStock int       `json:"remaining_stock"`
	TotalAmount    *Amount   `json:"total_amount,omitempty"`
	TotalProfit    *Amount   `json:"total_profit,omitempty"`
	SoldAt         time.Time `json:"sold_at"`
}

func (e *SaleRegisteredEvent) GetName() string {
	return "sale.registered"
}

func (e *SaleRegisteredEvent) GetEntityName() string {
	return "sale"
}

func NewSaleRegisteredEvent(sale *Sale, remainingStock int) *SaleRegisteredEvent {
	return &SaleRegisteredEvent{
		SaleID:         sale.ID,
		ProductID:      sale.ProductID,
		QuantitySold:   sale.QuantitySold,
		RemainingStock: remainingStock,
		TotalAmount:    sale.TotalAmount,
		TotalProfit:    sale.TotalProfit,
		SoldAt:         sale.CreatedAt,
	}
}

// SaleReconciliationEvent describes a sale whose unit of work ended in an
// unknown or half-applied state.
type SaleReconciliationEvent struct {
	ProductID     ID        `json:"product_id"`
	QuantitySold  int       `json:"quantity_sold"`
	SaleID        ID        `json:"sale_id,omitempty"`
	PreviousStock *int      `json:"previous_stock,omitempty"`
	ExpectedStock *int      `json:"expected_stock,omitempty"`
	FailedStep    string    `json:"failed_step"`
	Reason        string    `json:"reason"`
	DetectedAt    time.Time `json:"detected_at"`
}

func (e *SaleReconciliationEvent) GetName() string {
	return "sale.reconciliation_required"
}

func (e *SaleReconciliationEvent) GetEntityName() string {
	return "sale"
}
