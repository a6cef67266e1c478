package domain

import "time"

type Product struct {
	ID            ID
	Name          string
	Description   string
	Barcode       string
	SKU           string
	Brand         string
	Supplier      string
	InvoiceNumber string
	CostPrice     Amount
	PublicPrice   Amount
	ProfitPerUnit Amount
	Stock         int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProductDetails groups the descriptive attributes that carry no business rule.
type ProductDetails struct {
	Description   string
	Barcode       string
	SKU           string
	Brand         string
	Supplier      string
	InvoiceNumber string
}

// NewProduct fixes ProfitPerUnit at creation time; later price edits do not
// rewrite it.
func NewProduct(name string, details ProductDetails, costPrice, publicPrice Amount, stock int) *Product {
	now := time.Now()
	return &Product{
		Name:          name,
		Description:   details.Description,
		Barcode:       details.Barcode,
		SKU:           details.SKU,
		Brand:         details.Brand,
		Supplier:      details.Supplier,
		InvoiceNumber: details.InvoiceNumber,
		CostPrice:     costPrice,
		PublicPrice:   publicPrice,
		ProfitPerUnit: publicPrice.Sub(costPrice),
		Stock:         stock,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (p *Product) HasStockFor(quantity int) bool {
	return p.Stock >= quantity
}

// CanTotal reports whether the sale totals for quantity units fit in an
// Amount.
func (p *Product) CanTotal(quantity int) bool {
	_, totalOK := p.PublicPrice.MultiplyChecked(quantity)
	_, profitOK := p.ProfitPerUnit.MultiplyChecked(quantity)
	return totalOK && profitOK
}

type ProductCreatedEvent struct {
	ProductID   ID        `json:"product_id"`
	Name        string    `json:"name"`
	PublicPrice Amount    `json:"public_price"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
}

func (e *ProductCreatedEvent) GetName() string {
	return "product.created"
}

func (e *ProductCreatedEvent) GetEntityName() string {
	return "product"
}

func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		ProductID:   product.ID,
		Name:        product.Name,
		PublicPrice: product.PublicPrice,
		Stock:       product.Stock,
		CreatedAt:   product.CreatedAt,
	}
}

type ProductDeletedEvent struct {
	ProductID    ID        `json:"product_id"`
	DeletedSales int       `json:"deleted_sales"`
	DeletedAt    time.Time `json:"deleted_at"`
}

func (e *ProductDeletedEvent) GetName() string {
	return "product.deleted"
}

func (e *ProductDeletedEvent) GetEntityName() string {
	return "product"
}

func NewProductDeletedEvent(productID ID, deletedSales int, deletedAt time.Time) *ProductDeletedEvent {
	return &ProductDeletedEvent{
		ProductID:    productID,
		DeletedSales: deletedSales,
		DeletedAt:    deletedAt,
	}
}
