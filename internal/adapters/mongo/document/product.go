package document

import (
	"time"

	"github.com/rafaelleal24/aceitera/internal/core/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	Description   string             `bson:"description,omitempty"`
	Barcode       string             `bson:"barcode,omitempty"`
	SKU           string             `bson:"sku,omitempty"`
	Brand         string             `bson:"brand,omitempty"`
	Supplier      string             `bson:"supplier,omitempty"`
	InvoiceNumber string             `bson:"invoice_number,omitempty"`
	CostPrice     int64              `bson:"cost_price"`
	PublicPrice   int64              `bson:"public_price"`
	ProfitPerUnit int64              `bson:"profit_per_unit"`
	Stock         int                `bson:"stock"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func (doc ProductDocument) GetID() primitive.ObjectID {
	return doc.ID
}

func (doc *ProductDocument) ToDomain() *domain.Product {
	return &domain.Product{
		ID:            domain.ID(doc.ID.Hex()),
		Name:          doc.Name,
		Description:   doc.Description,
		Barcode:       doc.Barcode,
		SKU:           doc.SKU,
		Brand:         doc.Brand,
		Supplier:      doc.Supplier,
		InvoiceNumber: doc.InvoiceNumber,
		CostPrice:     domain.Amount(doc.CostPrice),
		PublicPrice:   domain.Amount(doc.PublicPrice),
		ProfitPerUnit: domain.Amount(doc.ProfitPerUnit),
		Stock:         doc.Stock,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
}

func ToProductDocument(p *domain.Product) *ProductDocument {
	return &ProductDocument{
		Name:          p.Name,
		Description:   p.Description,
		Barcode:       p.Barcode,
		SKU:           p.SKU,
		Brand:         p.Brand,
		Supplier:      p.Supplier,
		InvoiceNumber: p.InvoiceNumber,
		CostPrice:     int64(p.CostPrice),
		PublicPrice:   int64(p.PublicPrice),
		ProfitPerUnit: int64(p.ProfitPerUnit),
		Stock:         p.Stock,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
