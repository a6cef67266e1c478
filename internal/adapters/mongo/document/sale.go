package document

import (
	"time"

	"github.com/rafaelleal24/aceitera/internal/core/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SaleDocument money fields are absent when totals are not recorded.
type SaleDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	ProductID    primitive.ObjectID `bson:"product_id"`
	QuantitySold int                `bson:"quantity_sold"`
	UnitPrice    *int64             `bson:"unit_price,omitempty"`
	TotalAmount  *int64             `bson:"total_amount,omitempty"`
	TotalProfit  *int64             `bson:"total_profit,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (doc SaleDocument) GetID() primitive.ObjectID {
	return doc.ID
}

func (doc *SaleDocument) ToDomain() *domain.Sale {
	return &domain.Sale{
		ID:           domain.ID(doc.ID.Hex()),
		ProductID:    domain.ID(doc.ProductID.Hex()),
		QuantitySold: doc.QuantitySold,
		UnitPrice:    toAmount(doc.UnitPrice),
		TotalAmount:  toAmount(doc.TotalAmount),
		TotalProfit:  toAmount(doc.TotalProfit),
		CreatedAt:    doc.CreatedAt,
	}
}

func ToSaleDocument(sale *domain.Sale) (*SaleDocument, error) {
	productID, err := primitive.ObjectIDFromHex(string(sale.ProductID))
	if err != nil {
		return nil, err
	}
	return &SaleDocument{
		ProductID:    productID,
		QuantitySold: sale.QuantitySold,
		UnitPrice:    fromAmount(sale.UnitPrice),
		TotalAmount:  fromAmount(sale.TotalAmount),
		TotalProfit:  fromAmount(sale.TotalProfit),
		CreatedAt:    sale.CreatedAt,
	}, nil
}

func toAmount(cents *int64) *domain.Amount {
	if cents == nil {
		return nil
	}
	return domain.Amount(*cents).Ptr()
}

func fromAmount(amount *domain.Amount) *int64 {
	if amount == nil {
		return nil
	}
	cents := int64(*amount)
	return &cents
}
