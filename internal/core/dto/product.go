package dto

import "github.com/shopspring/decimal"

type CreateProductRequest struct {
	Name          string          `json:"name" binding:"required"`
	Description   string          `json:"description"`
	Barcode       string          `json:"barcode"`
	SKU           string          `json:"sku"`
	Brand         string          `json:"brand"`
	Supplier      string          `json:"supplier"`
	InvoiceNumber string          `json:"invoiceNumber"`
	CostPrice     decimal.Decimal `json:"costPrice" binding:"gt=0" swaggertype:"number" example:"10.00"`
	PublicPrice   decimal.Decimal `json:"publicPrice" binding:"gt=0" swaggertype:"number" example:"15.00"`
	StockQuantity int             `json:"stockQuantity" binding:"gte=0" example:"100"`
}
