package dto

import "github.com/rafaelleal24/aceitera/internal/core/domain"

// RegisterSaleRequest leaves quantity checks to the sale service so the
// validation order stays in one place.
type RegisterSaleRequest struct {
	ProductID    domain.ID `json:"productId" binding:"required"`
	QuantitySold int       `json:"quantitySold" example:"30"`
}
