package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/rafaelleal24/aceitera/internal/adapters/http/handlers"
	"github.com/rafaelleal24/aceitera/internal/adapters/http/middleware"
	"github.com/rafaelleal24/aceitera/internal/core/domain"
	"github.com/rafaelleal24/aceitera/internal/core/dto"
	"github.com/rafaelleal24/aceitera/internal/core/service"
	"github.com/rafaelleal24/aceitera/internal/core/serviceerrors"
)

const maxIdempotencyKeyLength = 128

type SaleController struct {
	saleService *service.SaleService
}

func NewSaleController(saleService *service.SaleService) *SaleController {
	return &SaleController{saleService: saleService}
}

type SaleResponse struct {
	ID           string           `json:"id"`
	ProductID    string           `json:"productId"`
	QuantitySold int              `json:"quantitySold" example:"30"`
	UnitPrice    *decimal.Decimal `json:"unitPrice,omitempty" swaggertype:"string" example:"15.00"`
	TotalAmount  *decimal.Decimal `json:"totalAmount,omitempty" swaggertype:"string" example:"450.00"`
	TotalProfit  *decimal.Decimal `json:"totalProfit,omitempty" swaggertype:"string" example:"150.00"`
	Timestamp    time.Time        `json:"timestamp"`
}

// SaleListItem is a sale joined with its product. Price is the snapshot unit
// price when totals are recorded, otherwise the product's current price.
type SaleListItem struct {
	SaleResponse
	ProductName string           `json:"productName" example:"Aceite 1L"`
	Price       *decimal.Decimal `json:"price,omitempty" swaggertype:"string" example:"15.00"`
}

func toDecimal(amount *domain.Amount) *decimal.Decimal {
	if amount == nil {
		return nil
	}
	value := amount.Decimal()
	return &value
}

func NewSaleResponse(sale *domain.Sale) SaleResponse {
	return SaleResponse{
		ID:           string(sale.ID),
		ProductID:    string(sale.ProductID),
		QuantitySold: sale.QuantitySold,
		UnitPrice:    toDecimal(sale.UnitPrice),
		TotalAmount:  toDecimal(sale.TotalAmount),
		TotalProfit:  toDecimal(sale.TotalProfit),
		Timestamp:    sale.CreatedAt,
	}
}

func NewSaleListItem(view *domain.SaleView) SaleListItem {
	return SaleListItem{
		SaleResponse: NewSaleResponse(&view.Sale),
		ProductName:  view.ProductName,
		Price:        toDecimal(view.Price),
	}
}

// RegisterSale godoc
// @Summary     Register a sale
// @Description Decrements stock and records the sale as one unit of work. Retries carrying the same Idempotency-Key return the original sale.
// @Tags        sales
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key header   string                  false "Client generated request id"
// @Param       request         body     dto.RegisterSaleRequest true  "Sale data"
// @Success     201             {object} SaleResponse
// @Failure     400             {object} handlers.ErrorResponse
// @Failure     404             {object} handlers.ErrorResponse
// @Failure     409             {object} handlers.ErrorResponse
// @Failure     422             {object} handlers.ErrorResponse
// @Failure     429             {object} handlers.ErrorResponse
// @Failure     500             {object} handlers.ErrorResponse
// @Router      /sales [post]
func (sc *SaleController) RegisterSale(c *gin.Context) {
	idempotencyKey := c.GetHeader(middleware.IdempotencyKeyHeader)
	if len(idempotencyKey) > maxIdempotencyKeyLength {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError("Idempotency-Key is too long"))
		return
	}

	var request dto.RegisterSaleRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}

	sale, err := sc.saleService.RegisterSale(c.Request.Context(), idempotencyKey, &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewSaleResponse(sale))
}

// ListSales godoc
// @Summary     List sales
// @Description Returns every sale with its product name, oldest first
// @Tags        sales
// @Produce     json
// @Success     200 {array}  SaleListItem
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /sales [get]
func (sc *SaleController) ListSales(c *gin.Context) {
	views, err := sc.saleService.ListSales(c.Request.Context())
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	response := make([]SaleListItem, len(views))
	for i, view := range views {
		response[i] = NewSaleListItem(view)
	}
	c.JSON(http.StatusOK, response)
}

// GetSaleByID godoc
// @Summary     Get a sale
// @Tags        sales
// @Produce     json
// @Param       id  path     string true "Sale ID"
// @Success     200 {object} SaleResponse
// @Failure     400 {object} handlers.ErrorResponse
// @Failure     404 {object} handlers.ErrorResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /sales/{id} [get]
func (sc *SaleController) GetSaleByID(c *gin.Context) {
	sale, err := sc.saleService.GetSaleByID(c.Request.Context(), domain.ID(c.Param("id")))
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewSaleResponse(sale))
}
