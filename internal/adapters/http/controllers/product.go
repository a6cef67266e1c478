package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/rafaelleal24/aceitera/internal/adapters/http/handlers"
	"github.com/rafaelleal24/aceitera/internal/core/domain"
	"github.com/rafaelleal24/aceitera/internal/core/dto"
	"github.com/rafaelleal24/aceitera/internal/core/service"
	"github.com/rafaelleal24/aceitera/internal/core/serviceerrors"
)

type ProductController struct {
	productService *service.ProductService
}

type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name" example:"Aceite 1L"`
	Description   string          `json:"description,omitempty"`
	Barcode       string          `json:"barcode,omitempty"`
	SKU           string          `json:"sku,omitempty"`
	Brand         string          `json:"brand,omitempty"`
	Supplier      string          `json:"supplier,omitempty"`
	InvoiceNumber string          `json:"invoiceNumber,omitempty"`
	CostPrice     decimal.Decimal `json:"costPrice" swaggertype:"string" example:"10.00"`
	PublicPrice   decimal.Decimal `json:"publicPrice" swaggertype:"string" example:"15.00"`
	ProfitPerUnit decimal.Decimal `json:"profitPerUnit" swaggertype:"string" example:"5.00"`
	StockQuantity int             `json:"stockQuantity" example:"100"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func NewProductResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:            string(product.ID),
		Name:          product.Name,
		Description:   product.Description,
		Barcode:       product.Barcode,
		SKU:           product.SKU,
		Brand:         product.Brand,
		Supplier:      product.Supplier,
		InvoiceNumber: product.InvoiceNumber,
		CostPrice:     product.CostPrice.Decimal(),
		PublicPrice:   product.PublicPrice.Decimal(),
		ProfitPerUnit: product.ProfitPerUnit.Decimal(),
		StockQuantity: product.Stock,
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
	}
}

type DeleteProductResponse struct {
	ID           string `json:"id"`
	Deleted      bool   `json:"deleted" example:"true"`
	DeletedSales int    `json:"deletedSales" example:"0"`
}

func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// CreateProduct godoc
// @Summary     Create a product
// @Description Creates a product; profitPerUnit is fixed at creation
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       request body     dto.CreateProductRequest true "Product data"
// @Success     201     {object} ProductResponse
// @Failure     400     {object} handlers.ErrorResponse
// @Failure     429     {object} handlers.ErrorResponse
// @Failure     500     {object} handlers.ErrorResponse
// @Router      /products [post]
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var request dto.CreateProductRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}
	product, err := pc.productService.CreateProduct(c.Request.Context(), &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewProductResponse(product))
}

// GetAll godoc
// @Summary     List all products
// @Description Returns every product, oldest first
// @Tags        products
// @Produce     json
// @Success     200 {array}  ProductResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /products [get]
func (pc *ProductController) GetAll(c *gin.Context) {
	products, err := pc.productService.GetAll(c.Request.Context())
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	response := make([]ProductResponse, len(products))
	for i, product := range products {
		response[i] = NewProductResponse(product)
	}

	c.JSON(http.StatusOK, response)
}

// GetProductByID godoc
// @Summary     Get a product
// @Tags        products
// @Produce     json
// @Param       id  path     string true "Product ID"
// @Success     200 {object} ProductResponse
// @Failure     400 {object} handlers.ErrorResponse
// @Failure     404 {object} handlers.ErrorResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /products/{id} [get]
func (pc *ProductController) GetProductByID(c *gin.Context) {
	product, err := pc.productService.GetByID(c.Request.Context(), domain.ID(c.Param("id")))
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewProductResponse(product))
}

// DeleteProduct godoc
// @Summary     Delete a product
// @Description Refuses while sales reference the product, or deletes them too, depending on the configured policy
// @Tags        products
// @Produce     json
// @Param       id  path     string true "Product ID"
// @Success     200 {object} DeleteProductResponse
// @Failure     400 {object} handlers.ErrorResponse
// @Failure     404 {object} handlers.ErrorResponse
// @Failure     409 {object} handlers.ErrorResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /products/{id} [delete]
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	deletedSales, err := pc.productService.DeleteProduct(c.Request.Context(), domain.ID(id))
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, DeleteProductResponse{ID: id, Deleted: true, DeletedSales: deletedSales})
}
