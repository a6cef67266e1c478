package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/rafaelleal24/aceitera/internal/adapters/config"
	"github.com/rafaelleal24/aceitera/internal/adapters/http/controllers"
	"github.com/rafaelleal24/aceitera/internal/adapters/http/middleware"
)

const shutdownTimeout = 5 * time.Second

type Router struct {
	healthController  *controllers.HealthController
	productController *controllers.ProductController
	saleController    *controllers.SaleController
	rateLimiter       middleware.RateLimiter
	config            config.HTTPConfig
}

func NewRouter(
	healthController *controllers.HealthController,
	productController *controllers.ProductController,
	saleController *controllers.SaleController,
	rateLimiter middleware.RateLimiter,
	config config.HTTPConfig,
) *Router {
	return &Router{
		healthController:  healthController,
		productController: productController,
		saleController:    saleController,
		rateLimiter:       rateLimiter,
		config:            config,
	}
}

func (r *Router) corsConfig() cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, middleware.RequestIDHeader, middleware.IdempotencyKeyHeader)
	corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader}
	if len(r.config.CORSOrigins) == 0 || (len(r.config.CORSOrigins) == 1 && r.config.CORSOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = r.config.CORSOrigins
	}
	return corsConfig
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	rl := r.rateLimiter
	limit := r.config.RateLimit

	router.Use(
		middleware.RequestID(),
		cors.New(r.corsConfig()),
		middleware.LogRequest(),
		middleware.Timeout(r.config.RequestTimeout),
	)

	router.GET("/health", r.healthController.Health)

	router.GET("/products", r.productController.GetAll)
	router.POST("/products", middleware.RateLimit(rl, limit.Requests, limit.Window), r.productController.CreateProduct)
	router.GET("/products/:id", r.productController.GetProductByID)
	router.DELETE("/products/:id", r.productController.DeleteProduct)

	router.GET("/sales", r.saleController.ListSales)
	router.POST("/sales", middleware.RateLimit(rl, limit.Requests, limit.Window), r.saleController.RegisterSale)
	router.GET("/sales/:id", r.saleController.GetSaleByID)

	router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))))
}

// Engine builds a gin engine with every route and the request validators.
func (r *Router) Engine() (*gin.Engine, error) {
	if err := RegisterValidators(); err != nil {
		return nil, err
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	r.SetupRoutes(engine)
	return engine, nil
}

func (r *Router) ListenAndServe(ctx context.Context) error {
	engine, err := r.Engine()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", r.config.BindInterface, r.config.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
