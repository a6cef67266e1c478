package controllers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

const defaultCheckTimeout = 2 * time.Second

type HealthResponse struct {
	Status   string            `json:"status" example:"ok"`
	Services map[string]string `json:"services" example:"store:ok,cache:ok,broker:ok"`
}

type HealthChecker struct {
	Name  string
	Check func(ctx context.Context) error
}

type HealthController struct {
	checkers []HealthChecker
	timeout  time.Duration
}

func NewHealthController(checkers []HealthChecker) *HealthController {
	return &HealthController{checkers: checkers, timeout: defaultCheckTimeout}
}

// Health godoc
// @Summary     Health check
// @Description Checks every configured collaborator: store, cache and broker
// @Tags        health
// @Produce     json
// @Success     200 {object} HealthResponse
// @Failure     503 {object} HealthResponse
// @Router      /health [get]
func (h *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		healthy  = true
		services = make(map[string]string, len(h.checkers))
	)
	for _, checker := range h.checkers {
		wg.Add(1)
		go func(checker HealthChecker) {
			defer wg.Done()
			result := "ok"
			if err := checker.Check(ctx); err != nil {
				result = err.Error()
			}

			mu.Lock()
			defer mu.Unlock()
			services[checker.Name] = result
			if result != "ok" {
				healthy = false
			}
		}(checker)
	}
	wg.Wait()

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Services: services})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Services: services})
}
