package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafaelleal24/aceitera/internal/core/logger"
	"github.com/rafaelleal24/aceitera/internal/core/serviceerrors"
)

const (
	KindRateLimited = "rate_limited"
	KindTimeout     = "timeout"
	kindInternal    = "internal"
)

type ErrorResponse struct {
	Error   string         `json:"error" example:"insufficient inventory for product 42: requested 5, available 3"`
	Kind    string         `json:"kind" example:"insufficient_inventory"`
	Details map[string]any `json:"details,omitempty"`
}

// HandleError renders err with the status of its kind. Errors that are not
// ServiceErrors are logged and hidden behind a generic message.
func HandleError(c *gin.Context, err error) {
	var svcErr *serviceerrors.ServiceError
	if errors.As(err, &svcErr) {
		status := mapKindToHTTP(svcErr.Kind)
		if status >= http.StatusInternalServerError {
			logger.Error(c.Request.Context(), "request failed", err, svcErr.Details)
		}
		c.JSON(status, ErrorResponse{
			Error:   svcErr.Message,
			Kind:    svcErr.Kind.String(),
			Details: svcErr.Details,
		})
		return
	}

	if errors.Is(err, context.DeadlineExceeded) {
		c.JSON(http.StatusGatewayTimeout, ErrorResponse{Error: "request timed out", Kind: KindTimeout})
		return
	}

	logger.Error(c.Request.Context(), "unexpected error", err, nil)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Kind: kindInternal})
}

func mapKindToHTTP(kind serviceerrors.ErrorKind) int {
	switch kind {
	case serviceerrors.KindNotFound:
		return http.StatusNotFound
	case serviceerrors.KindConflict:
		return http.StatusConflict
	case serviceerrors.KindUnprocessableEntity:
		return http.StatusUnprocessableEntity
	case serviceerrors.KindInvalidRequest, serviceerrors.KindInsufficientInventory:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
