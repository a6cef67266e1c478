package handlers_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/rafaelleal24/aceitera/internal/adapters/http/handlers"
	"github.com/rafaelleal24/aceitera/internal/core/serviceerrors"
)

func render(t *testing.T, err error) (int, handlers.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	handlers.HandleError(c, err)

	var body handlers.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body %q: %v", w.Body.String(), err)
	}
	return w.Code, body
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{"invalid argument", serviceerrors.NewInvalidRequestError("bad"), http.StatusBadRequest, "invalid_argument"},
		{"insufficient inventory", serviceerrors.NewInsufficientInventoryError("short", nil), http.StatusBadRequest, "insufficient_inventory"},
		{"not found", serviceerrors.NewNotFoundError("missing"), http.StatusNotFound, "not_found"},
		{"conflict", serviceerrors.NewConflictError("referenced"), http.StatusConflict, "conflict"},
		{"unprocessable", serviceerrors.NewUnprocessableEntityError("reused key"), http.StatusUnprocessableEntity, "unprocessable_entity"},
		{"partial failure", serviceerrors.NewPartialFailureError("half applied", nil, errors.New("x")), http.StatusInternalServerError, "partial_failure"},
		{"store unavailable", serviceerrors.NewStoreUnavailableError("append_sale", errors.New("x")), http.StatusInternalServerError, "store_unavailable"},
		{"wrapped service error", fmt.Errorf("ctx: %w", serviceerrors.NewNotFoundError("missing")), http.StatusNotFound, "not_found"},
		{"plain error", errors.New("driver exploded"), http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := render(t, tt.err)
			if status != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, status)
			}
			if body.Kind != tt.kind {
				t.Fatalf("expected kind %q, got %q", tt.kind, body.Kind)
			}
		})
	}
}

func TestHandleError_RendersDetails(t *testing.T) {
	err := serviceerrors.NewInsufficientInventoryError("short", map[string]any{"requested": 5, "available": 3})

	_, body := render(t, err)
	if body.Details["requested"] != float64(5) || body.Details["available"] != float64(3) {
		t.Fatalf("expected details to be rendered, got %+v", body.Details)
	}
}

func TestHandleError_HidesInternalMessages(t *testing.T) {
	_, body := render(t, errors.New("dial tcp 10.0.0.3:27017: connection refused"))
	if body.Error != "internal server error" {
		t.Fatalf("expected generic message, got %q", body.Error)
	}
}
