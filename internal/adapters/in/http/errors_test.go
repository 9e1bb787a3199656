package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"required", errs.NewValueIsRequiredError("items"), http.StatusBadRequest},
		{"invalid", errs.NewValueIsInvalidError("restaurantId"), http.StatusBadRequest},
		{"out of range", errs.NewValueIsOutOfRangeError("quantity", 0, 1, 100), http.StatusBadRequest},
		{"unauthenticated", fmt.Errorf("%w: missing header", ErrUnauthenticated), http.StatusUnauthorized},
		{"forbidden", errs.NewForbiddenError("delete order"), http.StatusForbidden},
		{"not found", errs.NewObjectNotFoundError("order", "42"), http.StatusNotFound},
		{"insufficient stock", errs.NewInsufficientStockError("p", "Fries", 2, 1), http.StatusConflict},
		{"conflict", errs.NewConflictError("version"), http.StatusConflict},
		{"invalid state", errs.NewInvalidStateError("order", "Completed"), http.StatusForbidden},
		{"unavailable", errs.NewUnavailableError("reserve stock", context.DeadlineExceeded), http.StatusServiceUnavailable},
		{"wrapped", fmt.Errorf("handle: %w", errs.NewForbiddenError("x")), http.StatusForbidden},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}
