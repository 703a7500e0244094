package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"go-attendance/internal/shared/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestAppError_WithMessageKeepsIdentity(t *testing.T) {
	base := apperror.New(apperror.CodeConflict, "leave overlaps", http.StatusConflict)
	derived := base.WithMessage("leave overlaps with %s", "LV-2026-000001")

	assert.True(t, errors.Is(derived, base))
	assert.Equal(t, "leave overlaps with LV-2026-000001", derived.Error())
	assert.Equal(t, base.Code, derived.Code)

	wrapped := fmt.Errorf("decide: %w", derived)
	assert.True(t, errors.Is(wrapped, base))
	assert.False(t, errors.Is(wrapped, apperror.ErrNotFound))
}

func TestToHTTP(t *testing.T) {
	t.Run("app error", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", apperror.ErrForbidden.WithDetails("owner only"))

		got := apperror.ToHTTP(err)

		assert.Equal(t, http.StatusForbidden, got.Status)
		assert.Equal(t, apperror.CodeForbidden, got.Code)
		assert.Equal(t, "owner only", got.Details)
	})

	t.Run("unknown error is masked", func(t *testing.T) {
		got := apperror.ToHTTP(errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, got.Status)
		assert.Equal(t, apperror.CodeInternalError, got.Code)
		assert.NotContains(t, got.Message, "pq")
	})
}

func TestMapValidationError(t *testing.T) {
	type payload struct {
		LeaveType string `validate:"required"`
		Priority  string `validate:"oneof=low medium"`
	}

	v := validator.New()

	err := v.Struct(payload{Priority: "low"})
	mapped := apperror.MapValidationError(err)
	assert.True(t, errors.Is(mapped, apperror.ErrMissingField))
	assert.Contains(t, mapped.Error(), "is required")

	err = v.Struct(payload{LeaveType: "annual", Priority: "urgent"})
	mapped = apperror.MapValidationError(err)
	assert.True(t, errors.Is(mapped, apperror.ErrInvalidInput))
	assert.Contains(t, mapped.Error(), "must be one of: low medium")
}
