package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"go-jobmarket/internal/shared/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps code and details", func(t *testing.T) {
		err := apperror.InvalidTransition("ad", "DRAFT", "approve")

		got := apperror.ToHTTP(fmt.Errorf("wrapped: %w", err))

		assert.Equal(t, http.StatusConflict, got.Status)
		assert.Equal(t, apperror.CodeInvalidState, got.Code)
		assert.Equal(t, "cannot approve ad in status DRAFT", got.Message)
		details, ok := got.Details.(map[string]any)
		assert.True(t, ok)
		assert.Equal(t, "DRAFT", details["current_state"])
		assert.Equal(t, "approve", details["attempted"])
	})

	t.Run("unknown error hides message", func(t *testing.T) {
		got := apperror.ToHTTP(errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, got.Status)
		assert.Equal(t, apperror.CodeInternalError, got.Code)
		assert.Equal(t, "Internal server error", got.Message)
		assert.Nil(t, got.Details)
	})
}

func TestAppError_Is(t *testing.T) {
	sentinel := apperror.New(apperror.CodeNotFound, "ad not found", http.StatusNotFound)
	withDetails := sentinel.WithDetails(map[string]any{"id": "x"})

	assert.True(t, errors.Is(withDetails, sentinel))
	assert.False(t, errors.Is(withDetails, apperror.ErrForbidden))
	assert.True(t, apperror.HasCode(fmt.Errorf("ctx: %w", withDetails), apperror.CodeNotFound))
}

func TestMapValidationError(t *testing.T) {
	type payload struct {
		Notes string `validate:"required"`
		Kind  string `validate:"oneof=A B"`
	}
	v := validator.New()

	t.Run("required", func(t *testing.T) {
		err := apperror.MapValidationError(v.Struct(payload{Kind: "A"}))

		appErr, ok := apperror.As(err)
		assert.True(t, ok)
		assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
		assert.Equal(t, "Notes is required", appErr.Message)
	})

	t.Run("oneof", func(t *testing.T) {
		err := apperror.MapValidationError(v.Struct(payload{Notes: "x", Kind: "C"}))

		appErr, ok := apperror.As(err)
		assert.True(t, ok)
		assert.Equal(t, "Kind must be one of A B", appErr.Message)
	})

	t.Run("non validator error", func(t *testing.T) {
		err := apperror.MapValidationError(errors.New("EOF"))

		appErr, ok := apperror.As(err)
		assert.True(t, ok)
		assert.Equal(t, "Invalid input", appErr.Message)
	})
}
