package apperror

import (
	"fmt"
	"net/http"
)

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrForbidden = New(
		CodeForbidden,
		"You do not have permission to access this resource",
		http.StatusForbidden,
	)

	ErrInternal = New(
		CodeInternalError,
		"Internal server error",
		http.StatusInternalServerError,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Authentication is required",
		http.StatusUnauthorized,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
		http.StatusBadRequest,
	)
)

func RequiredField(field string) *AppError {
	return Validation(field, "is required")
}

func InvalidField(field string) *AppError {
	return Validation(field, "is invalid")
}

// Validation is the ValidationError(field, reason) of the workflow taxonomy.
func Validation(field, reason string) *AppError {
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    fmt.Sprintf("%s %s", field, reason),
		HTTPStatus: http.StatusBadRequest,
		Details: map[string]any{
			"field":  field,
			"reason": reason,
		},
	}
}

// NotFound is the NotFoundError(entityType, id) of the workflow taxonomy.
func NotFound(entity, id string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", entity),
		HTTPStatus: http.StatusNotFound,
		Details: map[string]any{
			"entity": entity,
			"id":     id,
		},
	}
}

// InvalidTransition is returned when a status change is not allowed from the current state.
func InvalidTransition(entity, current, attempted string) *AppError {
	return &AppError{
		Code:       CodeInvalidState,
		Message:    fmt.Sprintf("cannot %s %s in status %s", attempted, entity, current),
		HTTPStatus: http.StatusConflict,
		Details: map[string]any{
			"entity":        entity,
			"current_state": current,
			"attempted":     attempted,
		},
	}
}
