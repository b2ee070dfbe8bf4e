package mouerrors

import (
	"net/http"

	"go-jobmarket/internal/shared/apperror"
)

var (
	ErrInvalidMOUID      = apperror.Validation("id", "must be a uuid")
	ErrInvalidEmployerID = apperror.Validation("employer_id", "must be a uuid")
	ErrInvalidFeeType    = apperror.Validation("fee_type", "must be one of FIXED PERCENTAGE")
	ErrFeeNotPositive    = apperror.Validation("fee_value", "must be greater than 0")
	ErrPercentageRange   = apperror.Validation("fee_value", "must be at most 100 for PERCENTAGE fees")
	ErrFeeScale          = apperror.Validation("fee_value", "must have at most 2 decimal places")
	ErrSignedAtRequired  = apperror.Validation("signed_at", "is required")
	ErrValidityWindow    = apperror.Validation("valid_until", "must be after signed_at")
	ErrDocumentRequired  = apperror.Validation("document", "is required")
	ErrDocumentType      = apperror.Validation("document", "must be a pdf, png or jpeg file")
	ErrDocumentTooLarge  = apperror.Validation("document", "must not exceed 10MB")
)

var (
	ErrActiveMOUConflict = apperror.New(
		apperror.CodeConflict,
		"Employer already has an active MOU",
		http.StatusConflict,
	)

	ErrStorageUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"Document storage is not configured",
		http.StatusServiceUnavailable,
	)
)

func ErrMOUNotFound(id string) *apperror.AppError {
	return apperror.NotFound("mou", id)
}

// MouRequired blocks an ad approval whose employer lacks a valid active MOU.
func MouRequired(employerID string) *apperror.AppError {
	return &apperror.AppError{
		Code:       apperror.CodeMouRequired,
		Message:    "Employer has no active, unexpired MOU",
		HTTPStatus: http.StatusUnprocessableEntity,
		Details: map[string]any{
			"employer_id": employerID,
		},
	}
}
