package activitylogerrors

import (
	"net/http"

	"go-jobmarket/internal/shared/apperror"
)

var (
	ErrInvalidActionType = apperror.Validation("action_type", "is not a known action type")
	ErrInvalidEntityType = apperror.Validation("entity_type", "must be one of AD EMPLOYER MOU")
	ErrInvalidEntityID   = apperror.Validation("entity_id", "must be a uuid")
	ErrInvalidDate       = apperror.Validation("from/to", "must be YYYY-MM-DD or RFC3339")
	ErrInvalidDateRange  = apperror.Validation("from", "must not be after to")
	ErrInvalidFormat     = apperror.Validation("format", "must be csv or xlsx")
	ErrExportTooLarge    = apperror.Validation("filters", "match more than 10000 entries, narrow the date range")
)

var (
	ErrMissingActor = apperror.New(
		apperror.CodeInternalError,
		"activity entry requires an actor",
		http.StatusInternalServerError,
	)
)
