package aderrors

import (
	"net/http"

	"go-jobmarket/internal/shared/apperror"
)

var (
	ErrInvalidAdID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid ad ID",
		http.StatusBadRequest,
	)

	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)

	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid ad status",
		http.StatusBadRequest,
	)

	ErrEmployerAccountRequired = apperror.New(
		apperror.CodeForbidden,
		"Only employer accounts can create ads",
		http.StatusForbidden,
	)

	ErrCompanyNotOwned = apperror.New(
		apperror.CodeForbidden,
		"Company does not belong to this employer",
		http.StatusForbidden,
	)
)

func ErrAdNotFound(id string) *apperror.AppError {
	return apperror.NotFound("ad", id)
}
