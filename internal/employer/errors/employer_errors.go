package employererrors

import (
	"net/http"

	"go-jobmarket/internal/shared/apperror"
)

var (
	ErrInvalidEmployerID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employer ID",
		http.StatusBadRequest,
	)

	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)

	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employer status",
		http.StatusBadRequest,
	)

	ErrInvalidRegistrationType = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid registration type",
		http.StatusBadRequest,
	)

	ErrEmailTaken = apperror.New(
		apperror.CodeConflict,
		"An employer with this email is already registered",
		http.StatusConflict,
	)

	ErrAlreadyRegistered = apperror.New(
		apperror.CodeConflict,
		"This account is already linked to an employer",
		http.StatusConflict,
	)
)

func ErrEmployerNotFound(id string) *apperror.AppError {
	return apperror.NotFound("employer", id)
}

func ErrCompanyNotFound(id string) *apperror.AppError {
	return apperror.NotFound("company", id)
}
