package apperror

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// formatFieldName turns employer_id into "Employer Id".
func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapValidationError converts the first binding failure into a ValidationError.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		e := errs[0]
		humanReadableField := formatFieldName(e.Field())

		var appErr *AppError
		switch e.Tag() {
		case "required":
			appErr = RequiredField(humanReadableField)
		case "min", "max", "gt", "gte", "lt", "lte":
			appErr = Validation(humanReadableField, "is out of range")
		case "oneof":
			appErr = Validation(humanReadableField, "must be one of "+e.Param())
		default:
			appErr = InvalidField(humanReadableField)
		}
		appErr.Details = map[string]any{
			"field":  e.Field(),
			"reason": e.Tag(),
		}
		return appErr
	}

	return New(
		CodeInvalidInput,
		"Invalid input",
		http.StatusBadRequest,
	)
}
