package apperror

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// leave_type -> Leave Type
func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")

	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapValidationError turns a binding error into an AppError describing the
// first offending field. Field names come from the json/form tags registered
// in Init.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		e := errs[0]
		humanReadableField := formatFieldName(e.Field())

		var appErr *AppError
		switch e.Tag() {
		case "required":
			appErr = RequiredField(humanReadableField)
		case "oneof":
			appErr = ErrInvalidInput.WithMessage("%s must be one of: %s", humanReadableField, e.Param())
		default:
			appErr = InvalidField(humanReadableField)
		}
		return appErr.WithDetails(map[string]string{
			"field": e.Field(),
			"rule":  e.Tag(),
		})
	}

	return ErrInvalidInput.WithMessage("Invalid input").WithDetails(err.Error())
}
