package reporterrors

import (
	"net/http"

	"go-attendance/internal/shared/apperror"
)

var (
	ErrAdminOnly = apperror.New(
		apperror.CodeForbidden,
		"only administrators can read leave reports",
		http.StatusForbidden,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date cannot be after end_date",
		http.StatusBadRequest,
	)
)
