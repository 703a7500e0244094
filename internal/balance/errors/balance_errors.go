package balanceerrors

import (
	"net/http"

	"go-attendance/internal/shared/apperror"
)

var (
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInsufficientBalance,
		"insufficient leave balance",
		http.StatusUnprocessableEntity,
	)
	ErrUnknownLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"unknown leave type",
		http.StatusBadRequest,
	)
	ErrInvalidAllocation = apperror.New(
		apperror.CodeInvalidInput,
		"total must be a non-negative multiple of 0.5",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"you may only access your own leave balance",
		http.StatusForbidden,
	)
	ErrAdminOnly = apperror.New(
		apperror.CodeForbidden,
		"only administrators can change leave allocations",
		http.StatusForbidden,
	)
)
