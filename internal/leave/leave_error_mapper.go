package leave

import (
	"errors"

	employeeerrors "go-attendance/internal/employee/errors"
	leaveerrors "go-attendance/internal/leave/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgExclusionViolation = "23P01"
	overlapConstraint    = "leave_requests_no_overlap"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation {
		if pgErr.ConstraintName == "" || pgErr.ConstraintName == overlapConstraint {
			return leaveerrors.ErrLeaveOverlap
		}
	}

	return err
}

func mapEmployeeError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}
	return err
}
