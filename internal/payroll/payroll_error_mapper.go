package payroll

import (
	"errors"
	"strings"

	payrollerrors "github.com/maikolguerrero/payroll-system-server/internal/payroll/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"

	overlapConstraint = "ex_payroll_employee_period"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollerrors.ErrPayrollNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgExclusionViolation && pgErr.ConstraintName == overlapConstraint {
			return payrollerrors.ErrPayrollOverlap
		}
		if pgErr.Code == pgUniqueViolation {
			return payrollerrors.ErrPayrollOverlap
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "conflicting key value") && strings.Contains(errMsg, overlapConstraint) {
		return payrollerrors.ErrPayrollOverlap
	}

	return err
}
