package payroll

import (
	"errors"
	"testing"

	payrollerrors "github.com/maikolguerrero/payroll-system-server/internal/payroll/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMapRepositoryError(t *testing.T) {
	assert.Nil(t, mapRepositoryError(nil))
	assert.Equal(t, payrollerrors.ErrPayrollNotFound, mapRepositoryError(gorm.ErrRecordNotFound))

	exclusion := &pgconn.PgError{Code: "23P01", ConstraintName: "ex_payroll_employee_period"}
	assert.Equal(t, payrollerrors.ErrPayrollOverlap, mapRepositoryError(exclusion))

	other := errors.New("connection reset")
	assert.Equal(t, other, mapRepositoryError(other))
}
