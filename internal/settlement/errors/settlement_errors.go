package settlementerrors

import (
	"net/http"

	"github.com/maikolguerrero/payroll-system-server/internal/shared/apperror"
)

var (
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrNoPayrollsToSettle = apperror.New(
		apperror.CodeNotFound,
		"no Generada payrolls found in the requested range",
		http.StatusNotFound,
	)
	ErrNoAccountsAtBank = apperror.New(
		apperror.CodeNotFound,
		"no employee in range holds an account at this bank",
		http.StatusNotFound,
	)
	ErrSettlementNotFound = apperror.New(
		apperror.CodeNotFound,
		"settlement file not found",
		http.StatusNotFound,
	)
	ErrSettlementFileExists = apperror.New(
		apperror.CodeConflict,
		"a settlement file for this bank was already exported today",
		http.StatusConflict,
	)
	ErrPayrollsChanged = apperror.New(
		apperror.CodeConflict,
		"payrolls changed while exporting, retry the settlement",
		http.StatusConflict,
	)
)
