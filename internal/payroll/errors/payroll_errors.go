package payrollerrors

import (
	"net/http"

	"github.com/maikolguerrero/payroll-system-server/internal/shared/apperror"
)

var (
	ErrInvalidPayrollID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payroll id",
		http.StatusBadRequest,
	)
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
	ErrInvalidScope = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payroll scope",
		http.StatusBadRequest,
	)
	ErrNothingToUpdate = apperror.New(
		apperror.CodeInvalidInput,
		"no payroll field supplied for update",
		http.StatusBadRequest,
	)
	ErrInvalidState = apperror.New(
		apperror.CodeInvalidInput,
		"state must be one of Generada, Pendiente, Cancelada",
		http.StatusBadRequest,
	)
	ErrPayrollNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll not found",
		http.StatusNotFound,
	)
	ErrNoEmployeesInScope = apperror.New(
		apperror.CodeNotFound,
		"no employees found for the requested scope",
		http.StatusNotFound,
	)
	ErrNoPayrollsInScope = apperror.New(
		apperror.CodeNotFound,
		"no payrolls found for the requested scope",
		http.StatusNotFound,
	)
	ErrPayrollOverlap = apperror.New(
		apperror.CodeConflict,
		"payroll already exists in overlapping period",
		http.StatusConflict,
	)
	ErrEditConflicts = apperror.New(
		apperror.CodeConflict,
		"payroll edit rejected, no payroll was modified",
		http.StatusConflict,
	)
	ErrDuplicatePayrollInScope = apperror.New(
		apperror.CodeConflict,
		"employee has more than one payroll in scope",
		http.StatusConflict,
	)
	ErrPayrollTerminal = apperror.New(
		apperror.CodeInvalidState,
		"payroll is Pagada or Cancelada and can no longer be modified",
		http.StatusBadRequest,
	)
	ErrComputationInvalid = apperror.New(
		apperror.CodeComputationInvalid,
		"salary cannot be computed: no scheduled working hours in period",
		http.StatusUnprocessableEntity,
	)
)
