package deductionerrors

import (
	"net/http"

	"github.com/maikolguerrero/payroll-system-server/internal/shared/apperror"
)

var (
	ErrDeductionNotFound = apperror.New(
		apperror.CodeNotFound,
		"deduction not found",
		http.StatusNotFound,
	)
	ErrInvalidDeductionID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid deduction id",
		http.StatusBadRequest,
	)
)
