package bankerrors

import (
	"net/http"

	"github.com/maikolguerrero/payroll-system-server/internal/shared/apperror"
)

var (
	ErrBankNotFound = apperror.New(
		apperror.CodeNotFound,
		"bank not found",
		http.StatusNotFound,
	)
	ErrInvalidBankID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid bank id",
		http.StatusBadRequest,
	)
)
