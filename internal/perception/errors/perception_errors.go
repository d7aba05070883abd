package perceptionerrors

import (
	"net/http"

	"github.com/maikolguerrero/payroll-system-server/internal/shared/apperror"
)

var (
	ErrPerceptionNotFound = apperror.New(
		apperror.CodeNotFound,
		"perception not found",
		http.StatusNotFound,
	)
	ErrInvalidPerceptionID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid perception id",
		http.StatusBadRequest,
	)
)
