package companyerrors

import (
	"net/http"

	"github.com/maikolguerrero/payroll-system-server/internal/shared/apperror"
)

var ErrCompanyNotFound = apperror.New(
	apperror.CodeNotFound,
	"company profile not found",
	http.StatusNotFound,
)
