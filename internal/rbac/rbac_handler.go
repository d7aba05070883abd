package rbac

import (
	"net/http"
	"strings"

	"github.com/maikolguerrero/payroll-system-server/internal/shared/apperror"
	"github.com/maikolguerrero/payroll-system-server/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Enforce(c *gin.Context) {
	var req EnforceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperror.MapValidationError(err))
		return
	}

	allowed, err := h.service.Enforce(
		strings.TrimSpace(req.Role),
		strings.TrimSpace(req.Resource),
		strings.TrimSpace(req.Action),
	)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, EnforceResponse{Allowed: allowed}, nil)
}

func (h *Handler) ListPermissions(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.Permissions(), nil)
}

func (h *Handler) Reload(c *gin.Context) {
	if err := h.service.Reload(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, h.service.Permissions(), nil)
}
