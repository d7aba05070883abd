package payroll

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/maikolguerrero/payroll-system-server/internal/shared/apperror"
	"github.com/maikolguerrero/payroll-system-server/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	service Service
	rdb     *redis.Client
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client) *Handler {
	return &Handler{service: service, rdb: rdb}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// releaseIdempotency drops the in-flight marker set by the idempotency
// middleware and, on success, caches the response for replays.
func (h *Handler) releaseIdempotency(c *gin.Context, resp any) {
	if h.rdb == nil {
		return
	}
	ctx := c.Request.Context()
	if lk := c.GetString("idempotency_lock_key"); lk != "" {
		_ = h.rdb.Del(ctx, lk).Err()
	}
	if resp == nil {
		return
	}
	if ck := c.GetString("idempotency_cache_key"); ck != "" {
		if payload, err := json.Marshal(resp); err == nil {
			_ = h.rdb.Set(ctx, ck, payload, 24*time.Hour).Err()
		}
	}
}

func targetFrom(c *gin.Context, scope Scope) Target {
	if scope == ScopeGeneral {
		return Target{Scope: ScopeGeneral}
	}
	return Target{Scope: scope, ID: c.Param("id")}
}

// Generate returns a handler for one generation scope.
func (h *Handler) Generate(scope Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GeneratePayrollRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.releaseIdempotency(c, nil)
			h.writeServiceError(c, apperror.MapValidationError(err))
			return
		}

		resp, err := h.service.Generate(c.Request.Context(), targetFrom(c, scope), req)
		if err != nil {
			h.releaseIdempotency(c, nil)
			h.writeServiceError(c, err)
			return
		}
		h.releaseIdempotency(c, resp)

		status := http.StatusCreated
		if resp.Partial() {
			status = http.StatusMultiStatus
		}
		response.Success(c, status, resp, nil)
	}
}

func (h *Handler) Edit(scope Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req EditPayrollRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.writeServiceError(c, apperror.MapValidationError(err))
			return
		}

		resp, err := h.service.Edit(c.Request.Context(), targetFrom(c, scope), req)
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		response.Success(c, http.StatusOK, resp, nil)
	}
}

func (h *Handler) EditByID(c *gin.Context) {
	var req EditPayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.EditByID(c.Request.Context(), c.Param("payroll_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(scope Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := h.service.Delete(c.Request.Context(), targetFrom(c, scope))
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		response.Success(c, http.StatusOK, resp, nil)
	}
}

func (h *Handler) DeleteByID(c *gin.Context) {
	if err := h.service.DeleteByID(c.Request.Context(), c.Param("payroll_id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, DeleteResult{Deleted: 1}, nil)
}

func (h *Handler) List(scope Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := h.service.List(c.Request.Context(), targetFrom(c, scope))
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		h.page(c, resp)
	}
}

func (h *Handler) ListByDate(c *gin.Context) {
	resp, err := h.service.ListByPaymentDate(c.Request.Context(), c.Param("date"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.page(c, resp)
}

func (h *Handler) ListByDateRange(c *gin.Context) {
	resp, err := h.service.ListByPaymentRange(c.Request.Context(), c.Param("start"), c.Param("end"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.page(c, resp)
}

func (h *Handler) page(c *gin.Context, rows []PayrollResponse) {
	start, end, meta := response.PageWindow(c, len(rows))
	response.Success(c, http.StatusOK, rows[start:end], &meta)
}

func (h *Handler) DownloadReport(c *gin.Context) {
	var req ReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	content, err := h.service.Report(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("nomina_%s_%s.xlsx", req.StartDate, req.EndDate)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
}
