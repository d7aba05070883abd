package attendance

import (
	"github.com/maikolguerrero/payroll-system-server/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer middleware.RBACEnforcer) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware(), middleware.ContextLogger(zap.L()))
	{
		attendances.GET("", middleware.RBACAuthorize(enforcer, "attendance", "read"), h.GetAll)
		attendances.POST("", middleware.RBACAuthorize(enforcer, "attendance", "create"), h.Create)
	}
}
