package rbac

import (
	"github.com/maikolguerrero/payroll-system-server/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer middleware.RBACEnforcer) {
	group := r.Group("/rbac")
	group.Use(middleware.AuthMiddleware(), middleware.ContextLogger(zap.L()))
	{
		group.POST("/enforce", handler.Enforce)
		group.GET("/permissions", middleware.RBACAuthorize(enforcer, "role", "read"), handler.ListPermissions)
		group.POST("/reload", middleware.RBACAuthorize(enforcer, "role", "manage"), handler.Reload)
	}
}
