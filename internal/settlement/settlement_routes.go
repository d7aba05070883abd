package settlement

import (
	"github.com/maikolguerrero/payroll-system-server/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	enforcer middleware.RBACEnforcer,
	rdb ...*redis.Client,
) {
	exportLimit := middleware.RateLimitByUser(0.2, 1)

	settlements := r.Group("/settlements")
	settlements.Use(middleware.AuthMiddleware(), middleware.ContextLogger(zap.L()))
	{
		settlements.GET("", middleware.RBACAuthorize(enforcer, "settlement", "read"), handler.GetAll)
		settlements.GET("/:file_name/download", middleware.RBACAuthorize(enforcer, "settlement", "read"), handler.Download)
		if len(rdb) > 0 && rdb[0] != nil {
			settlements.POST(
				"",
				middleware.Idempotency(rdb[0]),
				exportLimit,
				middleware.RBACAuthorize(enforcer, "settlement", "create"),
				handler.Export,
			)
		} else {
			settlements.POST("", exportLimit, middleware.RBACAuthorize(enforcer, "settlement", "create"), handler.Export)
		}
	}
}
