package payroll

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
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	generateLimit := middleware.RateLimitByUser(0.5, 2)
	generate := func(h gin.HandlerFunc) []gin.HandlerFunc {
		chain := []gin.HandlerFunc{}
		if redisClient != nil {
			chain = append(chain, middleware.Idempotency(redisClient))
		}
		return append(chain, generateLimit, middleware.RBACAuthorize(enforcer, "payroll", "create"), h)
	}
	edit := middleware.RBACAuthorize(enforcer, "payroll", "update")
	remove := middleware.RBACAuthorize(enforcer, "payroll", "delete")
	read := middleware.RBACAuthorize(enforcer, "payroll", "read")

	payrolls := r.Group("/payrolls")
	payrolls.Use(middleware.AuthMiddleware(), middleware.ContextLogger(zap.L()))
	{
		payrolls.POST("/generate/general", generate(handler.Generate(ScopeGeneral))...)
		payrolls.POST("/generate/employee/:id", generate(handler.Generate(ScopeEmployee))...)
		payrolls.POST("/generate/department/:id", generate(handler.Generate(ScopeDepartment))...)
		payrolls.POST("/generate/position/:id", generate(handler.Generate(ScopePosition))...)

		payrolls.PUT("/edit/general", edit, handler.Edit(ScopeGeneral))
		payrolls.PUT("/edit/employee/:id", edit, handler.Edit(ScopeEmployee))
		payrolls.PUT("/edit/department/:id", edit, handler.Edit(ScopeDepartment))
		payrolls.PUT("/edit/position/:id", edit, handler.Edit(ScopePosition))
		payrolls.PUT("/edit/:payroll_id", edit, handler.EditByID)

		payrolls.DELETE("/delete/general", remove, handler.Delete(ScopeGeneral))
		payrolls.DELETE("/delete/employee/:id", remove, handler.Delete(ScopeEmployee))
		payrolls.DELETE("/delete/department/:id", remove, handler.Delete(ScopeDepartment))
		payrolls.DELETE("/delete/position/:id", remove, handler.Delete(ScopePosition))
		payrolls.DELETE("/delete/:payroll_id", remove, handler.DeleteByID)

		payrolls.GET("", read, handler.List(ScopeGeneral))
		payrolls.GET("/report", read, handler.DownloadReport)
		payrolls.GET("/department/:id", read, handler.List(ScopeDepartment))
		payrolls.GET("/position/:id", read, handler.List(ScopePosition))
		payrolls.GET("/employee/:id", read, handler.List(ScopeEmployee))
		payrolls.GET("/date/:date", read, handler.ListByDate)
		payrolls.GET("/date-range/:start/:end", read, handler.ListByDateRange)
	}
}
