package middleware

import (
	"net/http"

	"github.com/maikolguerrero/payroll-system-server/internal/shared/apperror"
	"github.com/maikolguerrero/payroll-system-server/internal/shared/contextutil"
	"github.com/maikolguerrero/payroll-system-server/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RBACEnforcer is satisfied by *casbin.Enforcer and *casbin.SyncedEnforcer.
type RBACEnforcer interface {
	Enforce(rvals ...interface{}) (bool, error)
}

// RBACAuthorize checks (role, resource, action) for the authenticated caller.
// A nil enforcer lets every request through.
func RBACAuthorize(enforcer RBACEnforcer, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if enforcer == nil {
			c.Next()
			return
		}

		role := c.GetString(ContextRole)
		if role == "" {
			abortWith(c, apperror.ErrForbidden)
			return
		}

		allowed, err := enforcer.Enforce(role, resource, action)
		if err != nil {
			contextutil.GetLogger(c.Request.Context(), zap.L()).Error("rbac enforce failed",
				zap.String("role", role),
				zap.String("resource", resource),
				zap.String("action", action),
				zap.Error(err),
			)
			abortWith(c, apperror.ErrInternal)
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, apperror.ErrForbidden.Code, apperror.ErrForbidden.Message, map[string]string{
				"required": resource + ":" + action,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
