package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/policy"
)

// RequirePermission gates a route group on the static policy table: safe
// methods need read access, everything else needs write access.
func RequirePermission(resource policy.Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := GetSession(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		allowed := policy.CanWrite(session.Role, resource)
		if isReadMethod(c.Request.Method) {
			allowed = policy.CanAccess(session.Role, resource)
		}
		if !allowed {
			GetLoggerFromCtx(c.Request.Context()).Warn("Permission denied",
				slog.String("resource", string(resource)),
				slog.String("method", c.Request.Method))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}

func isReadMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}
