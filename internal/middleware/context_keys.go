package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
)

// Keys used to store per-request state in the Gin context.
const (
	sessionKey       = "session"
	workspaceKey     = "workspace"
	impersonationKey = "impersonation"
)

// GetSession retrieves the authenticated session set by AuthMiddleware.
func GetSession(c *gin.Context) (domain.Session, bool) {
	val, exists := c.Get(sessionKey)
	if !exists {
		return domain.Session{}, false
	}
	session, ok := val.(domain.Session)
	return session, ok
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	session, ok := GetSession(c)
	if !ok {
		return "", false
	}
	return session.UserID, true
}

// GetWorkspace retrieves the effective workspace set by WorkspaceMiddleware.
func GetWorkspace(c *gin.Context) (*domain.Workspace, bool) {
	val, exists := c.Get(workspaceKey)
	if !exists {
		return nil, false
	}
	ws, ok := val.(*domain.Workspace)
	return ws, ok && ws != nil
}

// GetImpersonation returns the impersonation in effect for this request, if any.
func GetImpersonation(c *gin.Context) *domain.Impersonation {
	val, exists := c.Get(impersonationKey)
	if !exists {
		return nil
	}
	imp, _ := val.(*domain.Impersonation)
	return imp
}
