package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/middleware"
)

// workspaceScope returns the caller and the effective workspace ID resolved
// by WorkspaceMiddleware. Services get the ID explicitly.
func workspaceScope(c *gin.Context) (domain.Session, string) {
	session, _ := middleware.GetSession(c)
	ws, ok := middleware.GetWorkspace(c)
	if !ok {
		return session, ""
	}
	return session, ws.WorkspaceID
}
