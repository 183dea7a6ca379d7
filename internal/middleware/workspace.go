package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	portssvc "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/services"
)

// LoadImpersonation decodes the impersonation cookie of a MASTER session.
// Non-MASTER sessions, missing or invalid cookies and cookies issued to
// another user all yield nil.
func LoadImpersonation(c *gin.Context, tokens portssvc.TokenSvcFacade, cookieName string, session domain.Session) *domain.Impersonation {
	if !session.IsMaster() {
		return nil
	}
	raw, err := c.Cookie(cookieName)
	if err != nil || raw == "" {
		return nil
	}
	imp, err := tokens.ParseImpersonationToken(c.Request.Context(), raw)
	if err != nil {
		GetLoggerFromCtx(c.Request.Context()).Info("Ignoring invalid impersonation cookie", slog.String("error", err.Error()))
		return nil
	}
	if imp.MasterUserID != session.UserID || !imp.ActiveAt(time.Now()) {
		return nil
	}
	return imp
}

// WorkspaceMiddleware resolves the effective workspace once per request and
// stores it for handlers, which pass it explicitly to services.
func WorkspaceMiddleware(tokens portssvc.TokenSvcFacade, resolver portssvc.WorkspaceResolverSvc, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())
		session, ok := GetSession(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		imp := LoadImpersonation(c, tokens, cookieName, session)
		ws, err := resolver.ResolveEffectiveWorkspace(c.Request.Context(), session, imp)
		if err != nil {
			logger.Error("Failed to resolve effective workspace", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if ws == nil {
			logger.Warn("No workspace resolved for session")
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Workspace not found"})
			return
		}
		if ws.Status != domain.WorkspaceActive && !session.IsMaster() {
			logger.Warn("Workspace is not active", slog.String("workspace_id", ws.WorkspaceID), slog.String("status", string(ws.Status)))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Workspace is not active"})
			return
		}

		impersonating := imp != nil && imp.WorkspaceID == ws.WorkspaceID
		c.Set(workspaceKey, ws)
		if impersonating {
			c.Set(impersonationKey, imp)
		}
		enrichLogger(c, slog.String("workspace_id", ws.WorkspaceID), slog.Bool("impersonating", impersonating))
		c.Next()
	}
}
