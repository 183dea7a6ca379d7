package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/utils"
)

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health": true,
}

// PosthogMiddleware tracks successful authenticated API calls. Only the
// route template is sent, never path parameters or bodies, so no patient
// data leaves the system.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		session, ok := GetSession(c)
		if !ok {
			return
		}

		// "/api/v1/patients/:patient_id" -> "api_v1_patients_:patient_id"
		eventName := strings.ReplaceAll(strings.TrimPrefix(c.FullPath(), "/"), "/", "_")
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":        c.Request.Method,
			"route":         c.FullPath(),
			"status_code":   c.Writer.Status(),
			"role":          string(session.Role),
			"impersonating": GetImpersonation(c) != nil,
		}
		if ws, ok := GetWorkspace(c); ok {
			props["workspace_id"] = ws.WorkspaceID
		}
		posthogClient.Enqueue(session.UserID, eventName, props)
	}
}
