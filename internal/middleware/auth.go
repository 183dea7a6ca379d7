package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/apperrors"
	portssvc "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/services"
)

// AuthMiddleware authenticates the caller from the session cookie or a Bearer
// token. Only the user ID is taken from the token; the role is re-read from
// storage on every request.
func AuthMiddleware(tokens portssvc.TokenSvcFacade, sessions portssvc.AuthSvcFacade, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		tokenString := sessionToken(c, cookieName)
		if tokenString == "" {
			logger.Warn("No session token presented")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		userID, err := tokens.ParseSessionToken(c.Request.Context(), tokenString)
		if err != nil {
			logger.Warn("Invalid session token", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}

		session, err := sessions.LoadSession(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrUnauthorized) {
				logger.Warn("Session user no longer valid", slog.String("user_id", userID))
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
				return
			}
			logger.Error("Failed to load session", slog.String("user_id", userID), slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.Set(sessionKey, *session)
		enrichLogger(c, slog.String("user_id", session.UserID), slog.String("role", string(session.Role)))
		c.Next()
	}
}

// sessionToken prefers the session cookie and falls back to the Authorization header.
func sessionToken(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// RequireMaster rejects every session that is not a platform owner.
func RequireMaster() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := GetSession(c)
		if !ok || !session.IsMaster() {
			GetLoggerFromCtx(c.Request.Context()).Warn("MASTER route denied")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}
