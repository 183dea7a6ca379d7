package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/apperrors"
	portssvc "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/services"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/dto"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/middleware"
)

// googleOAuthHandler signs existing users in with a Google authorization code.
// Accounts are never created from Google; signup stays the only way to get a workspace.
type googleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade
	auth               *authHandler
}

func newGoogleOAuthHandler(googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade, auth *authHandler) *googleOAuthHandler {
	return &googleOAuthHandler{googleOAuthService: googleOAuthService, auth: auth}
}

// exchangeCode godoc
// @Summary Sign in with Google
// @Description Exchanges a Google authorization code, validates the ID token and signs in the user owning the verified email.
// @Tags auth
// @Accept json
// @Produce json
// @Param code body dto.GoogleExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse "Invalid authorization code"
// @Failure 401 {object} ErrorResponse "Unknown or unverified account"
// @Failure 502 {object} ErrorResponse "Google unavailable"
// @Router /auth/google/exchange-code [post]
func (h *googleOAuthHandler) exchangeCode(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.GoogleExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	oauth2Token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		logger.Error("Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "invalid_grant") || strings.Contains(msg, "bad request") {
			respondError(c, apperrors.NewBadRequestError("Invalid or expired authorization code"), "Google rejected the code")
			return
		}
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Failed to communicate with Google"})
		return
	}

	idTokenString, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		respondError(c, apperrors.NewInternalServerError("ID token missing from Google response"), "ID token missing")
		return
	}
	payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, idTokenString)
	if err != nil {
		respondError(c, apperrors.NewAppError(http.StatusUnauthorized, "Invalid Google ID token", err), "Google ID token validation failed")
		return
	}

	email, _ := payload.Claims["email"].(string)
	verified, _ := payload.Claims["email_verified"].(bool)
	if email == "" || !verified {
		respondError(c, apperrors.NewUnauthorizedError("Google account email is not verified"), "Unverified Google email")
		return
	}

	user, err := h.auth.auth.LoginWithGoogleEmail(ctx, email)
	if err != nil {
		respondError(c, err, "Google sign-in refused")
		return
	}
	resp, err := h.auth.issueSession(c, user)
	if err != nil {
		respondError(c, err, "Failed to issue session")
		return
	}
	logger.Info("User signed in with Google", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, resp)
}
