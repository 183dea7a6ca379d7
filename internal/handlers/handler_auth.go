package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/policy"
	portssvc "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/services"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/dto"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/middleware"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/platform/config"
)

// authHandler handles signup, login and the caller's own profile.
type authHandler struct {
	auth       portssvc.AuthSvcFacade
	tokens     portssvc.TokenSvcFacade
	workspaces portssvc.WorkspaceResolverSvc
	cookies    cookieJar
	cfg        *config.Config
}

func newAuthHandler(services *portssvc.ServiceContainer, cfg *config.Config) *authHandler {
	return &authHandler{
		auth:       services.Auth,
		tokens:     services.Token,
		workspaces: services.Workspace,
		cookies:    cookieJar{secure: cfg.CookieSecure},
		cfg:        cfg,
	}
}

// registerAuthRoutes sets up the public authentication routes. Login and
// signup share the per-IP rate limit.
func registerAuthRoutes(r *gin.Engine, h *authHandler, google *googleOAuthHandler, limit gin.HandlerFunc) {
	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/signup", limit, h.signup)
		auth.POST("/login", limit, h.login)
		auth.POST("/logout", h.logout)
		auth.POST("/google/exchange-code", limit, google.exchangeCode)
	}
}

// registerProfileRoutes sets up the authenticated, workspace-independent routes.
func registerProfileRoutes(rg *gin.RouterGroup, h *authHandler) {
	rg.GET("/me", h.me)
	rg.PUT("/me", h.updateMe)
	rg.PUT("/me/password", h.changePassword)
	rg.GET("/permissions", h.permissions)
}

// issueSession signs a session token for user and sets it as the session cookie.
func (h *authHandler) issueSession(c *gin.Context, user *domain.User) (*dto.LoginResponse, error) {
	token, expiresAt, err := h.tokens.GenerateSessionToken(c.Request.Context(), user)
	if err != nil {
		return nil, err
	}
	h.cookies.set(c, h.cfg.SessionCookieName, token, expiresAt)
	return &dto.LoginResponse{Token: token, ExpiresAt: expiresAt, User: dto.ToUserResponse(user)}, nil
}

// signup godoc
// @Summary Create an account
// @Description Creates an ADMIN user, the clinic workspace it owns and a starter catalogue, then signs the user in.
// @Tags auth
// @Accept json
// @Produce json
// @Param signup body dto.SignupRequest true "Account and clinic"
// @Success 201 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/signup [post]
func (h *authHandler) signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, workspace, err := h.auth.Signup(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Signup failed")
		return
	}
	resp, err := h.issueSession(c, user)
	if err != nil {
		respondError(c, err, "Failed to issue session after signup")
		return
	}
	resp.Workspace = dto.ToWorkspaceResponsePtr(workspace)

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Account created",
		slog.String("user_id", user.UserID),
		slog.String("workspace_id", workspace.WorkspaceID))
	c.JSON(http.StatusCreated, resp)
}

// login godoc
// @Summary User login
// @Description Authenticates a user, sets the session cookie and returns the token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "Login failed")
		return
	}
	resp, err := h.issueSession(c, user)
	if err != nil {
		respondError(c, err, "Failed to issue session")
		return
	}
	session := domain.Session{UserID: user.UserID, Role: user.Role, WorkspaceID: user.WorkspaceID}
	ws, err := h.workspaces.ResolveEffectiveWorkspace(c.Request.Context(), session, nil)
	if err != nil {
		respondError(c, err, "Failed to resolve workspace on login")
		return
	}
	resp.Workspace = dto.ToWorkspaceResponsePtr(ws)
	c.JSON(http.StatusOK, resp)
}

// logout godoc
// @Summary Log out
// @Description Clears the session and impersonation cookies.
// @Tags auth
// @Success 204 "No Content"
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	h.cookies.clear(c, h.cfg.SessionCookieName)
	h.cookies.clear(c, h.cfg.ImpersonationCookieName)
	c.Status(http.StatusNoContent)
}

// me godoc
// @Summary Current user
// @Description Returns the caller, the effective workspace and the permission matrix of the caller's role.
// @Tags profile
// @Produce json
// @Success 200 {object} dto.MeResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /me [get]
func (h *authHandler) me(c *gin.Context) {
	session, ok := middleware.GetSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	user, err := h.auth.GetUser(c.Request.Context(), session.UserID)
	if err != nil {
		respondError(c, err, "Failed to load current user")
		return
	}

	imp := middleware.LoadImpersonation(c, h.tokens, h.cfg.ImpersonationCookieName, session)
	ws, err := h.workspaces.ResolveEffectiveWorkspace(c.Request.Context(), session, imp)
	if err != nil {
		respondError(c, err, "Failed to resolve workspace")
		return
	}
	c.JSON(http.StatusOK, dto.MeResponse{
		User:          dto.ToUserResponse(user),
		Workspace:     dto.ToWorkspaceResponsePtr(ws),
		Impersonating: imp != nil && ws != nil && ws.WorkspaceID == imp.WorkspaceID,
		Permissions:   policy.Matrix(session.Role),
	})
}

// updateMe godoc
// @Summary Update profile
// @Description Updates the caller's name and/or email.
// @Tags profile
// @Accept json
// @Produce json
// @Param profile body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /me [put]
func (h *authHandler) updateMe(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c)
	user, err := h.auth.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to update profile")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// changePassword godoc
// @Summary Change password
// @Tags profile
// @Accept json
// @Param password body dto.ChangePasswordRequest true "Current and new password"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /me/password [put]
func (h *authHandler) changePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c)
	if err := h.auth.ChangePassword(c.Request.Context(), userID, req); err != nil {
		respondError(c, err, "Failed to change password")
		return
	}
	c.Status(http.StatusNoContent)
}

// permissions godoc
// @Summary Permission matrix
// @Description Returns what the caller's role may read and write, for menu gating.
// @Tags profile
// @Produce json
// @Success 200 {object} dto.PermissionsResponse
// @Security BearerAuth
// @Router /permissions [get]
func (h *authHandler) permissions(c *gin.Context) {
	session, _ := middleware.GetSession(c)
	c.JSON(http.StatusOK, dto.PermissionsResponse{Role: session.Role, Permissions: policy.Matrix(session.Role)})
}
