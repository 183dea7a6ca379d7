package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/apperrors"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/policy"
	portssvc "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/services"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/dto"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/middleware"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/platform/config"
)

// workspaceHandler serves the MASTER console, impersonation and the
// settings of the effective workspace.
type workspaceHandler struct {
	workspaceService portssvc.WorkspaceSvcFacade
	tokens           portssvc.TokenSvcFacade
	cookies          cookieJar
	cookieName       string
}

func newWorkspaceHandler(ws portssvc.WorkspaceSvcFacade, tokens portssvc.TokenSvcFacade, cfg *config.Config) *workspaceHandler {
	return &workspaceHandler{
		workspaceService: ws,
		tokens:           tokens,
		cookies:          cookieJar{secure: cfg.CookieSecure},
		cookieName:       cfg.ImpersonationCookieName,
	}
}

// registerMasterRoutes registers the MASTER-only console.
func registerMasterRoutes(rg *gin.RouterGroup, h *workspaceHandler) {
	master := rg.Group("/master", middleware.RequireMaster())
	{
		master.GET("/workspaces", h.listWorkspaces)
		master.GET("/workspaces/:workspace_id", h.getWorkspace)
		master.PATCH("/workspaces/:workspace_id/status", h.updateWorkspaceStatus)
		master.POST("/impersonation", h.startImpersonation)
		master.DELETE("/impersonation", h.stopImpersonation)
		master.GET("/impersonation", h.impersonationStatus)
	}
}

// registerWorkspaceSettingsRoutes registers the settings of the effective workspace.
// registerWorkspaceSettingsRoutes lets every member read the clinic profile; renaming it is an admin setting.
func registerWorkspaceSettingsRoutes(rg *gin.RouterGroup, h *workspaceHandler) {
	rg.GET("/workspace", middleware.RequirePermission(policy.Dashboard), h.getCurrentWorkspace)
	rg.PUT("/workspace", middleware.RequirePermission(policy.Settings), h.updateCurrentWorkspace)
}

// listWorkspaces godoc
// @Summary List workspaces
// @Description MASTER console listing of every clinic workspace.
// @Tags master
// @Produce json
// @Param status query string false "ACTIVE, SUSPENDED or CANCELLED"
// @Param search query string false "Name contains"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} dto.WorkspaceResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /master/workspaces [get]
func (h *workspaceHandler) listWorkspaces(c *gin.Context) {
	var params dto.ListWorkspacesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	workspaces, err := h.workspaceService.ListWorkspaces(c.Request.Context(), params.ToFilter())
	if err != nil {
		respondError(c, err, "Failed to list workspaces")
		return
	}
	c.JSON(http.StatusOK, dto.ToListWorkspaceResponse(workspaces))
}

// getWorkspace godoc
// @Summary Get a workspace
// @Tags master
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Success 200 {object} dto.WorkspaceResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /master/workspaces/{workspace_id} [get]
func (h *workspaceHandler) getWorkspace(c *gin.Context) {
	ws, err := h.workspaceService.GetWorkspace(c.Request.Context(), c.Param("workspace_id"))
	if err != nil {
		respondError(c, err, "Failed to get workspace")
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkspaceResponse(ws))
}

// updateWorkspaceStatus godoc
// @Summary Change a workspace status
// @Description Suspending or cancelling a workspace blocks its members; MASTER keeps access.
// @Tags master
// @Accept json
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param status body dto.UpdateWorkspaceStatusRequest true "New status"
// @Success 200 {object} dto.WorkspaceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /master/workspaces/{workspace_id}/status [patch]
func (h *workspaceHandler) updateWorkspaceStatus(c *gin.Context) {
	var req dto.UpdateWorkspaceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	session, _ := middleware.GetSession(c)
	ws, err := h.workspaceService.UpdateWorkspaceStatus(c.Request.Context(), session, c.Param("workspace_id"), req.Status)
	if err != nil {
		respondError(c, err, "Failed to update workspace status")
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkspaceResponse(ws))
}

// startImpersonation godoc
// @Summary Start impersonating a workspace
// @Description Sets the signed httpOnly impersonation cookie. Workspace-scoped routes then act on the target workspace.
// @Tags master
// @Accept json
// @Produce json
// @Param target body dto.StartImpersonationRequest true "Target workspace"
// @Success 200 {object} dto.ImpersonationResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Workspace is not active"
// @Security BearerAuth
// @Router /master/impersonation [post]
func (h *workspaceHandler) startImpersonation(c *gin.Context) {
	var req dto.StartImpersonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	session, _ := middleware.GetSession(c)
	ws, err := h.workspaceService.StartImpersonation(c.Request.Context(), session, req.WorkspaceID)
	if err != nil {
		respondError(c, err, "Failed to start impersonation")
		return
	}
	token, imp, err := h.tokens.GenerateImpersonationToken(c.Request.Context(), session.UserID, ws)
	if err != nil {
		respondError(c, err, "Failed to sign impersonation token")
		return
	}
	h.cookies.set(c, h.cookieName, token, imp.ExpiresAt)

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Impersonation started",
		slog.String("master_user_id", session.UserID),
		slog.String("target_workspace_id", ws.WorkspaceID))
	c.JSON(http.StatusOK, dto.ToImpersonationResponse(imp))
}

// stopImpersonation godoc
// @Summary Stop impersonating
// @Tags master
// @Success 204 "No Content"
// @Security BearerAuth
// @Router /master/impersonation [delete]
func (h *workspaceHandler) stopImpersonation(c *gin.Context) {
	h.cookies.clear(c, h.cookieName)
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Impersonation stopped")
	c.Status(http.StatusNoContent)
}

// impersonationStatus godoc
// @Summary Current impersonation
// @Tags master
// @Produce json
// @Success 200 {object} dto.ImpersonationResponse
// @Security BearerAuth
// @Router /master/impersonation [get]
func (h *workspaceHandler) impersonationStatus(c *gin.Context) {
	session, _ := middleware.GetSession(c)
	imp := middleware.LoadImpersonation(c, h.tokens, h.cookieName, session)
	c.JSON(http.StatusOK, dto.ToImpersonationResponse(imp))
}

// getCurrentWorkspace godoc
// @Summary Effective workspace
// @Tags workspace
// @Produce json
// @Success 200 {object} dto.WorkspaceResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspace [get]
func (h *workspaceHandler) getCurrentWorkspace(c *gin.Context) {
	ws, ok := middleware.GetWorkspace(c)
	if !ok {
		respondError(c, apperrors.NewNotFoundError("Workspace not found"), "No effective workspace")
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkspaceResponse(ws))
}

// updateCurrentWorkspace godoc
// @Summary Rename the effective workspace
// @Tags workspace
// @Accept json
// @Produce json
// @Param workspace body dto.UpdateWorkspaceRequest true "New name"
// @Success 200 {object} dto.WorkspaceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspace [put]
func (h *workspaceHandler) updateCurrentWorkspace(c *gin.Context) {
	var req dto.UpdateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	session, _ := middleware.GetSession(c)
	current, _ := middleware.GetWorkspace(c)
	ws, err := h.workspaceService.UpdateWorkspaceName(c.Request.Context(), session, current.WorkspaceID, req)
	if err != nil {
		respondError(c, err, "Failed to rename workspace")
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkspaceResponse(ws))
}
