package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/services"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/dto"
)

// teamHandler manages the users of the effective workspace.
type teamHandler struct {
	teamService portssvc.TeamSvcFacade
}

func registerTeamRoutes(rg *gin.RouterGroup, teamService portssvc.TeamSvcFacade) {
	h := &teamHandler{teamService: teamService}
	rg.GET("", h.listMembers)
	rg.POST("", h.createMember)
	rg.PATCH("/:user_id", h.updateMember)
}

// listMembers godoc
// @Summary List team members
// @Tags team
// @Produce json
// @Success 200 {array} dto.UserResponse
// @Security BearerAuth
// @Router /team [get]
func (h *teamHandler) listMembers(c *gin.Context) {
	_, workspaceID := workspaceScope(c)
	users, err := h.teamService.ListMembers(c.Request.Context(), workspaceID)
	if err != nil {
		respondError(c, err, "Failed to list team members")
		return
	}
	c.JSON(http.StatusOK, dto.ToListUserResponse(users))
}

// createMember godoc
// @Summary Add a team member
// @Description Creates a user in the workspace. Without a password a temporary one is generated and returned once.
// @Tags team
// @Accept json
// @Produce json
// @Param member body dto.CreateTeamMemberRequest true "Member"
// @Success 201 {object} dto.TeamMemberCreatedResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /team [post]
func (h *teamHandler) createMember(c *gin.Context) {
	var req dto.CreateTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	session, workspaceID := workspaceScope(c)
	user, password, err := h.teamService.CreateMember(c.Request.Context(), session, workspaceID, req)
	if err != nil {
		respondError(c, err, "Failed to create team member")
		return
	}
	c.JSON(http.StatusCreated, dto.TeamMemberCreatedResponse{User: dto.ToUserResponse(user), TemporaryPassword: password})
}

// updateMember godoc
// @Summary Change a member's role or active flag
// @Tags team
// @Accept json
// @Produce json
// @Param user_id path string true "User ID"
// @Param member body dto.UpdateTeamMemberRequest true "Changes"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /team/{user_id} [patch]
func (h *teamHandler) updateMember(c *gin.Context) {
	var req dto.UpdateTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	session, workspaceID := workspaceScope(c)
	user, err := h.teamService.UpdateMember(c.Request.Context(), session, workspaceID, c.Param("user_id"), req)
	if err != nil {
		respondError(c, err, "Failed to update team member")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
