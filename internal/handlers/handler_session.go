package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/services"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/dto"
)

// sessionHandler handles scheduled procedure sessions.
type sessionHandler struct {
	sessionService portssvc.SessionSvcFacade
}

func registerSessionRoutes(rg *gin.RouterGroup, sessionService portssvc.SessionSvcFacade) {
	h := &sessionHandler{sessionService: sessionService}
	rg.POST("", h.scheduleSession)
	rg.GET("", h.listSessions)
	rg.GET("/stats", h.attendanceStats)
	rg.GET("/:session_id", h.getSession)
	rg.PATCH("/:session_id/status", h.updateSessionStatus)
}

// scheduleSession godoc
// @Summary Schedule a session
// @Tags sessions
// @Accept json
// @Produce json
// @Param session body dto.CreateSessionRequest true "Session"
// @Success 201 {object} dto.SessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /sessions [post]
func (h *sessionHandler) scheduleSession(c *gin.Context) {
	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	session, workspaceID := workspaceScope(c)
	ps, err := h.sessionService.ScheduleSession(c.Request.Context(), session, workspaceID, req)
	if err != nil {
		respondError(c, err, "Failed to schedule session")
		return
	}
	c.JSON(http.StatusCreated, dto.ToSessionResponse(ps))
}

// listSessions godoc
// @Summary List sessions
// @Tags sessions
// @Produce json
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Param status query string false "Session status"
// @Param patientID query string false "Patient ID"
// @Param collaboratorID query string false "Collaborator ID"
// @Success 200 {array} dto.SessionResponse
// @Security BearerAuth
// @Router /sessions [get]
func (h *sessionHandler) listSessions(c *gin.Context) {
	var params dto.ListSessionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	_, workspaceID := workspaceScope(c)
	list, err := h.sessionService.ListSessions(c.Request.Context(), workspaceID, params.ToFilter())
	if err != nil {
		respondError(c, err, "Failed to list sessions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListSessionResponse(list))
}

// getSession godoc
// @Summary Get a session
// @Tags sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /sessions/{session_id} [get]
func (h *sessionHandler) getSession(c *gin.Context) {
	_, workspaceID := workspaceScope(c)
	ps, err := h.sessionService.GetSession(c.Request.Context(), workspaceID, c.Param("session_id"))
	if err != nil {
		respondError(c, err, "Failed to get session")
		return
	}
	c.JSON(http.StatusOK, dto.ToSessionResponse(ps))
}

// updateSessionStatus godoc
// @Summary Change a session status
// @Tags sessions
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param status body dto.UpdateSessionStatusRequest true "New status"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /sessions/{session_id}/status [patch]
func (h *sessionHandler) updateSessionStatus(c *gin.Context) {
	var req dto.UpdateSessionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	session, workspaceID := workspaceScope(c)
	ps, err := h.sessionService.UpdateSessionStatus(c.Request.Context(), session, workspaceID, c.Param("session_id"), req.Status)
	if err != nil {
		respondError(c, err, "Failed to update session status")
		return
	}
	c.JSON(http.StatusOK, dto.ToSessionResponse(ps))
}

// attendanceStats godoc
// @Summary Attendance statistics
// @Tags sessions
// @Produce json
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Success 200 {object} domain.AttendanceStats
// @Security BearerAuth
// @Router /sessions/stats [get]
func (h *sessionHandler) attendanceStats(c *gin.Context) {
	var params dto.PeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	_, workspaceID := workspaceScope(c)
	stats, err := h.sessionService.AttendanceStats(c.Request.Context(), workspaceID, params.ToPeriod())
	if err != nil {
		respondError(c, err, "Failed to compute attendance stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}
