package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/services"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/dto"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/utils/recurrence"
)

// costHandler handles costs and the replication of recurring ones.
type costHandler struct {
	costService portssvc.CostSvcFacade
	now         func() time.Time
}

func registerCostRoutes(rg *gin.RouterGroup, costService portssvc.CostSvcFacade) {
	h := &costHandler{costService: costService, now: time.Now}
	rg.POST("", h.createCost)
	rg.GET("", h.listCosts)
	rg.GET("/recurrence/pending", h.pendingRecurrences)
	rg.POST("/recurrence/process", h.processRecurrences)
	rg.GET("/:cost_id", h.getCost)
	rg.PUT("/:cost_id", h.updateCost)
	rg.DELETE("/:cost_id", h.deleteCost)
}

// createCost godoc
// @Summary Create a cost
// @Description FIXED costs carry fixedValue, PERCENTAGE costs carry percentage. Only FIXED costs may recur.
// @Tags costs
// @Accept json
// @Produce json
// @Param cost body dto.CreateCostRequest true "Cost"
// @Success 201 {object} dto.CostResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /costs [post]
func (h *costHandler) createCost(c *gin.Context) {
	var req dto.CreateCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	session, workspaceID := workspaceScope(c)
	cost, err := h.costService.CreateCost(c.Request.Context(), session, workspaceID, req)
	if err != nil {
		respondError(c, err, "Failed to create cost")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCostResponse(cost))
}

// listCosts godoc
// @Summary List costs
// @Tags costs
// @Produce json
// @Param from query string false "Payment date from (YYYY-MM-DD)"
// @Param to query string false "Payment date to (YYYY-MM-DD)"
// @Param category query string false "Cost category"
// @Param recurringOnly query bool false "Only recurring templates"
// @Param includeInactive query bool false "Include inactive costs"
// @Success 200 {array} dto.CostResponse
// @Security BearerAuth
// @Router /costs [get]
func (h *costHandler) listCosts(c *gin.Context) {
	var params dto.ListCostsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	_, workspaceID := workspaceScope(c)
	costs, err := h.costService.ListCosts(c.Request.Context(), workspaceID, params.ToFilter())
	if err != nil {
		respondError(c, err, "Failed to list costs")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCostResponse(costs))
}

// getCost godoc
// @Summary Get a cost
// @Tags costs
// @Produce json
// @Param cost_id path string true "Cost ID"
// @Success 200 {object} dto.CostResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /costs/{cost_id} [get]
func (h *costHandler) getCost(c *gin.Context) {
	_, workspaceID := workspaceScope(c)
	cost, err := h.costService.GetCost(c.Request.Context(), workspaceID, c.Param("cost_id"))
	if err != nil {
		respondError(c, err, "Failed to get cost")
		return
	}
	c.JSON(http.StatusOK, dto.ToCostResponse(cost))
}

// updateCost godoc
// @Summary Update a cost
// @Tags costs
// @Accept json
// @Produce json
// @Param cost_id path string true "Cost ID"
// @Param cost body dto.UpdateCostRequest true "Fields to change"
// @Success 200 {object} dto.CostResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /costs/{cost_id} [put]
func (h *costHandler) updateCost(c *gin.Context) {
	var req dto.UpdateCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	session, workspaceID := workspaceScope(c)
	cost, err := h.costService.UpdateCost(c.Request.Context(), session, workspaceID, c.Param("cost_id"), req)
	if err != nil {
		respondError(c, err, "Failed to update cost")
		return
	}
	c.JSON(http.StatusOK, dto.ToCostResponse(cost))
}

// deleteCost godoc
// @Summary Deactivate a cost
// @Tags costs
// @Param cost_id path string true "Cost ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /costs/{cost_id} [delete]
func (h *costHandler) deleteCost(c *gin.Context) {
	session, workspaceID := workspaceScope(c)
	if err := h.costService.DeleteCost(c.Request.Context(), session, workspaceID, c.Param("cost_id")); err != nil {
		respondError(c, err, "Failed to delete cost")
		return
	}
	c.Status(http.StatusNoContent)
}

// pendingRecurrences godoc
// @Summary Recurring costs due today
// @Description Lists the templates the next replication run would process.
// @Tags costs
// @Produce json
// @Success 200 {object} dto.PendingRecurrenceResponse
// @Security BearerAuth
// @Router /costs/recurrence/pending [get]
func (h *costHandler) pendingRecurrences(c *gin.Context) {
	_, workspaceID := workspaceScope(c)
	today := recurrence.NormalizeDay(h.now().UTC())
	costs, err := h.costService.ListPendingRecurrences(c.Request.Context(), workspaceID, today)
	if err != nil {
		respondError(c, err, "Failed to list pending recurrences")
		return
	}
	c.JSON(http.StatusOK, dto.PendingRecurrenceResponse{Today: today, Count: len(costs), Costs: dto.ToListCostResponse(costs)})
}

// processRecurrences godoc
// @Summary Replicate due recurring costs
// @Description Creates one dated copy per due template and moves each template to its next date. Safe to call repeatedly.
// @Tags costs
// @Produce json
// @Success 200 {object} domain.RecurrenceResult
// @Failure 409 {object} ErrorResponse "A run is already in progress"
// @Security BearerAuth
// @Router /costs/recurrence/process [post]
func (h *costHandler) processRecurrences(c *gin.Context) {
	session, workspaceID := workspaceScope(c)
	result, err := h.costService.ProcessRecurrences(c.Request.Context(), workspaceID, session.UserID, h.now())
	if err != nil {
		respondError(c, err, "Failed to process recurring costs")
		return
	}
	c.JSON(http.StatusOK, result)
}
