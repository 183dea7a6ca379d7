package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/services"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/dto"
)

// procedureHandler handles the procedure catalogue.
type procedureHandler struct {
	procedureService portssvc.ProcedureSvcFacade
}

func registerProcedureRoutes(rg *gin.RouterGroup, procedureService portssvc.ProcedureSvcFacade) {
	h := &procedureHandler{procedureService: procedureService}
	rg.POST("", h.createProcedure)
	rg.GET("", h.listProcedures)
	rg.GET("/:procedure_id", h.getProcedure)
	rg.PUT("/:procedure_id", h.updateProcedure)
	rg.DELETE("/:procedure_id", h.deleteProcedure)
}

// createProcedure godoc
// @Summary Create a procedure
// @Tags procedures
// @Accept json
// @Produce json
// @Param procedure body dto.CreateProcedureRequest true "Procedure"
// @Success 201 {object} dto.ProcedureResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /procedures [post]
func (h *procedureHandler) createProcedure(c *gin.Context) {
	var req dto.CreateProcedureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	session, workspaceID := workspaceScope(c)
	p, err := h.procedureService.CreateProcedure(c.Request.Context(), session, workspaceID, req)
	if err != nil {
		respondError(c, err, "Failed to create procedure")
		return
	}
	c.JSON(http.StatusCreated, dto.ToProcedureResponse(p))
}

// listProcedures godoc
// @Summary List procedures
// @Tags procedures
// @Produce json
// @Param includeInactive query bool false "Include inactive procedures"
// @Success 200 {array} dto.ProcedureResponse
// @Security BearerAuth
// @Router /procedures [get]
func (h *procedureHandler) listProcedures(c *gin.Context) {
	var params dto.IncludeInactiveParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	_, workspaceID := workspaceScope(c)
	list, err := h.procedureService.ListProcedures(c.Request.Context(), workspaceID, params.IncludeInactive)
	if err != nil {
		respondError(c, err, "Failed to list procedures")
		return
	}
	c.JSON(http.StatusOK, dto.ToListProcedureResponse(list))
}

// getProcedure godoc
// @Summary Get a procedure
// @Tags procedures
// @Produce json
// @Param procedure_id path string true "Procedure ID"
// @Success 200 {object} dto.ProcedureResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /procedures/{procedure_id} [get]
func (h *procedureHandler) getProcedure(c *gin.Context) {
	_, workspaceID := workspaceScope(c)
	p, err := h.procedureService.GetProcedure(c.Request.Context(), workspaceID, c.Param("procedure_id"))
	if err != nil {
		respondError(c, err, "Failed to get procedure")
		return
	}
	c.JSON(http.StatusOK, dto.ToProcedureResponse(p))
}

// updateProcedure godoc
// @Summary Update a procedure
// @Tags procedures
// @Accept json
// @Produce json
// @Param procedure_id path string true "Procedure ID"
// @Param procedure body dto.UpdateProcedureRequest true "Fields to change"
// @Success 200 {object} dto.ProcedureResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /procedures/{procedure_id} [put]
func (h *procedureHandler) updateProcedure(c *gin.Context) {
	var req dto.UpdateProcedureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	session, workspaceID := workspaceScope(c)
	p, err := h.procedureService.UpdateProcedure(c.Request.Context(), session, workspaceID, c.Param("procedure_id"), req)
	if err != nil {
		respondError(c, err, "Failed to update procedure")
		return
	}
	c.JSON(http.StatusOK, dto.ToProcedureResponse(p))
}

// deleteProcedure godoc
// @Summary Deactivate a procedure
// @Tags procedures
// @Param procedure_id path string true "Procedure ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /procedures/{procedure_id} [delete]
func (h *procedureHandler) deleteProcedure(c *gin.Context) {
	session, workspaceID := workspaceScope(c)
	if err := h.procedureService.DeleteProcedure(c.Request.Context(), session, workspaceID, c.Param("procedure_id")); err != nil {
		respondError(c, err, "Failed to delete procedure")
		return
	}
	c.Status(http.StatusNoContent)
}

// collaboratorHandler handles the clinic staff records.
type collaboratorHandler struct {
	collaboratorService portssvc.CollaboratorSvcFacade
}

func registerCollaboratorRoutes(rg *gin.RouterGroup, collaboratorService portssvc.CollaboratorSvcFacade) {
	h := &collaboratorHandler{collaboratorService: collaboratorService}
	rg.POST("", h.createCollaborator)
	rg.GET("", h.listCollaborators)
	rg.GET("/:collaborator_id", h.getCollaborator)
	rg.PUT("/:collaborator_id", h.updateCollaborator)
	rg.DELETE("/:collaborator_id", h.deleteCollaborator)
}

// createCollaborator godoc
// @Summary Create a collaborator
// @Tags collaborators
// @Accept json
// @Produce json
// @Param collaborator body dto.CreateCollaboratorRequest true "Collaborator"
// @Success 201 {object} dto.CollaboratorResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /collaborators [post]
func (h *collaboratorHandler) createCollaborator(c *gin.Context) {
	var req dto.CreateCollaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	session, workspaceID := workspaceScope(c)
	col, err := h.collaboratorService.CreateCollaborator(c.Request.Context(), session, workspaceID, req)
	if err != nil {
		respondError(c, err, "Failed to create collaborator")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCollaboratorResponse(col))
}

// listCollaborators godoc
// @Summary List collaborators
// @Tags collaborators
// @Produce json
// @Param includeInactive query bool false "Include inactive collaborators"
// @Success 200 {array} dto.CollaboratorResponse
// @Security BearerAuth
// @Router /collaborators [get]
func (h *collaboratorHandler) listCollaborators(c *gin.Context) {
	var params dto.IncludeInactiveParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	_, workspaceID := workspaceScope(c)
	list, err := h.collaboratorService.ListCollaborators(c.Request.Context(), workspaceID, params.IncludeInactive)
	if err != nil {
		respondError(c, err, "Failed to list collaborators")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCollaboratorResponse(list))
}

// getCollaborator godoc
// @Summary Get a collaborator
// @Tags collaborators
// @Produce json
// @Param collaborator_id path string true "Collaborator ID"
// @Success 200 {object} dto.CollaboratorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /collaborators/{collaborator_id} [get]
func (h *collaboratorHandler) getCollaborator(c *gin.Context) {
	_, workspaceID := workspaceScope(c)
	col, err := h.collaboratorService.GetCollaborator(c.Request.Context(), workspaceID, c.Param("collaborator_id"))
	if err != nil {
		respondError(c, err, "Failed to get collaborator")
		return
	}
	c.JSON(http.StatusOK, dto.ToCollaboratorResponse(col))
}

// updateCollaborator godoc
// @Summary Update a collaborator
// @Tags collaborators
// @Accept json
// @Produce json
// @Param collaborator_id path string true "Collaborator ID"
// @Param collaborator body dto.UpdateCollaboratorRequest true "Fields to change"
// @Success 200 {object} dto.CollaboratorResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /collaborators/{collaborator_id} [put]
func (h *collaboratorHandler) updateCollaborator(c *gin.Context) {
	var req dto.UpdateCollaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	session, workspaceID := workspaceScope(c)
	col, err := h.collaboratorService.UpdateCollaborator(c.Request.Context(), session, workspaceID, c.Param("collaborator_id"), req)
	if err != nil {
		respondError(c, err, "Failed to update collaborator")
		return
	}
	c.JSON(http.StatusOK, dto.ToCollaboratorResponse(col))
}

// deleteCollaborator godoc
// @Summary Deactivate a collaborator
// @Tags collaborators
// @Param collaborator_id path string true "Collaborator ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /collaborators/{collaborator_id} [delete]
func (h *collaboratorHandler) deleteCollaborator(c *gin.Context) {
	session, workspaceID := workspaceScope(c)
	if err := h.collaboratorService.DeleteCollaborator(c.Request.Context(), session, workspaceID, c.Param("collaborator_id")); err != nil {
		respondError(c, err, "Failed to delete collaborator")
		return
	}
	c.Status(http.StatusNoContent)
}
