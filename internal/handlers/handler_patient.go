package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/services"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/dto"
)

// patientHandler handles HTTP requests related to patients.
type patientHandler struct {
	patientService portssvc.PatientSvcFacade
}

func registerPatientRoutes(rg *gin.RouterGroup, patientService portssvc.PatientSvcFacade) {
	h := &patientHandler{patientService: patientService}
	rg.POST("", h.createPatient)
	rg.GET("", h.listPatients)
	rg.POST("/import", h.importPatients)
	rg.GET("/:patient_id", h.getPatient)
	rg.PUT("/:patient_id", h.updatePatient)
	rg.DELETE("/:patient_id", h.deletePatient)
}

// createPatient godoc
// @Summary Create a patient
// @Tags patients
// @Accept json
// @Produce json
// @Param patient body dto.CreatePatientRequest true "Patient"
// @Success 201 {object} dto.PatientResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /patients [post]
func (h *patientHandler) createPatient(c *gin.Context) {
	var req dto.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	session, workspaceID := workspaceScope(c)
	patient, err := h.patientService.CreatePatient(c.Request.Context(), session, workspaceID, req)
	if err != nil {
		respondError(c, err, "Failed to create patient")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPatientResponse(patient))
}

// listPatients godoc
// @Summary List patients
// @Tags patients
// @Produce json
// @Param search query string false "Name, phone, email or document contains"
// @Param includeInactive query bool false "Include deleted patients"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} dto.PatientResponse
// @Security BearerAuth
// @Router /patients [get]
func (h *patientHandler) listPatients(c *gin.Context) {
	var params dto.ListPatientsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	_, workspaceID := workspaceScope(c)
	patients, err := h.patientService.ListPatients(c.Request.Context(), workspaceID, params.ToFilter())
	if err != nil {
		respondError(c, err, "Failed to list patients")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPatientResponse(patients))
}

// getPatient godoc
// @Summary Get a patient
// @Tags patients
// @Produce json
// @Param patient_id path string true "Patient ID"
// @Success 200 {object} dto.PatientResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /patients/{patient_id} [get]
func (h *patientHandler) getPatient(c *gin.Context) {
	_, workspaceID := workspaceScope(c)
	patient, err := h.patientService.GetPatient(c.Request.Context(), workspaceID, c.Param("patient_id"))
	if err != nil {
		respondError(c, err, "Failed to get patient")
		return
	}
	c.JSON(http.StatusOK, dto.ToPatientResponse(patient))
}

// updatePatient godoc
// @Summary Update a patient
// @Tags patients
// @Accept json
// @Produce json
// @Param patient_id path string true "Patient ID"
// @Param patient body dto.UpdatePatientRequest true "Fields to change"
// @Success 200 {object} dto.PatientResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Concurrent update"
// @Security BearerAuth
// @Router /patients/{patient_id} [put]
func (h *patientHandler) updatePatient(c *gin.Context) {
	var req dto.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	session, workspaceID := workspaceScope(c)
	patient, err := h.patientService.UpdatePatient(c.Request.Context(), session, workspaceID, c.Param("patient_id"), req)
	if err != nil {
		respondError(c, err, "Failed to update patient")
		return
	}
	c.JSON(http.StatusOK, dto.ToPatientResponse(patient))
}

// deletePatient godoc
// @Summary Delete a patient
// @Description Soft delete; history keeps referencing the patient.
// @Tags patients
// @Param patient_id path string true "Patient ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /patients/{patient_id} [delete]
func (h *patientHandler) deletePatient(c *gin.Context) {
	session, workspaceID := workspaceScope(c)
	if err := h.patientService.DeletePatient(c.Request.Context(), session, workspaceID, c.Param("patient_id")); err != nil {
		respondError(c, err, "Failed to delete patient")
		return
	}
	c.Status(http.StatusNoContent)
}

// importPatients godoc
// @Summary Bulk import patients
// @Description Each row is created on its own; failures are reported per row.
// @Tags patients
// @Accept json
// @Produce json
// @Param patients body dto.ImportPatientsRequest true "Rows"
// @Success 200 {object} dto.ImportPatientsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /patients/import [post]
func (h *patientHandler) importPatients(c *gin.Context) {
	var req dto.ImportPatientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	session, workspaceID := workspaceScope(c)
	results, err := h.patientService.ImportPatients(c.Request.Context(), session, workspaceID, req.Patients)
	if err != nil {
		respondError(c, err, "Failed to import patients")
		return
	}
	resp := dto.ImportPatientsResponse{Results: results}
	for _, r := range results {
		if r.Error != "" {
			resp.Failed++
		} else {
			resp.Created++
		}
	}
	c.JSON(http.StatusOK, resp)
}
