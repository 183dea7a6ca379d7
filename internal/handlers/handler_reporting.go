package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/services"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/dto"
)

// reportingHandler serves the read-only financial reports.
type reportingHandler struct {
	reportService portssvc.ReportSvcFacade
}

func newReportingHandler(rs portssvc.ReportSvcFacade) *reportingHandler {
	return &reportingHandler{reportService: rs}
}

// commissionReport godoc
// @Summary Commission report
// @Description Commission per seller over the completed sales of the period.
// @Tags reports
// @Produce json
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Success 200 {object} domain.CommissionReport
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/commissions [get]
func (h *reportingHandler) commissionReport(c *gin.Context) {
	var params dto.PeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	_, workspaceID := workspaceScope(c)
	report, err := h.reportService.CommissionReport(c.Request.Context(), workspaceID, params.ToPeriod())
	if err != nil {
		respondError(c, err, "Failed to build commission report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// dashboardSummary godoc
// @Summary Dashboard summary
// @Description Revenue, costs, commissions, margin and attendance of the period.
// @Tags reports
// @Produce json
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Success 200 {object} domain.DashboardSummary
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/dashboard [get]
func (h *reportingHandler) dashboardSummary(c *gin.Context) {
	var params dto.PeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	_, workspaceID := workspaceScope(c)
	summary, err := h.reportService.DashboardSummary(c.Request.Context(), workspaceID, params.ToPeriod())
	if err != nil {
		respondError(c, err, "Failed to build dashboard summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}
