package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/services"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/dto"
)

// saleHandler handles HTTP requests related to sales.
type saleHandler struct {
	saleService portssvc.SaleSvcFacade
}

func registerSaleRoutes(rg *gin.RouterGroup, saleService portssvc.SaleSvcFacade) {
	h := &saleHandler{saleService: saleService}
	rg.POST("", h.createSale)
	rg.GET("", h.listSales)
	rg.GET("/:sale_id", h.getSale)
	rg.POST("/:sale_id/cancel", h.cancelSale)
}

// createSale godoc
// @Summary Register a sale
// @Description Items default to the procedure price; the total is the sum of the items minus the discount.
// @Tags sales
// @Accept json
// @Produce json
// @Param sale body dto.CreateSaleRequest true "Sale"
// @Success 201 {object} dto.SaleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Patient, seller or procedure not found"
// @Security BearerAuth
// @Router /sales [post]
func (h *saleHandler) createSale(c *gin.Context) {
	var req dto.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	session, workspaceID := workspaceScope(c)
	sale, err := h.saleService.CreateSale(c.Request.Context(), session, workspaceID, req)
	if err != nil {
		respondError(c, err, "Failed to create sale")
		return
	}
	c.JSON(http.StatusCreated, dto.ToSaleResponse(sale))
}

// listSales godoc
// @Summary List sales
// @Tags sales
// @Produce json
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Param patientID query string false "Patient ID"
// @Param sellerID query string false "Seller ID"
// @Param status query string false "COMPLETED or CANCELLED"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} dto.SaleResponse
// @Security BearerAuth
// @Router /sales [get]
func (h *saleHandler) listSales(c *gin.Context) {
	var params dto.ListSalesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	_, workspaceID := workspaceScope(c)
	sales, err := h.saleService.ListSales(c.Request.Context(), workspaceID, params.ToFilter())
	if err != nil {
		respondError(c, err, "Failed to list sales")
		return
	}
	c.JSON(http.StatusOK, dto.ToListSaleResponse(sales))
}

// getSale godoc
// @Summary Get a sale with its items
// @Tags sales
// @Produce json
// @Param sale_id path string true "Sale ID"
// @Success 200 {object} dto.SaleResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales/{sale_id} [get]
func (h *saleHandler) getSale(c *gin.Context) {
	_, workspaceID := workspaceScope(c)
	sale, err := h.saleService.GetSale(c.Request.Context(), workspaceID, c.Param("sale_id"))
	if err != nil {
		respondError(c, err, "Failed to get sale")
		return
	}
	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

// cancelSale godoc
// @Summary Cancel a sale
// @Tags sales
// @Produce json
// @Param sale_id path string true "Sale ID"
// @Success 200 {object} dto.SaleResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Already cancelled"
// @Security BearerAuth
// @Router /sales/{sale_id}/cancel [post]
func (h *saleHandler) cancelSale(c *gin.Context) {
	session, workspaceID := workspaceScope(c)
	sale, err := h.saleService.CancelSale(c.Request.Context(), session, workspaceID, c.Param("sale_id"))
	if err != nil {
		respondError(c, err, "Failed to cancel sale")
		return
	}
	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}
