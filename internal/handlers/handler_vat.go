package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qaydhq/qayd_backend/internal/core/domain"
	portssvc "github.com/qaydhq/qayd_backend/internal/core/ports/services"
	"github.com/qaydhq/qayd_backend/internal/dto"
	"github.com/qaydhq/qayd_backend/internal/middleware"
)

// vatHandler handles HTTP requests related to VAT reporting.
type vatHandler struct {
	vatService portssvc.VatSvcFacade
}

// registerVatRoutes registers routes related to VAT reporting.
func registerVatRoutes(rg *gin.RouterGroup, vatService portssvc.VatSvcFacade) {
	h := &vatHandler{vatService: vatService}

	vat := rg.Group("/vat")
	{
		vat.GET("/summary", h.getVatSummary)
		vat.POST("/filings", h.createFiling)
		vat.GET("/filings", h.listFilings)
		vat.GET("/filings/:id", h.getFiling)
		vat.PATCH("/filings/:id/status", h.updateFilingStatus)
		vat.GET("/filings/:id/audit-file", h.downloadAuditFile)
		vat.POST("/adjustments", h.createAdjustment)
	}
}

// getVatSummary godoc
// @Summary Get the live VAT summary for a period
// @Description Aggregates taxable, zero-rated and exempt sales plus adjustments over a date range
// @Tags vat
// @Produce  json
// @Param   from query string true "Period start (YYYY-MM-DD)"
// @Param   to query string true "Period end (YYYY-MM-DD)"
// @Success 200 {object} dto.VatSummaryResponse
// @Security BearerAuth
// @Router /vat/summary [get]
func (h *vatHandler) getVatSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.VatSummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for GetVatSummary", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	_, companyID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	summary, err := h.vatService.GetVatSummary(c.Request.Context(), companyID, params.From, params.To)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to get VAT summary")
		return
	}

	c.JSON(http.StatusOK, dto.ToVatSummaryResponse(summary))
}

// createFiling godoc
// @Summary Create a VAT filing
// @Description Freezes the period's VAT summary into an immutable draft snapshot
// @Tags vat
// @Accept  json
// @Produce  json
// @Param   filing body dto.CreateVatFilingRequest true "Filing period"
// @Success 201 {object} dto.VatFilingResponse
// @Failure 409 {object} map[string]string "A filing already exists for the period"
// @Security BearerAuth
// @Router /vat/filings [post]
func (h *vatHandler) createFiling(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateVatFilingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateFiling", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, companyID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	filing, err := h.vatService.CreateVatFiling(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create VAT filing")
		return
	}

	c.JSON(http.StatusCreated, dto.ToVatFilingResponse(filing))
}

// getFiling godoc
// @Summary Get a VAT filing
// @Tags vat
// @Produce  json
// @Param   id path string true "Filing ID"
// @Success 200 {object} dto.VatFilingResponse
// @Failure 404 {object} map[string]string "Filing not found"
// @Security BearerAuth
// @Router /vat/filings/{id} [get]
func (h *vatHandler) getFiling(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, companyID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	filing, err := h.vatService.GetFilingByID(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to get VAT filing")
		return
	}

	c.JSON(http.StatusOK, dto.ToVatFilingResponse(filing))
}

// listFilings godoc
// @Summary List VAT filings
// @Tags vat
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListVatFilingsResponse
// @Security BearerAuth
// @Router /vat/filings [get]
func (h *vatHandler) listFilings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListVatFilingsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListFilings", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	_, companyID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	resp, err := h.vatService.ListFilings(c.Request.Context(), companyID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list VAT filings")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// updateFilingStatus godoc
// @Summary Transition a filing's lifecycle status
// @Description Submits a draft filing or marks a submitted filing accepted or rejected
// @Tags vat
// @Accept  json
// @Produce  json
// @Param   id path string true "Filing ID"
// @Param   status body dto.UpdateVatFilingStatusRequest true "Target status"
// @Success 200 {object} dto.VatFilingResponse
// @Failure 409 {object} map[string]string "Transition not allowed"
// @Security BearerAuth
// @Router /vat/filings/{id}/status [patch]
func (h *vatHandler) updateFilingStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateVatFilingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateFilingStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, companyID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	filing, err := h.vatService.UpdateFilingStatus(c.Request.Context(), companyID, c.Param("id"), domain.FilingStatus(req.Status), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update filing status")
		return
	}

	c.JSON(http.StatusOK, dto.ToVatFilingResponse(filing))
}

// downloadAuditFile godoc
// @Summary Download the FTA audit file for a filing
// @Description Renders the filing snapshot as a CSV audit file
// @Tags vat
// @Produce  text/csv
// @Param   id path string true "Filing ID"
// @Success 200 {file} file
// @Failure 404 {object} map[string]string "Filing not found"
// @Security BearerAuth
// @Router /vat/filings/{id}/audit-file [get]
func (h *vatHandler) downloadAuditFile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, companyID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	contents, filename, err := h.vatService.GenerateFtaAuditFile(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate audit file")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", contents)
}

// createAdjustment godoc
// @Summary Record a manual VAT adjustment
// @Description Records a credit or debit correction contributing to a filing period
// @Tags vat
// @Accept  json
// @Produce  json
// @Param   adjustment body dto.CreateVatAdjustmentRequest true "Adjustment details"
// @Success 201 {object} dto.VatAdjustmentResponse
// @Security BearerAuth
// @Router /vat/adjustments [post]
func (h *vatHandler) createAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateVatAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAdjustment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, companyID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	adjustment, err := h.vatService.CreateAdjustment(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create VAT adjustment")
		return
	}

	c.JSON(http.StatusCreated, dto.ToVatAdjustmentResponse(adjustment))
}
