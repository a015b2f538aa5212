package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/qaydhq/qayd_backend/internal/core/ports/services"
	"github.com/qaydhq/qayd_backend/internal/dto"
	"github.com/qaydhq/qayd_backend/internal/middleware"
)

// settingsHandler handles HTTP requests related to per-company VAT settings.
type settingsHandler struct {
	settingsService portssvc.VatSettingsSvcFacade
}

// registerSettingsRoutes registers routes related to VAT settings.
func registerSettingsRoutes(rg *gin.RouterGroup, settingsService portssvc.VatSettingsSvcFacade) {
	h := &settingsHandler{settingsService: settingsService}

	settings := rg.Group("/settings")
	{
		settings.GET("/vat", h.getVatSettings)
		settings.PUT("/vat", h.updateVatSettings)
	}
}

// getVatSettings godoc
// @Summary Get the company's VAT settings
// @Description Returns registration defaults when the company has never saved settings
// @Tags settings
// @Produce  json
// @Success 200 {object} dto.VatSettingsResponse
// @Security BearerAuth
// @Router /settings/vat [get]
func (h *settingsHandler) getVatSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, companyID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	settings, err := h.settingsService.GetVatSettings(c.Request.Context(), companyID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to get VAT settings")
		return
	}

	c.JSON(http.StatusOK, dto.ToVatSettingsResponse(settings))
}

// updateVatSettings godoc
// @Summary Update the company's VAT settings
// @Description Enabling VAT requires a valid 15-digit TRN
// @Tags settings
// @Accept  json
// @Produce  json
// @Param   settings body dto.UpdateVatSettingsRequest true "Settings to apply"
// @Success 200 {object} dto.VatSettingsResponse
// @Failure 400 {object} map[string]string "Validation failed"
// @Security BearerAuth
// @Router /settings/vat [put]
func (h *settingsHandler) updateVatSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateVatSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateVatSettings", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, companyID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	settings, err := h.settingsService.UpdateVatSettings(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update VAT settings")
		return
	}

	c.JSON(http.StatusOK, dto.ToVatSettingsResponse(settings))
}
