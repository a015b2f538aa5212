package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/qaydhq/qayd_backend/internal/core/ports/services"
	"github.com/qaydhq/qayd_backend/internal/dto"
	"github.com/qaydhq/qayd_backend/internal/middleware"
)

// accountingHandler handles HTTP requests for the double-entry ledger.
type accountingHandler struct {
	accountingService portssvc.AccountingSvcFacade
}

// registerAccountingRoutes registers routes related to the ledger.
func registerAccountingRoutes(rg *gin.RouterGroup, accountingService portssvc.AccountingSvcFacade) {
	h := &accountingHandler{accountingService: accountingService}

	rg.GET("/journal-entries", h.listJournalEntries)
	rg.GET("/journal-entries/:id", h.getJournalEntry)
	rg.GET("/accounts", h.listAccounts)
}

// listJournalEntries godoc
// @Summary List journal entries
// @Tags accounting
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Security BearerAuth
// @Router /journal-entries [get]
func (h *accountingHandler) listJournalEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListJournalEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	_, companyID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	resp, err := h.accountingService.ListJournalEntries(c.Request.Context(), companyID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list journal entries")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getJournalEntry godoc
// @Summary Get a journal entry with its lines
// @Tags accounting
// @Produce  json
// @Param   id path string true "Journal entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Security BearerAuth
// @Router /journal-entries/{id} [get]
func (h *accountingHandler) getJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, companyID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	entry, err := h.accountingService.GetJournalEntryByID(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to get journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listAccounts godoc
// @Summary List ledger accounts with balances
// @Tags accounting
// @Produce  json
// @Success 200 {array} dto.AccountResponse
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountingHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, companyID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	accounts, err := h.accountingService.ListAccounts(c.Request.Context(), companyID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list accounts")
		return
	}

	responses := make([]dto.AccountResponse, 0, len(accounts))
	for i := range accounts {
		responses = append(responses, dto.ToAccountResponse(&accounts[i]))
	}
	c.JSON(http.StatusOK, responses)
}
