package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qaydhq/qayd_backend/internal/core/domain"
	portssvc "github.com/qaydhq/qayd_backend/internal/core/ports/services"
	"github.com/qaydhq/qayd_backend/internal/dto"
	"github.com/qaydhq/qayd_backend/internal/middleware"
	"github.com/shopspring/decimal"
)

// paymentHandler handles HTTP requests related to payments.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

// registerPaymentRoutes registers routes related to payments.
func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := &paymentHandler{paymentService: paymentService}

	payments := rg.Group("/payments")
	{
		payments.POST("", h.createPayment)
		payments.GET("", h.listPayments)
		payments.GET("/summary", h.getPaymentSummary)
		payments.GET("/:id", h.getPayment)
		payments.POST("/:id/confirm", h.confirmPayment)
		payments.PATCH("/:id/status", h.updatePaymentStatus)
	}

	invoices := rg.Group("/invoices")
	{
		invoices.POST("/:id/recalculate", h.recalculateInvoice)
	}
}

// createPayment godoc
// @Summary Record a payment
// @Description Records a pending payment allocated in full to one invoice
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   payment body dto.CreatePaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Validation error, including amount exceeding outstanding balance"
// @Security BearerAuth
// @Router /payments [post]
func (h *paymentHandler) createPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, companyID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	payment, err := h.paymentService.CreatePayment(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create payment")
		return
	}

	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}

// confirmPayment godoc
// @Summary Confirm a pending payment
// @Description Transitions a pending payment to confirmed and posts the journal entry
// @Tags payments
// @Produce  json
// @Param   id path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 409 {object} map[string]string "Payment is not pending"
// @Security BearerAuth
// @Router /payments/{id}/confirm [post]
func (h *paymentHandler) confirmPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, companyID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	payment, err := h.paymentService.ConfirmPayment(c.Request.Context(), companyID, c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to confirm payment")
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// updatePaymentStatus godoc
// @Summary Transition a payment's status
// @Description Applies a refund, failure or cancellation to a payment
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   id path string true "Payment ID"
// @Param   status body dto.UpdatePaymentStatusRequest true "Target status"
// @Success 200 {object} dto.PaymentResponse
// @Failure 409 {object} map[string]string "Transition not allowed"
// @Security BearerAuth
// @Router /payments/{id}/status [patch]
func (h *paymentHandler) updatePaymentStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdatePaymentStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, companyID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	var payment *domain.Payment
	var err error
	newStatus := domain.PaymentStatus(req.Status)
	switch newStatus {
	case domain.PaymentConfirmed:
		payment, err = h.paymentService.ConfirmPayment(c.Request.Context(), companyID, c.Param("id"), userID)
	case domain.PaymentRefunded:
		var refund decimal.Decimal
		if req.RefundAmount != nil {
			refund = *req.RefundAmount
		} else {
			// Default to a full refund when no amount is provided.
			existing, findErr := h.paymentService.GetPaymentByID(c.Request.Context(), companyID, c.Param("id"))
			if findErr != nil {
				respondServiceError(c, logger, findErr, "Failed to update payment status")
				return
			}
			refund = existing.Amount
		}
		payment, err = h.paymentService.RefundPayment(c.Request.Context(), companyID, c.Param("id"), refund, userID)
	default:
		payment, err = h.paymentService.UpdatePaymentStatus(c.Request.Context(), companyID, c.Param("id"), newStatus, userID)
	}
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update payment status")
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// getPayment godoc
// @Summary Get a payment
// @Tags payments
// @Produce  json
// @Param   id path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 404 {object} map[string]string "Payment not found"
// @Security BearerAuth
// @Router /payments/{id} [get]
func (h *paymentHandler) getPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, companyID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	payment, err := h.paymentService.GetPaymentByID(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to get payment")
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// listPayments godoc
// @Summary List payments
// @Description Retrieves a paginated list of the company's payments, optionally scoped to one invoice
// @Tags payments
// @Produce  json
// @Param   invoiceID query string false "Filter by invoice"
// @Param   from query string false "Payment date lower bound (YYYY-MM-DD)"
// @Param   to query string false "Payment date upper bound (YYYY-MM-DD)"
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListPaymentsResponse
// @Security BearerAuth
// @Router /payments [get]
func (h *paymentHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListPaymentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListPayments", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	_, companyID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	resp, err := h.paymentService.ListPayments(c.Request.Context(), companyID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list payments")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getPaymentSummary godoc
// @Summary Get the payment summary for a period
// @Description Aggregates confirmed, pending and refunded payments over a date range
// @Tags payments
// @Produce  json
// @Param   from query string true "Period start (YYYY-MM-DD)"
// @Param   to query string true "Period end (YYYY-MM-DD)"
// @Success 200 {object} dto.PaymentSummaryResponse
// @Security BearerAuth
// @Router /payments/summary [get]
func (h *paymentHandler) getPaymentSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.PaymentSummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for GetPaymentSummary", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	_, companyID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	summary, err := h.paymentService.GetPaymentSummary(c.Request.Context(), companyID, params.From, params.To)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to get payment summary")
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentSummaryResponse(summary))
}

// recalculateInvoice godoc
// @Summary Recalculate an invoice's paid and outstanding amounts
// @Description Re-derives the invoice balance from its full allocation history
// @Tags payments
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Success 204 "Recalculated"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id}/recalculate [post]
func (h *paymentHandler) recalculateInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, companyID, ok := requestScope(c, logger)
	if !ok {
		return
	}

	if err := h.paymentService.RecalculateInvoiceAmounts(c.Request.Context(), companyID, c.Param("id")); err != nil {
		respondServiceError(c, logger, err, "Failed to recalculate invoice")
		return
	}

	c.Status(http.StatusNoContent)
}
