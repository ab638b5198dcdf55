package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/fitiavana-dev/treasury_app/internal/core/ports/services"
	"github.com/fitiavana-dev/treasury_app/internal/dto"
	"github.com/fitiavana-dev/treasury_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// paymentRequestHandler handles HTTP requests for payroll payment requests.
type paymentRequestHandler struct {
	paymentRequestService portssvc.PaymentRequestSvcFacade
}

// newPaymentRequestHandler creates a new paymentRequestHandler.
func newPaymentRequestHandler(ps portssvc.PaymentRequestSvcFacade) *paymentRequestHandler {
	return &paymentRequestHandler{paymentRequestService: ps}
}

// registerPaymentRequestRoutes registers routes related to payment requests.
func registerPaymentRequestRoutes(rg *gin.RouterGroup, paymentRequestService portssvc.PaymentRequestSvcFacade) {
	h := newPaymentRequestHandler(paymentRequestService)

	requests := rg.Group("/payment-requests")
	{
		requests.POST("", h.createPaymentRequest)
		requests.GET("", h.listPaymentRequests)
		requests.POST("/:id/pay", h.pay)
	}
}

// createPaymentRequest godoc
// @Summary Create a payroll payment request
// @Tags payment-requests
// @Accept  json
// @Produce  json
// @Param   request body dto.CreatePaymentRequestRequest true "Payment request details"
// @Success 201 {object} dto.PaymentRequestResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid input format or validation error"
// @Failure 403 {object} handlers.ErrorResponse "Role lacks request capability"
// @Security BearerAuth
// @Router /payment-requests [post]
func (h *paymentRequestHandler) createPaymentRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePaymentRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePaymentRequest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	creatorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	request, err := h.paymentRequestService.CreatePaymentRequest(c.Request.Context(), creatorID, req)
	if err != nil {
		logger.Warn("Failed to create payment request", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPaymentRequestResponse(request))
}

// listPaymentRequests godoc
// @Summary List payment requests
// @Tags payment-requests
// @Produce  json
// @Param   status query string false "Filter by status (PENDING, PAID)"
// @Success 200 {array} dto.PaymentRequestResponse
// @Failure 400 {object} handlers.ErrorResponse "Unknown status"
// @Security BearerAuth
// @Router /payment-requests [get]
func (h *paymentRequestHandler) listPaymentRequests(c *gin.Context) {
	var status *string
	if s := c.Query("status"); s != "" {
		status = &s
	}

	requests, err := h.paymentRequestService.ListPaymentRequests(c.Request.Context(), status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentRequestResponses(requests))
}

// pay godoc
// @Summary Pay a pending payment request
// @Description Atomically marks the request PAID and records the validated salary expense against the open session
// @Tags payment-requests
// @Accept  json
// @Produce  json
// @Param   id path string true "Payment request ID"
// @Param   payment body dto.PayRequest true "Paying vault"
// @Success 200 {object} map[string]interface{} "Paid request and the generated expense"
// @Failure 400 {object} handlers.ErrorResponse "Invalid input format"
// @Failure 403 {object} handlers.ErrorResponse "Role lacks execute capability"
// @Failure 404 {object} handlers.ErrorResponse "Request or vault not found"
// @Failure 409 {object} handlers.ErrorResponse "Request already paid or no open session"
// @Security BearerAuth
// @Router /payment-requests/{id}/pay [post]
func (h *paymentRequestHandler) pay(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("id")

	var req dto.PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Pay", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	executorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	paid, expense, err := h.paymentRequestService.Pay(c.Request.Context(), executorID, requestID, req.VaultID)
	if err != nil {
		logger.Warn("Failed to pay request", slog.String("error", err.Error()), slog.String("request_id", requestID))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"request":     dto.ToPaymentRequestResponse(paid),
		"transaction": dto.ToTransactionResponse(expense),
	})
}
