package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/fitiavana-dev/treasury_app/internal/core/ports/services"
	"github.com/fitiavana-dev/treasury_app/internal/dto"
	"github.com/fitiavana-dev/treasury_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transferHandler handles HTTP requests for inter-vault transfers.
type transferHandler struct {
	transferService portssvc.TransferSvcFacade
}

// newTransferHandler creates a new transferHandler.
func newTransferHandler(ts portssvc.TransferSvcFacade) *transferHandler {
	return &transferHandler{transferService: ts}
}

// registerTransferRoutes registers routes related to transfers.
func registerTransferRoutes(rg *gin.RouterGroup, transferService portssvc.TransferSvcFacade) {
	h := newTransferHandler(transferService)

	transfers := rg.Group("/transfers")
	{
		transfers.POST("", h.requestTransfer)
		transfers.POST("/:id/execute", h.executeTransfer)
	}
}

// requestTransfer godoc
// @Summary Request an inter-vault transfer
// @Description Creates the pending debit leg of a transfer between two vaults
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   transfer body dto.CreateTransferRequest true "Transfer details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid input format or validation error"
// @Failure 403 {object} handlers.ErrorResponse "Role lacks request capability"
// @Failure 404 {object} handlers.ErrorResponse "Vault not found"
// @Security BearerAuth
// @Router /transfers [post]
func (h *transferHandler) requestTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RequestTransfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	requesterID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Requester user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	txn, err := h.transferService.RequestTransfer(c.Request.Context(), requesterID, req)
	if err != nil {
		logger.Warn("Failed to request transfer", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// executeTransfer godoc
// @Summary Execute an authorized transfer
// @Description Atomically validates the debit leg and creates the validated credit leg
// @Tags transfers
// @Produce  json
// @Param   id path string true "Debit leg transaction ID"
// @Success 200 {object} dto.TransferExecutionResponse
// @Failure 403 {object} handlers.ErrorResponse "Role lacks execute capability"
// @Failure 404 {object} handlers.ErrorResponse "Transaction not found"
// @Failure 409 {object} handlers.ErrorResponse "Transfer already executed or not authorized"
// @Failure 500 {object} handlers.ErrorResponse "Transfer could not be completed"
// @Security BearerAuth
// @Router /transfers/{id}/execute [post]
func (h *transferHandler) executeTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	txnID := c.Param("id")

	executorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	debit, credit, err := h.transferService.ExecuteTransfer(c.Request.Context(), executorID, txnID)
	if err != nil {
		logger.Warn("Failed to execute transfer", slog.String("error", err.Error()), slog.String("transaction_id", txnID))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TransferExecutionResponse{
		DebitLeg:  dto.ToTransactionResponse(debit),
		CreditLeg: dto.ToTransactionResponse(credit),
	})
}
