package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/fitiavana-dev/treasury_app/internal/core/ports/services"
	"github.com/fitiavana-dev/treasury_app/internal/dto"
	"github.com/fitiavana-dev/treasury_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests for the approval workflow.
type transactionHandler struct {
	approvalService portssvc.ApprovalSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(as portssvc.ApprovalSvcFacade) *transactionHandler {
	return &transactionHandler{approvalService: as}
}

// registerTransactionRoutes registers routes related to transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, approvalService portssvc.ApprovalSvcFacade) {
	h := newTransactionHandler(approvalService)

	txns := rg.Group("/transactions")
	{
		txns.POST("", h.createRequest)
		txns.POST("/income", h.recordIncome)
		txns.GET("", h.listTransactions)
		txns.GET("/pending/count", h.countPending)
		txns.GET("/:id", h.getTransaction)
		txns.POST("/:id/authorize", h.authorize)
		txns.POST("/:id/reject", h.reject)
		txns.POST("/:id/execute", h.execute)
	}
}

// createRequest godoc
// @Summary Create a movement request
// @Description Creates a PENDING transaction awaiting authorization
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   request body dto.CreateRequestRequest true "Movement details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid input format or validation error"
// @Failure 403 {object} handlers.ErrorResponse "Role lacks request capability"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateRequest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	requesterID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Requester user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	txn, err := h.approvalService.Request(c.Request.Context(), requesterID, req)
	if err != nil {
		logger.Warn("Failed to create movement request", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// recordIncome godoc
// @Summary Record a point-of-sale income
// @Description Records a validated income directly against the open session, bypassing the approval chain
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   income body dto.RecordIncomeRequest true "Income details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid input format or validation error"
// @Failure 409 {object} handlers.ErrorResponse "No open session"
// @Security BearerAuth
// @Router /transactions/income [post]
func (h *transactionHandler) recordIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordIncome", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	operatorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Operator user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	txn, err := h.approvalService.RecordIncome(c.Request.Context(), operatorID, req)
	if err != nil {
		logger.Warn("Failed to record income", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// authorize godoc
// @Summary Authorize a pending transaction
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 403 {object} handlers.ErrorResponse "Role lacks authorize capability"
// @Failure 404 {object} handlers.ErrorResponse "Transaction not found"
// @Failure 409 {object} handlers.ErrorResponse "Transaction is not pending"
// @Security BearerAuth
// @Router /transactions/{id}/authorize [post]
func (h *transactionHandler) authorize(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	txnID := c.Param("id")

	approverID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	txn, err := h.approvalService.Authorize(c.Request.Context(), approverID, txnID)
	if err != nil {
		logger.Warn("Failed to authorize transaction", slog.String("error", err.Error()), slog.String("transaction_id", txnID))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// reject godoc
// @Summary Reject a pending transaction
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 403 {object} handlers.ErrorResponse "Role lacks authorize capability"
// @Failure 404 {object} handlers.ErrorResponse "Transaction not found"
// @Failure 409 {object} handlers.ErrorResponse "Transaction is not pending"
// @Security BearerAuth
// @Router /transactions/{id}/reject [post]
func (h *transactionHandler) reject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	txnID := c.Param("id")

	approverID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	txn, err := h.approvalService.Reject(c.Request.Context(), approverID, txnID)
	if err != nil {
		logger.Warn("Failed to reject transaction", slog.String("error", err.Error()), slog.String("transaction_id", txnID))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// execute godoc
// @Summary Execute an authorized transaction
// @Description Validates the transaction against the given vault, binding it to the open session for cash expenses
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Param   execution body dto.ExecuteRequest true "Execution details"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid input format or validation error"
// @Failure 403 {object} handlers.ErrorResponse "Role lacks execute capability"
// @Failure 404 {object} handlers.ErrorResponse "Transaction or vault not found"
// @Failure 409 {object} handlers.ErrorResponse "Transaction is not authorized"
// @Security BearerAuth
// @Router /transactions/{id}/execute [post]
func (h *transactionHandler) execute(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	txnID := c.Param("id")

	var req dto.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Execute", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	executorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	txn, err := h.approvalService.Execute(c.Request.Context(), executorID, txnID, req.VaultID)
	if err != nil {
		logger.Warn("Failed to execute transaction", slog.String("error", err.Error()), slog.String("transaction_id", txnID))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} handlers.ErrorResponse "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	txnID := c.Param("id")

	txn, err := h.approvalService.GetTransaction(c.Request.Context(), txnID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists transactions newest first with optional filters and cursor pagination
// @Tags transactions
// @Produce  json
// @Param   kind query string false "Filter by kind (INCOME, EXPENSE, TRANSFER)"
// @Param   status query string false "Filter by status (PENDING, AUTHORIZED, REJECTED, VALIDATED)"
// @Param   vaultID query string false "Filter by vault (either leg for transfers)"
// @Param   sessionID query string false "Filter by session"
// @Param   from query string false "Start date (YYYY-MM-DD)"
// @Param   to query string false "End date (YYYY-MM-DD)"
// @Param   limit query int false "Page size (default 50)"
// @Param   nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid filter or cursor"
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	page, err := h.approvalService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// countPending godoc
// @Summary Count pending transactions
// @Description Returns the number of requests awaiting authorization
// @Tags transactions
// @Produce  json
// @Success 200 {object} map[string]int64
// @Security BearerAuth
// @Router /transactions/pending/count [get]
func (h *transactionHandler) countPending(c *gin.Context) {
	count, err := h.approvalService.CountPending(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"pending": count})
}
