package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/fitiavana-dev/treasury_app/internal/core/ports/services"
	"github.com/fitiavana-dev/treasury_app/internal/dto"
	"github.com/fitiavana-dev/treasury_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// sessionHandler handles HTTP requests for cash register sessions.
type sessionHandler struct {
	sessionService portssvc.SessionSvcFacade
}

// newSessionHandler creates a new sessionHandler.
func newSessionHandler(ss portssvc.SessionSvcFacade) *sessionHandler {
	return &sessionHandler{sessionService: ss}
}

// registerSessionRoutes registers routes related to cash register sessions.
func registerSessionRoutes(rg *gin.RouterGroup, sessionService portssvc.SessionSvcFacade) {
	h := newSessionHandler(sessionService)

	sessions := rg.Group("/sessions")
	{
		sessions.POST("/open", h.openSession)
		sessions.GET("/current", h.currentSession)
		sessions.POST("/close", h.closeSession)
		sessions.GET("/:id/summary", h.sessionSummary)
	}
}

// openSession godoc
// @Summary Open the cash register session
// @Description Opens the single daily session with the counted cash amount; the variance against the previous closing is recorded, never blocking
// @Tags sessions
// @Accept  json
// @Produce  json
// @Param   session body dto.OpenSessionRequest true "Opening amount"
// @Success 201 {object} dto.SessionResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid input format"
// @Failure 403 {object} handlers.ErrorResponse "Role lacks execute capability"
// @Failure 409 {object} handlers.ErrorResponse "A session is already open"
// @Security BearerAuth
// @Router /sessions/open [post]
func (h *sessionHandler) openSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for OpenSession", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	operatorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Operator user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	session, err := h.sessionService.Open(c.Request.Context(), operatorID, req)
	if err != nil {
		logger.Warn("Failed to open session", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSessionResponse(session))
}

// currentSession godoc
// @Summary Get the open session
// @Tags sessions
// @Produce  json
// @Success 200 {object} dto.SessionResponse
// @Failure 409 {object} handlers.ErrorResponse "No open session"
// @Security BearerAuth
// @Router /sessions/current [get]
func (h *sessionHandler) currentSession(c *gin.Context) {
	session, err := h.sessionService.Current(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}

// closeSession godoc
// @Summary Close the open session
// @Description Reconciles every vault's declared balance against the system balance; cash vaults require a billetage whose total matches the declared balance
// @Tags sessions
// @Accept  json
// @Produce  json
// @Param   closing body dto.CloseSessionRequest true "Per-vault counts"
// @Success 200 {object} map[string]interface{} "Closed session and its reconciliations"
// @Failure 400 {object} handlers.ErrorResponse "Invalid counts or billetage mismatch"
// @Failure 403 {object} handlers.ErrorResponse "Role lacks execute capability"
// @Failure 409 {object} handlers.ErrorResponse "No open session"
// @Security BearerAuth
// @Router /sessions/close [post]
func (h *sessionHandler) closeSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CloseSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CloseSession", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	operatorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Operator user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	session, recons, err := h.sessionService.Close(c.Request.Context(), operatorID, req)
	if err != nil {
		logger.Warn("Failed to close session", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session":         dto.ToSessionResponse(session),
		"reconciliations": dto.ToReconciliationResponses(recons),
	})
}

// sessionSummary godoc
// @Summary Get a session's closing summary
// @Description Returns the session, its per-vault reconciliations and the income/expense totals
// @Tags sessions
// @Produce  json
// @Param   id path string true "Session ID"
// @Success 200 {object} dto.SessionSummaryResponse
// @Failure 404 {object} handlers.ErrorResponse "Session not found"
// @Security BearerAuth
// @Router /sessions/{id}/summary [get]
func (h *sessionHandler) sessionSummary(c *gin.Context) {
	sessionID := c.Param("id")

	summary, err := h.sessionService.Summary(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
