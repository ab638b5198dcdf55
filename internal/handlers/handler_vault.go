package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/fitiavana-dev/treasury_app/internal/core/ports/services"
	"github.com/fitiavana-dev/treasury_app/internal/dto"
	"github.com/fitiavana-dev/treasury_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// vaultHandler handles HTTP requests related to vaults.
type vaultHandler struct {
	vaultService portssvc.VaultSvcFacade
}

// newVaultHandler creates a new vaultHandler.
func newVaultHandler(vs portssvc.VaultSvcFacade) *vaultHandler {
	return &vaultHandler{vaultService: vs}
}

// registerVaultRoutes registers routes related to vaults.
func registerVaultRoutes(rg *gin.RouterGroup, vaultService portssvc.VaultSvcFacade) {
	h := newVaultHandler(vaultService)

	vaults := rg.Group("/vaults")
	{
		vaults.POST("", h.createVault)
		vaults.GET("", h.listVaults)
		vaults.GET("/balances", h.listBalances)
		vaults.GET("/:id", h.getVault)
		vaults.GET("/:id/balance", h.getBalance)
	}
}

// createVault godoc
// @Summary Register a new vault
// @Description Registers a cash or bank vault with its opening balance
// @Tags vaults
// @Accept  json
// @Produce  json
// @Param   vault body dto.CreateVaultRequest true "Vault details"
// @Success 201 {object} dto.VaultResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 409 {object} handlers.ErrorResponse "Vault name already taken"
// @Security BearerAuth
// @Router /vaults [post]
func (h *vaultHandler) createVault(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateVaultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateVault", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	vault, err := h.vaultService.CreateVault(c.Request.Context(), creatorUserID, req)
	if err != nil {
		logger.Warn("Failed to create vault", slog.String("error", err.Error()), slog.String("vault_name", req.Name))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToVaultResponse(vault))
}

// getVault godoc
// @Summary Get a vault by ID
// @Tags vaults
// @Produce  json
// @Param   id path string true "Vault ID"
// @Success 200 {object} dto.VaultResponse
// @Failure 404 {object} handlers.ErrorResponse "Vault not found"
// @Security BearerAuth
// @Router /vaults/{id} [get]
func (h *vaultHandler) getVault(c *gin.Context) {
	vaultID := c.Param("id")

	vault, err := h.vaultService.GetVault(c.Request.Context(), vaultID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVaultResponse(vault))
}

// listVaults godoc
// @Summary List all vaults
// @Tags vaults
// @Produce  json
// @Success 200 {array} dto.VaultResponse
// @Security BearerAuth
// @Router /vaults [get]
func (h *vaultHandler) listVaults(c *gin.Context) {
	vaults, err := h.vaultService.ListVaults(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]dto.VaultResponse, len(vaults))
	for i := range vaults {
		out[i] = dto.ToVaultResponse(&vaults[i])
	}
	c.JSON(http.StatusOK, out)
}

// getBalance godoc
// @Summary Get a vault's derived balance
// @Description Balance is opening balance plus the signed sum of validated transactions
// @Tags vaults
// @Produce  json
// @Param   id path string true "Vault ID"
// @Success 200 {object} dto.VaultBalanceResponse
// @Failure 404 {object} handlers.ErrorResponse "Vault not found"
// @Security BearerAuth
// @Router /vaults/{id}/balance [get]
func (h *vaultHandler) getBalance(c *gin.Context) {
	vaultID := c.Param("id")

	balance, err := h.vaultService.Balance(c.Request.Context(), vaultID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVaultBalanceResponse(*balance))
}

// listBalances godoc
// @Summary List every vault's derived balance
// @Tags vaults
// @Produce  json
// @Success 200 {array} dto.VaultBalanceResponse
// @Security BearerAuth
// @Router /vaults/balances [get]
func (h *vaultHandler) listBalances(c *gin.Context) {
	balances, err := h.vaultService.Balances(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]dto.VaultBalanceResponse, len(balances))
	for i, b := range balances {
		out[i] = dto.ToVaultBalanceResponse(b)
	}
	c.JSON(http.StatusOK, out)
}
