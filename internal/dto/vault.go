package dto

import (
	"time"

	"github.com/fitiavana-dev/treasury_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateVaultRequest is the payload for registering a vault.
type CreateVaultRequest struct {
	Name           string          `json:"name" binding:"required"`
	Kind           string          `json:"kind" binding:"required,oneof=CASH BANK"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
}

// VaultResponse is the API representation of a vault.
type VaultResponse struct {
	VaultID        string          `json:"vaultID"`
	Name           string          `json:"name"`
	Kind           string          `json:"kind"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// VaultBalanceResponse pairs a vault with its derived balance.
type VaultBalanceResponse struct {
	VaultID string          `json:"vaultID"`
	Name    string          `json:"name"`
	Kind    string          `json:"kind"`
	Balance decimal.Decimal `json:"balance"`
}

// ToVaultResponse converts a domain Vault to its API shape.
func ToVaultResponse(v *domain.Vault) VaultResponse {
	return VaultResponse{
		VaultID:        v.VaultID,
		Name:           v.Name,
		Kind:           string(v.Kind),
		OpeningBalance: v.OpeningBalance,
		CreatedAt:      v.CreatedAt,
	}
}

// ToVaultBalanceResponse converts a derived balance to its API shape.
func ToVaultBalanceResponse(b domain.VaultBalance) VaultBalanceResponse {
	return VaultBalanceResponse{
		VaultID: b.Vault.VaultID,
		Name:    b.Vault.Name,
		Kind:    string(b.Vault.Kind),
		Balance: b.Balance,
	}
}
