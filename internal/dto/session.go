package dto

import (
	"time"

	"github.com/fitiavana-dev/treasury_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OpenSessionRequest is the payload for opening the cash register session.
type OpenSessionRequest struct {
	// OpeningAmount is recorded exactly as declared by the operator.
	OpeningAmount decimal.Decimal `json:"openingAmount" binding:"required"`
}

// VaultCountRequest is one vault's declared physical balance at close. Cash
// vaults must supply a billetage whose total matches the real balance.
type VaultCountRequest struct {
	VaultID     string          `json:"vaultID" binding:"required"`
	RealBalance decimal.Decimal `json:"realBalance"`
	Billetage   map[int64]int   `json:"billetage,omitempty"`
}

// CloseSessionRequest is the payload for closing the open session.
type CloseSessionRequest struct {
	Counts []VaultCountRequest `json:"counts" binding:"required,min=1,dive"`
}

// SessionResponse is the API representation of a cash session.
type SessionResponse struct {
	SessionID            string           `json:"sessionID"`
	Status               string           `json:"status"`
	OpenedBy             string           `json:"openedBy"`
	OpeningDate          time.Time        `json:"openingDate"`
	OpeningAmount        decimal.Decimal  `json:"openingAmount"`
	OpeningVariance      decimal.Decimal  `json:"openingVariance"`
	ClosedBy             *string          `json:"closedBy,omitempty"`
	ClosingDate          *time.Time       `json:"closingDate,omitempty"`
	ClosingBalanceGlobal *decimal.Decimal `json:"closingBalanceGlobal,omitempty"`
}

// ReconciliationResponse is one vault's closing audit line.
type ReconciliationResponse struct {
	VaultID       string          `json:"vaultID"`
	VaultName     string          `json:"vaultName"`
	SystemBalance decimal.Decimal `json:"systemBalance"`
	RealBalance   decimal.Decimal `json:"realBalance"`
	Variance      decimal.Decimal `json:"variance"`
	Billetage     map[int64]int   `json:"billetage,omitempty"`
}

// SessionSummaryResponse is the full closing audit of a session.
type SessionSummaryResponse struct {
	Session         SessionResponse          `json:"session"`
	Reconciliations []ReconciliationResponse `json:"reconciliations"`
	TotalIncome     decimal.Decimal          `json:"totalIncome"`
	TotalExpense    decimal.Decimal          `json:"totalExpense"`
}

// ToSessionResponse converts a domain CashSession to its API shape.
func ToSessionResponse(s *domain.CashSession) SessionResponse {
	return SessionResponse{
		SessionID:            s.SessionID,
		Status:               string(s.Status),
		OpenedBy:             s.OpenedBy,
		OpeningDate:          s.OpeningDate,
		OpeningAmount:        s.OpeningAmount,
		OpeningVariance:      s.OpeningVariance,
		ClosedBy:             s.ClosedBy,
		ClosingDate:          s.ClosingDate,
		ClosingBalanceGlobal: s.ClosingBalanceGlobal,
	}
}

// ToReconciliationResponses converts closing audit lines to their API shape.
func ToReconciliationResponses(rs []domain.VaultReconciliation) []ReconciliationResponse {
	out := make([]ReconciliationResponse, len(rs))
	for i, r := range rs {
		out[i] = ReconciliationResponse{
			VaultID:       r.VaultID,
			VaultName:     r.VaultName,
			SystemBalance: r.SystemBalance,
			RealBalance:   r.RealBalance,
			Variance:      r.Variance,
			Billetage:     r.Billetage,
		}
	}
	return out
}
