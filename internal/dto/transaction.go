package dto

import (
	"time"

	"github.com/fitiavana-dev/treasury_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateRequestRequest is the payload for creating an approval-workflow
// request (expense or generic movement awaiting authorization).
type CreateRequestRequest struct {
	Kind        string          `json:"kind" binding:"required,oneof=INCOME EXPENSE"`
	Category    string          `json:"category" binding:"required"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	// VaultID is the intended source; binding is deferred to execution.
	VaultID *string `json:"vaultID,omitempty"`
}

// RecordIncomeRequest is the payload for the point-of-sale income path, which
// records a validated transaction directly against the open session.
type RecordIncomeRequest struct {
	Category    string          `json:"category" binding:"required"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	VaultID     string          `json:"vaultID" binding:"required"`
}

// ExecuteRequest is the payload for executing an authorized transaction.
type ExecuteRequest struct {
	VaultID string `json:"vaultID" binding:"required"`
}

// ListTransactionsParams holds filters for listing transactions.
type ListTransactionsParams struct {
	Kind      *string    `form:"kind"`
	Status    *string    `form:"status"`
	VaultID   *string    `form:"vaultID"`
	SessionID *string    `form:"sessionID"`
	From      *time.Time `form:"from" time_format:"2006-01-02"`
	To        *time.Time `form:"to" time_format:"2006-01-02"`
	Limit     int        `form:"limit"`
	NextToken *string    `form:"nextToken"`
}

// TransactionResponse is the API representation of a transaction.
type TransactionResponse struct {
	TransactionID            string          `json:"transactionID"`
	Kind                     string          `json:"kind"`
	Category                 string          `json:"category"`
	Description              string          `json:"description"`
	Amount                   decimal.Decimal `json:"amount"`
	VaultID                  *string         `json:"vaultID,omitempty"`
	DestinationVaultID       *string         `json:"destinationVaultID,omitempty"`
	CounterpartTransactionID *string         `json:"counterpartTransactionID,omitempty"`
	SessionID                *string         `json:"sessionID,omitempty"`
	Status                   string          `json:"status"`
	RequesterID              string          `json:"requesterID"`
	ExecutorID               *string         `json:"executorID,omitempty"`
	CreatedAt                time.Time       `json:"createdAt"`
	UpdatedAt                time.Time       `json:"updatedAt"`
}

// ListTransactionsResponse is a page of transactions plus the next cursor.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain Transaction to its API shape.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:            t.TransactionID,
		Kind:                     string(t.Kind),
		Category:                 t.Category,
		Description:              t.Description,
		Amount:                   t.Amount,
		VaultID:                  t.VaultID,
		DestinationVaultID:       t.DestinationVaultID,
		CounterpartTransactionID: t.CounterpartTransactionID,
		SessionID:                t.SessionID,
		Status:                   string(t.Status),
		RequesterID:              t.RequesterID,
		ExecutorID:               t.ExecutorID,
		CreatedAt:                t.CreatedAt,
		UpdatedAt:                t.LastUpdatedAt,
	}
}

// ToTransactionResponses converts a slice of domain Transactions.
func ToTransactionResponses(ts []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(ts))
	for i := range ts {
		out[i] = ToTransactionResponse(&ts[i])
	}
	return out
}
