package dto

import (
	"time"

	"github.com/fitiavana-dev/treasury_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePaymentRequestRequest is the payload for creating a payroll
// disbursement request.
type CreatePaymentRequestRequest struct {
	Beneficiary string          `json:"beneficiary" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

// PayRequest is the payload for paying a pending payment request.
type PayRequest struct {
	VaultID string `json:"vaultID" binding:"required"`
}

// PaymentRequestResponse is the API representation of a payment request.
type PaymentRequestResponse struct {
	RequestID         string          `json:"requestID"`
	Beneficiary       string          `json:"beneficiary"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description"`
	Status            string          `json:"status"`
	PaidTransactionID *string         `json:"paidTransactionID,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// ToPaymentRequestResponse converts a domain PaymentRequest to its API shape.
func ToPaymentRequestResponse(p *domain.PaymentRequest) PaymentRequestResponse {
	return PaymentRequestResponse{
		RequestID:         p.RequestID,
		Beneficiary:       p.Beneficiary,
		Amount:            p.Amount,
		Description:       p.Description,
		Status:            string(p.Status),
		PaidTransactionID: p.PaidTransactionID,
		CreatedAt:         p.CreatedAt,
	}
}

// ToPaymentRequestResponses converts a slice of domain PaymentRequests.
func ToPaymentRequestResponses(ps []domain.PaymentRequest) []PaymentRequestResponse {
	out := make([]PaymentRequestResponse, len(ps))
	for i := range ps {
		out[i] = ToPaymentRequestResponse(&ps[i])
	}
	return out
}
