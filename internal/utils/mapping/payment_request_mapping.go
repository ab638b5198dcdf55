package mapping

import (
	"github.com/fitiavana-dev/treasury_app/internal/core/domain"
	"github.com/fitiavana-dev/treasury_app/internal/models"
)

// ToModelPaymentRequest converts a domain PaymentRequest to a model PaymentRequest.
func ToModelPaymentRequest(d domain.PaymentRequest) models.PaymentRequest {
	return models.PaymentRequest{
		RequestID:         d.RequestID,
		Beneficiary:       d.Beneficiary,
		Amount:            d.Amount,
		Description:       d.Description,
		Status:            string(d.Status),
		PaidTransactionID: d.PaidTransactionID,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPaymentRequest converts a model PaymentRequest to a domain PaymentRequest.
func ToDomainPaymentRequest(m models.PaymentRequest) domain.PaymentRequest {
	return domain.PaymentRequest{
		RequestID:         m.RequestID,
		Beneficiary:       m.Beneficiary,
		Amount:            m.Amount,
		Description:       m.Description,
		Status:            domain.PaymentRequestStatus(m.Status),
		PaidTransactionID: m.PaidTransactionID,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPaymentRequestSlice converts a slice of model PaymentRequests.
func ToDomainPaymentRequestSlice(ms []models.PaymentRequest) []domain.PaymentRequest {
	ds := make([]domain.PaymentRequest, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPaymentRequest(m)
	}
	return ds
}
