package mapping

import (
	"github.com/fitiavana-dev/treasury_app/internal/core/domain"
	"github.com/fitiavana-dev/treasury_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:            d.TransactionID,
		Kind:                     string(d.Kind),
		Category:                 d.Category,
		Description:              d.Description,
		Amount:                   d.Amount,
		VaultID:                  d.VaultID,
		DestinationVaultID:       d.DestinationVaultID,
		CounterpartTransactionID: d.CounterpartTransactionID,
		SessionID:                d.SessionID,
		Status:                   string(d.Status),
		RequesterID:              d.RequesterID,
		ExecutorID:               d.ExecutorID,
		AuditFields:              ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:            m.TransactionID,
		Kind:                     domain.TransactionKind(m.Kind),
		Category:                 m.Category,
		Description:              m.Description,
		Amount:                   m.Amount,
		VaultID:                  m.VaultID,
		DestinationVaultID:       m.DestinationVaultID,
		CounterpartTransactionID: m.CounterpartTransactionID,
		SessionID:                m.SessionID,
		Status:                   domain.TransactionStatus(m.Status),
		RequesterID:              m.RequesterID,
		ExecutorID:               m.ExecutorID,
		AuditFields:              ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
