package mapping

import (
	"encoding/json"

	"github.com/fitiavana-dev/treasury_app/internal/core/domain"
	"github.com/fitiavana-dev/treasury_app/internal/models"
)

// ToModelCashSession converts a domain CashSession to a model CashSession.
func ToModelCashSession(d domain.CashSession) models.CashSession {
	return models.CashSession{
		SessionID:            d.SessionID,
		Status:               string(d.Status),
		OpenedBy:             d.OpenedBy,
		OpeningDate:          d.OpeningDate,
		OpeningAmount:        d.OpeningAmount,
		OpeningVariance:      d.OpeningVariance,
		ClosedBy:             d.ClosedBy,
		ClosingDate:          d.ClosingDate,
		ClosingBalanceGlobal: d.ClosingBalanceGlobal,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCashSession converts a model CashSession to a domain CashSession.
func ToDomainCashSession(m models.CashSession) domain.CashSession {
	return domain.CashSession{
		SessionID:            m.SessionID,
		Status:               domain.SessionStatus(m.Status),
		OpenedBy:             m.OpenedBy,
		OpeningDate:          m.OpeningDate,
		OpeningAmount:        m.OpeningAmount,
		OpeningVariance:      m.OpeningVariance,
		ClosedBy:             m.ClosedBy,
		ClosingDate:          m.ClosingDate,
		ClosingBalanceGlobal: m.ClosingBalanceGlobal,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelVaultReconciliation converts a reconciliation snapshot to its row
// shape, serializing the billetage to jsonb.
func ToModelVaultReconciliation(d domain.VaultReconciliation) (models.VaultReconciliation, error) {
	m := models.VaultReconciliation{
		SessionID:     d.SessionID,
		VaultID:       d.VaultID,
		VaultName:     d.VaultName,
		SystemBalance: d.SystemBalance,
		RealBalance:   d.RealBalance,
		Variance:      d.Variance,
	}
	if d.Billetage != nil {
		raw, err := json.Marshal(d.Billetage)
		if err != nil {
			return models.VaultReconciliation{}, err
		}
		m.Billetage = raw
	}
	return m, nil
}

// ToDomainVaultReconciliation converts a reconciliation row back to the domain
// shape, deserializing the billetage when present.
func ToDomainVaultReconciliation(m models.VaultReconciliation) (domain.VaultReconciliation, error) {
	d := domain.VaultReconciliation{
		SessionID:     m.SessionID,
		VaultID:       m.VaultID,
		VaultName:     m.VaultName,
		SystemBalance: m.SystemBalance,
		RealBalance:   m.RealBalance,
		Variance:      m.Variance,
	}
	if len(m.Billetage) > 0 {
		var b domain.Billetage
		if err := json.Unmarshal(m.Billetage, &b); err != nil {
			return domain.VaultReconciliation{}, err
		}
		d.Billetage = b
	}
	return d, nil
}
