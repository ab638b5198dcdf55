package mapping

import (
	"github.com/fitiavana-dev/treasury_app/internal/core/domain"
	"github.com/fitiavana-dev/treasury_app/internal/models"
)

// ToModelVault converts a domain Vault to a model Vault.
func ToModelVault(d domain.Vault) models.Vault {
	return models.Vault{
		VaultID:        d.VaultID,
		Name:           d.Name,
		Kind:           string(d.Kind),
		OpeningBalance: d.OpeningBalance,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainVault converts a model Vault to a domain Vault.
func ToDomainVault(m models.Vault) domain.Vault {
	return domain.Vault{
		VaultID:        m.VaultID,
		Name:           m.Name,
		Kind:           domain.VaultKind(m.Kind),
		OpeningBalance: m.OpeningBalance,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainVaultSlice converts a slice of model Vaults.
func ToDomainVaultSlice(ms []models.Vault) []domain.Vault {
	ds := make([]domain.Vault, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainVault(m)
	}
	return ds
}
