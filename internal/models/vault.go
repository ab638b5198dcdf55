package models

import "github.com/shopspring/decimal"

// Vault is the row shape of the vaults table.
type Vault struct {
	VaultID        string          `db:"vault_id"`
	Name           string          `db:"name"`
	Kind           string          `db:"kind"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	AuditFields
}
