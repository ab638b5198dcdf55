package domain

import "github.com/shopspring/decimal"

// VaultKind distinguishes physical cash boxes from bank accounts. Cash vaults
// are reconciled against a billetage at session close; bank vaults against a
// single declared figure.
type VaultKind string

const (
	VaultCash VaultKind = "CASH"
	VaultBank VaultKind = "BANK"
)

// Vault is a named cash or bank account. Its balance is never stored: it is
// always derived from the opening balance plus the validated ledger.
type Vault struct {
	VaultID        string          `json:"vaultID"`
	Name           string          `json:"name"`
	Kind           VaultKind       `json:"kind"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	AuditFields
}

// VaultBalance pairs a vault with its derived balance at a point in time.
type VaultBalance struct {
	Vault   Vault           `json:"vault"`
	Balance decimal.Decimal `json:"balance"`
}
