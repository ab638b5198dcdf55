package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TransactionKind classifies a monetary movement.
type TransactionKind string

const (
	Income   TransactionKind = "INCOME"
	Expense  TransactionKind = "EXPENSE"
	Transfer TransactionKind = "TRANSFER"
)

// TransactionStatus is the approval-workflow state of a transaction.
// PENDING and AUTHORIZED are mutable; VALIDATED and REJECTED are terminal.
type TransactionStatus string

const (
	StatusPending    TransactionStatus = "PENDING"
	StatusAuthorized TransactionStatus = "AUTHORIZED"
	StatusValidated  TransactionStatus = "VALIDATED"
	StatusRejected   TransactionStatus = "REJECTED"
)

// CategorySalary marks expense transactions generated from payment requests.
const CategorySalary = "SALARY"

// Transaction is one recorded monetary movement: an income, an expense, or one
// leg of an inter-vault transfer. INCOME and EXPENSE store an unsigned amount
// with the sign implied by the kind; TRANSFER legs store signed amounts
// (negative debit leg, positive credit leg). Only VALIDATED transactions count
// toward a vault balance.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	Kind          TransactionKind `json:"kind"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`

	// VaultID is nil for an expense request until execution binds it.
	VaultID *string `json:"vaultID,omitempty"`
	// DestinationVaultID is set on the debit leg of a transfer only.
	DestinationVaultID *string `json:"destinationVaultID,omitempty"`
	// CounterpartTransactionID links a transfer credit leg to its debit leg.
	CounterpartTransactionID *string `json:"counterpartTransactionID,omitempty"`
	// SessionID is nil while the transaction is request-only.
	SessionID *string `json:"sessionID,omitempty"`

	Status      TransactionStatus `json:"status"`
	RequesterID string            `json:"requesterID"`
	ExecutorID  *string           `json:"executorID,omitempty"`
	AuditFields
}

// IsTerminal reports whether the status can no longer change.
func (s TransactionStatus) IsTerminal() bool {
	return s == StatusValidated || s == StatusRejected
}

// SignedAmount returns the balance effect of the transaction on its vault:
// +amount for income, -amount for expense, and the stored (already signed)
// amount for transfer legs.
func (t Transaction) SignedAmount() decimal.Decimal {
	switch t.Kind {
	case Income:
		return t.Amount
	case Expense:
		return t.Amount.Neg()
	default:
		return t.Amount
	}
}

// Validate checks the structural invariants of a transaction record.
func (t Transaction) Validate() error {
	switch t.Kind {
	case Income, Expense, Transfer:
	default:
		return fmt.Errorf("unknown transaction kind %q", t.Kind)
	}
	if t.Amount.IsZero() {
		return fmt.Errorf("transaction amount must be non-zero")
	}
	if t.Kind != Transfer && t.Amount.IsNegative() {
		return fmt.Errorf("%s amount must be positive, sign is implied by the kind", t.Kind)
	}
	if t.Kind == Transfer && t.DestinationVaultID != nil && t.VaultID != nil && *t.DestinationVaultID == *t.VaultID {
		return fmt.Errorf("transfer source and destination vaults must differ")
	}
	return nil
}
