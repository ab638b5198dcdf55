package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashSession is the row shape of the cash_register_sessions table.
type CashSession struct {
	SessionID            string           `db:"session_id"`
	Status               string           `db:"status"`
	OpenedBy             string           `db:"opened_by"`
	OpeningDate          time.Time        `db:"opening_date"`
	OpeningAmount        decimal.Decimal  `db:"opening_amount"`
	OpeningVariance      decimal.Decimal  `db:"opening_variance"`
	ClosedBy             *string          `db:"closed_by"`
	ClosingDate          *time.Time       `db:"closing_date"`
	ClosingBalanceGlobal *decimal.Decimal `db:"closing_balance_global"`
	AuditFields
}

// VaultReconciliation is the row shape of the session_reconciliations table.
// Billetage is stored as jsonb; nil for non-cash vaults.
type VaultReconciliation struct {
	SessionID     string          `db:"session_id"`
	VaultID       string          `db:"vault_id"`
	VaultName     string          `db:"vault_name"`
	SystemBalance decimal.Decimal `db:"system_balance"`
	RealBalance   decimal.Decimal `db:"real_balance"`
	Variance      decimal.Decimal `db:"variance"`
	Billetage     []byte          `db:"billetage"`
}
