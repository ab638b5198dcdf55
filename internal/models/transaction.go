package models

import "github.com/shopspring/decimal"

// Transaction is the row shape of the transactions table.
type Transaction struct {
	TransactionID            string          `db:"transaction_id"`
	Kind                     string          `db:"kind"`
	Category                 string          `db:"category"`
	Description              string          `db:"description"`
	Amount                   decimal.Decimal `db:"amount"`
	VaultID                  *string         `db:"vault_id"`
	DestinationVaultID       *string         `db:"destination_vault_id"`
	CounterpartTransactionID *string         `db:"counterpart_transaction_id"`
	SessionID                *string         `db:"session_id"`
	Status                   string          `db:"status"`
	RequesterID              string          `db:"requester_id"`
	ExecutorID               *string         `db:"executor_id"`
	AuditFields
}
