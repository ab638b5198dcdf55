package models

import "github.com/shopspring/decimal"

// PaymentRequest is the row shape of the payment_requests table.
type PaymentRequest struct {
	RequestID         string          `db:"request_id"`
	Beneficiary       string          `db:"beneficiary"`
	Amount            decimal.Decimal `db:"amount"`
	Description       string          `db:"description"`
	Status            string          `db:"status"`
	PaidTransactionID *string         `db:"paid_transaction_id"`
	AuditFields
}
