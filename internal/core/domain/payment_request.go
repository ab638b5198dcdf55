package domain

import "github.com/shopspring/decimal"

// PaymentRequestStatus is the state of a payroll disbursement request.
type PaymentRequestStatus string

const (
	PaymentPending PaymentRequestStatus = "PENDING"
	PaymentPaid    PaymentRequestStatus = "PAID"
)

// PaymentRequest is a payroll disbursement request. It is inert with respect
// to the ledger until paid, at which point it generates a validated SALARY
// expense and becomes PAID.
type PaymentRequest struct {
	RequestID   string               `json:"requestID"`
	Beneficiary string               `json:"beneficiary"`
	Amount      decimal.Decimal      `json:"amount"`
	Description string               `json:"description"`
	Status      PaymentRequestStatus `json:"status"`
	// PaidTransactionID links to the expense generated on payment.
	PaidTransactionID *string `json:"paidTransactionID,omitempty"`
	AuditFields
}
