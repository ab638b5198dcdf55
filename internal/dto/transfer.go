package dto

import "github.com/shopspring/decimal"

// CreateTransferRequest is the payload for requesting an inter-vault transfer.
type CreateTransferRequest struct {
	SourceVaultID      string          `json:"sourceVaultID" binding:"required"`
	DestinationVaultID string          `json:"destinationVaultID" binding:"required"`
	Amount             decimal.Decimal `json:"amount" binding:"required"`
	Reference          string          `json:"reference"`
}

// TransferExecutionResponse carries both legs of an executed transfer.
type TransferExecutionResponse struct {
	DebitLeg  TransactionResponse `json:"debitLeg"`
	CreditLeg TransactionResponse `json:"creditLeg"`
}
