package domain_test

import (
	"testing"

	"github.com/fitiavana-dev/treasury_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_SignedAmount(t *testing.T) {
	tests := []struct {
		name string
		txn  domain.Transaction
		want decimal.Decimal
	}{
		{
			name: "income counts positive",
			txn:  domain.Transaction{Kind: domain.Income, Amount: decimal.NewFromInt(20000)},
			want: decimal.NewFromInt(20000),
		},
		{
			name: "expense counts negative",
			txn:  domain.Transaction{Kind: domain.Expense, Amount: decimal.NewFromInt(15000)},
			want: decimal.NewFromInt(-15000),
		},
		{
			name: "transfer debit leg keeps stored sign",
			txn:  domain.Transaction{Kind: domain.Transfer, Amount: decimal.NewFromInt(-10000)},
			want: decimal.NewFromInt(-10000),
		},
		{
			name: "transfer credit leg keeps stored sign",
			txn:  domain.Transaction{Kind: domain.Transfer, Amount: decimal.NewFromInt(10000)},
			want: decimal.NewFromInt(10000),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(tt.txn.SignedAmount()),
				"want %s got %s", tt.want, tt.txn.SignedAmount())
		})
	}
}

func TestTransaction_Validate(t *testing.T) {
	source := "vault-a"
	dest := "vault-b"

	tests := []struct {
		name    string
		txn     domain.Transaction
		wantErr bool
	}{
		{
			name:    "valid income",
			txn:     domain.Transaction{Kind: domain.Income, Amount: decimal.NewFromInt(500)},
			wantErr: false,
		},
		{
			name:    "zero amount rejected",
			txn:     domain.Transaction{Kind: domain.Income, Amount: decimal.Zero},
			wantErr: true,
		},
		{
			name:    "negative expense rejected",
			txn:     domain.Transaction{Kind: domain.Expense, Amount: decimal.NewFromInt(-500)},
			wantErr: true,
		},
		{
			name: "transfer debit leg may be negative",
			txn: domain.Transaction{
				Kind: domain.Transfer, Amount: decimal.NewFromInt(-500),
				VaultID: &source, DestinationVaultID: &dest,
			},
			wantErr: false,
		},
		{
			name: "transfer to the same vault rejected",
			txn: domain.Transaction{
				Kind: domain.Transfer, Amount: decimal.NewFromInt(-500),
				VaultID: &source, DestinationVaultID: &source,
			},
			wantErr: true,
		},
		{
			name:    "unknown kind rejected",
			txn:     domain.Transaction{Kind: "REFUND", Amount: decimal.NewFromInt(500)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.txn.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransactionStatus_IsTerminal(t *testing.T) {
	assert.False(t, domain.StatusPending.IsTerminal())
	assert.False(t, domain.StatusAuthorized.IsTerminal())
	assert.True(t, domain.StatusValidated.IsTerminal())
	assert.True(t, domain.StatusRejected.IsTerminal())
}
