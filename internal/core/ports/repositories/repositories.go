package repositories

import (
	"context"
	"time"

	"github.com/fitiavana-dev/treasury_app/internal/core/domain"
	"github.com/fitiavana-dev/treasury_app/internal/dto"
	"github.com/shopspring/decimal"
)

// TransactionUpdate carries the fields bound during a status transition.
// Nil pointers leave the corresponding column untouched.
type TransactionUpdate struct {
	ExecutorID *string
	VaultID    *string
	SessionID  *string
	UpdatedBy  string
	UpdatedAt  time.Time
}

// TransactionRepository is the Ledger Store surface for transaction records.
// Status transitions are conditional writes: the implementation must apply the
// update only where the current status equals `from`, returning
// apperrors.ErrConflict when the precondition no longer holds and
// apperrors.ErrNotFound when the record does not exist. Two callers racing on
// the same transition must observe exactly one success.
type TransactionRepository interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
	FindTransactionByID(ctx context.Context, txnID string) (*domain.Transaction, error)
	// FindTransactionByCounterpartID finds the credit leg linked to a transfer
	// debit leg, if it exists.
	FindTransactionByCounterpartID(ctx context.Context, debitTxnID string) (*domain.Transaction, error)
	TransitionStatus(ctx context.Context, txnID string, from, to domain.TransactionStatus, upd TransactionUpdate) (*domain.Transaction, error)
	// ExecuteTransfer atomically validates the debit leg (AUTHORIZED->VALIDATED
	// with the given bindings) and inserts the credit leg. Both writes commit
	// together or not at all. Returns the committed debit and credit legs.
	ExecuteTransfer(ctx context.Context, debitTxnID string, upd TransactionUpdate, creditLeg domain.Transaction) (*domain.Transaction, *domain.Transaction, error)
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error)
	CountByStatus(ctx context.Context, status domain.TransactionStatus) (int64, error)
	// SumValidatedByVault returns the signed sum of all VALIDATED transactions
	// bound to the vault. Balance derivation adds the vault's opening balance.
	SumValidatedByVault(ctx context.Context, vaultID string) (decimal.Decimal, error)
	// SumValidatedByKindForSession aggregates a session's validated
	// transactions per kind, with income/expense sums unsigned.
	SumValidatedByKindForSession(ctx context.Context, sessionID string) (map[domain.TransactionKind]decimal.Decimal, error)
}

// VaultRepository defines the persistence operations for Vaults.
type VaultRepository interface {
	SaveVault(ctx context.Context, vault domain.Vault) error
	FindVaultByID(ctx context.Context, vaultID string) (*domain.Vault, error)
	ListVaults(ctx context.Context) ([]domain.Vault, error)
}

// SessionRepository defines the persistence operations for cash register
// sessions. OpenSession must be a single conditional insert guarded by the
// one-OPEN-session uniqueness constraint, returning
// apperrors.ErrSessionAlreadyOpen when a session is already open.
type SessionRepository interface {
	OpenSession(ctx context.Context, session domain.CashSession) error
	FindOpenSession(ctx context.Context) (*domain.CashSession, error)
	FindSessionByID(ctx context.Context, sessionID string) (*domain.CashSession, error)
	// FindLatestClosedSession returns the most recently closed session, or
	// apperrors.ErrNotFound when none exists yet.
	FindLatestClosedSession(ctx context.Context) (*domain.CashSession, error)
	// CloseSession atomically persists the reconciliation snapshot and
	// transitions the session OPEN->CLOSED, returning apperrors.ErrConflict
	// when the session is no longer open.
	CloseSession(ctx context.Context, session domain.CashSession, recons []domain.VaultReconciliation) error
	FindReconciliations(ctx context.Context, sessionID string) ([]domain.VaultReconciliation, error)
}

// PaymentRequestRepository defines the persistence operations for payroll
// payment requests.
type PaymentRequestRepository interface {
	SavePaymentRequest(ctx context.Context, req domain.PaymentRequest) error
	FindPaymentRequestByID(ctx context.Context, requestID string) (*domain.PaymentRequest, error)
	ListPaymentRequests(ctx context.Context, status *domain.PaymentRequestStatus) ([]domain.PaymentRequest, error)
	// MarkPaid atomically transitions the request PENDING->PAID and inserts the
	// generated salary expense. Returns apperrors.ErrConflict when the request
	// is no longer pending.
	MarkPaid(ctx context.Context, requestID string, expense domain.Transaction, upd TransactionUpdate) error
}

// UserRepository defines the persistence operations for Users.
type UserRepository interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// RepositoryProvider aggregates every repository the services need.
type RepositoryProvider struct {
	TransactionRepo    TransactionRepository
	VaultRepo          VaultRepository
	SessionRepo        SessionRepository
	PaymentRequestRepo PaymentRequestRepository
	UserRepo           UserRepository
}
