package services

import (
	"context"

	"github.com/fitiavana-dev/treasury_app/internal/core/domain"
	"github.com/fitiavana-dev/treasury_app/internal/dto"
)

// ApprovalSvcFacade is the approval workflow engine: the rules by which a
// movement request becomes an immutable, balance-affecting ledger entry.
type ApprovalSvcFacade interface {
	Request(ctx context.Context, requesterID string, req dto.CreateRequestRequest) (*domain.Transaction, error)
	// RecordIncome records a point-of-sale income directly in VALIDATED state
	// against the open session; cash is received in hand, so this path
	// bypasses approval.
	RecordIncome(ctx context.Context, operatorID string, req dto.RecordIncomeRequest) (*domain.Transaction, error)
	Authorize(ctx context.Context, approverID, txnID string) (*domain.Transaction, error)
	Reject(ctx context.Context, approverID, txnID string) (*domain.Transaction, error)
	Execute(ctx context.Context, executorID, txnID, vaultID string) (*domain.Transaction, error)
	GetTransaction(ctx context.Context, txnID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
	CountPending(ctx context.Context) (int64, error)
}

// TransferSvcFacade coordinates two-leg inter-vault transfers on top of the
// approval workflow, guaranteeing conservation of money.
type TransferSvcFacade interface {
	RequestTransfer(ctx context.Context, requesterID string, req dto.CreateTransferRequest) (*domain.Transaction, error)
	ExecuteTransfer(ctx context.Context, executorID, txnID string) (*domain.Transaction, *domain.Transaction, error)
}

// VaultSvcFacade is the vault registry with authoritative balance derivation.
type VaultSvcFacade interface {
	CreateVault(ctx context.Context, creatorID string, req dto.CreateVaultRequest) (*domain.Vault, error)
	GetVault(ctx context.Context, vaultID string) (*domain.Vault, error)
	ListVaults(ctx context.Context) ([]domain.Vault, error)
	Balance(ctx context.Context, vaultID string) (*domain.VaultBalance, error)
	Balances(ctx context.Context) ([]domain.VaultBalance, error)
}

// SessionSvcFacade manages the cash register session lifecycle and closing
// reconciliation.
type SessionSvcFacade interface {
	Open(ctx context.Context, operatorID string, req dto.OpenSessionRequest) (*domain.CashSession, error)
	Current(ctx context.Context) (*domain.CashSession, error)
	Close(ctx context.Context, operatorID string, req dto.CloseSessionRequest) (*domain.CashSession, []domain.VaultReconciliation, error)
	Summary(ctx context.Context, sessionID string) (*dto.SessionSummaryResponse, error)
}

// PaymentRequestSvcFacade bridges payroll disbursement requests to the ledger.
type PaymentRequestSvcFacade interface {
	CreatePaymentRequest(ctx context.Context, creatorID string, req dto.CreatePaymentRequestRequest) (*domain.PaymentRequest, error)
	ListPaymentRequests(ctx context.Context, status *string) ([]domain.PaymentRequest, error)
	Pay(ctx context.Context, executorID, requestID, vaultID string) (*domain.PaymentRequest, *domain.Transaction, error)
}

// UserSvcFacade is the identity surface: lookups, registration and server-side
// capability checks.
type UserSvcFacade interface {
	// CreateUser registers an operator. Only an ADMIN creator may call it.
	CreateUser(ctx context.Context, creatorID string, req dto.CreateUserRequest) (*domain.User, error)
	// EnsureAdmin creates the named ADMIN account if it does not exist yet;
	// the startup bootstrap path, since CreateUser requires an admin creator.
	EnsureAdmin(ctx context.Context, username, password string) error
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	// Require loads the user and verifies the capability server-side; the
	// caller's own claims are never trusted.
	Require(ctx context.Context, userID string, cap domain.Capability) (*domain.User, error)
}

// ServiceContainer holds instances of all the application services. Handlers
// receive this container rather than concrete implementations.
type ServiceContainer struct {
	Approval       ApprovalSvcFacade
	Transfer       TransferSvcFacade
	Vault          VaultSvcFacade
	Session        SessionSvcFacade
	PaymentRequest PaymentRequestSvcFacade
	User           UserSvcFacade
}
