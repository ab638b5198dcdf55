package services_test

import (
	"context"

	"github.com/fitiavana-dev/treasury_app/internal/core/domain"
	portsrepo "github.com/fitiavana-dev/treasury_app/internal/core/ports/repositories"
	"github.com/fitiavana-dev/treasury_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, txnID string) (*domain.Transaction, error) {
	args := m.Called(ctx, txnID)
	var txn *domain.Transaction
	if args.Get(0) != nil {
		txn = args.Get(0).(*domain.Transaction)
	}
	return txn, args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionByCounterpartID(ctx context.Context, debitTxnID string) (*domain.Transaction, error) {
	args := m.Called(ctx, debitTxnID)
	var txn *domain.Transaction
	if args.Get(0) != nil {
		txn = args.Get(0).(*domain.Transaction)
	}
	return txn, args.Error(1)
}

func (m *MockTransactionRepository) TransitionStatus(ctx context.Context, txnID string, from, to domain.TransactionStatus, upd portsrepo.TransactionUpdate) (*domain.Transaction, error) {
	args := m.Called(ctx, txnID, from, to, upd)
	var txn *domain.Transaction
	if args.Get(0) != nil {
		txn = args.Get(0).(*domain.Transaction)
	}
	return txn, args.Error(1)
}

func (m *MockTransactionRepository) ExecuteTransfer(ctx context.Context, debitTxnID string, upd portsrepo.TransactionUpdate, creditLeg domain.Transaction) (*domain.Transaction, *domain.Transaction, error) {
	args := m.Called(ctx, debitTxnID, upd, creditLeg)
	var debit, credit *domain.Transaction
	if args.Get(0) != nil {
		debit = args.Get(0).(*domain.Transaction)
	}
	if args.Get(1) != nil {
		credit = args.Get(1).(*domain.Transaction)
	}
	return debit, credit, args.Error(2)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, params)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return txns, next, args.Error(2)
}

func (m *MockTransactionRepository) CountByStatus(ctx context.Context, status domain.TransactionStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) SumValidatedByVault(ctx context.Context, vaultID string) (decimal.Decimal, error) {
	args := m.Called(ctx, vaultID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTransactionRepository) SumValidatedByKindForSession(ctx context.Context, sessionID string) (map[domain.TransactionKind]decimal.Decimal, error) {
	args := m.Called(ctx, sessionID)
	var sums map[domain.TransactionKind]decimal.Decimal
	if args.Get(0) != nil {
		sums = args.Get(0).(map[domain.TransactionKind]decimal.Decimal)
	}
	return sums, args.Error(1)
}

// --- Mock VaultRepository ---

type MockVaultRepository struct {
	mock.Mock
}

func (m *MockVaultRepository) SaveVault(ctx context.Context, vault domain.Vault) error {
	args := m.Called(ctx, vault)
	return args.Error(0)
}

func (m *MockVaultRepository) FindVaultByID(ctx context.Context, vaultID string) (*domain.Vault, error) {
	args := m.Called(ctx, vaultID)
	var vault *domain.Vault
	if args.Get(0) != nil {
		vault = args.Get(0).(*domain.Vault)
	}
	return vault, args.Error(1)
}

func (m *MockVaultRepository) ListVaults(ctx context.Context) ([]domain.Vault, error) {
	args := m.Called(ctx)
	var vaults []domain.Vault
	if args.Get(0) != nil {
		vaults = args.Get(0).([]domain.Vault)
	}
	return vaults, args.Error(1)
}

// --- Mock SessionRepository ---

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) OpenSession(ctx context.Context, session domain.CashSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) FindOpenSession(ctx context.Context) (*domain.CashSession, error) {
	args := m.Called(ctx)
	var session *domain.CashSession
	if args.Get(0) != nil {
		session = args.Get(0).(*domain.CashSession)
	}
	return session, args.Error(1)
}

func (m *MockSessionRepository) FindSessionByID(ctx context.Context, sessionID string) (*domain.CashSession, error) {
	args := m.Called(ctx, sessionID)
	var session *domain.CashSession
	if args.Get(0) != nil {
		session = args.Get(0).(*domain.CashSession)
	}
	return session, args.Error(1)
}

func (m *MockSessionRepository) FindLatestClosedSession(ctx context.Context) (*domain.CashSession, error) {
	args := m.Called(ctx)
	var session *domain.CashSession
	if args.Get(0) != nil {
		session = args.Get(0).(*domain.CashSession)
	}
	return session, args.Error(1)
}

func (m *MockSessionRepository) CloseSession(ctx context.Context, session domain.CashSession, recons []domain.VaultReconciliation) error {
	args := m.Called(ctx, session, recons)
	return args.Error(0)
}

func (m *MockSessionRepository) FindReconciliations(ctx context.Context, sessionID string) ([]domain.VaultReconciliation, error) {
	args := m.Called(ctx, sessionID)
	var recons []domain.VaultReconciliation
	if args.Get(0) != nil {
		recons = args.Get(0).([]domain.VaultReconciliation)
	}
	return recons, args.Error(1)
}

// --- Mock PaymentRequestRepository ---

type MockPaymentRequestRepository struct {
	mock.Mock
}

func (m *MockPaymentRequestRepository) SavePaymentRequest(ctx context.Context, req domain.PaymentRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockPaymentRequestRepository) FindPaymentRequestByID(ctx context.Context, requestID string) (*domain.PaymentRequest, error) {
	args := m.Called(ctx, requestID)
	var req *domain.PaymentRequest
	if args.Get(0) != nil {
		req = args.Get(0).(*domain.PaymentRequest)
	}
	return req, args.Error(1)
}

func (m *MockPaymentRequestRepository) ListPaymentRequests(ctx context.Context, status *domain.PaymentRequestStatus) ([]domain.PaymentRequest, error) {
	args := m.Called(ctx, status)
	var reqs []domain.PaymentRequest
	if args.Get(0) != nil {
		reqs = args.Get(0).([]domain.PaymentRequest)
	}
	return reqs, args.Error(1)
}

func (m *MockPaymentRequestRepository) MarkPaid(ctx context.Context, requestID string, expense domain.Transaction, upd portsrepo.TransactionUpdate) error {
	args := m.Called(ctx, requestID, expense, upd)
	return args.Error(0)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

// --- Mock NotificationPublisher ---

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Publish(ctx context.Context, event string, payload map[string]string) {
	m.Called(ctx, event, payload)
}

// econome returns a user that can request and execute.
func econome(userID string) *domain.User {
	return &domain.User{UserID: userID, Name: "Econome", Role: domain.RoleEconome}
}

// director returns a user that can authorize.
func director(userID string) *domain.User {
	return &domain.User{UserID: userID, Name: "Director", Role: domain.RoleDirector}
}
