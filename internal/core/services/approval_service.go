package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fitiavana-dev/treasury_app/internal/apperrors"
	"github.com/fitiavana-dev/treasury_app/internal/core/domain"
	portsrepo "github.com/fitiavana-dev/treasury_app/internal/core/ports/repositories"
	portssvc "github.com/fitiavana-dev/treasury_app/internal/core/ports/services"
	"github.com/fitiavana-dev/treasury_app/internal/dto"
	"github.com/fitiavana-dev/treasury_app/internal/middleware"
	"github.com/google/uuid"
)

// ApprovalService runs the approval workflow: every movement of money enters
// the ledger through PENDING -> AUTHORIZED -> VALIDATED, or is rejected.
// VALIDATED and REJECTED are terminal; validated rows are never mutated again.
type ApprovalService struct {
	txnRepo     portsrepo.TransactionRepository
	vaultRepo   portsrepo.VaultRepository
	sessionRepo portsrepo.SessionRepository
	userSvc     portssvc.UserSvcFacade
	notifier    portssvc.NotificationPublisher
}

// NewApprovalService creates a new ApprovalService.
func NewApprovalService(
	tr portsrepo.TransactionRepository,
	vr portsrepo.VaultRepository,
	sr portsrepo.SessionRepository,
	us portssvc.UserSvcFacade,
	n portssvc.NotificationPublisher,
) portssvc.ApprovalSvcFacade {
	return &ApprovalService{
		txnRepo:     tr,
		vaultRepo:   vr,
		sessionRepo: sr,
		userSvc:     us,
		notifier:    n,
	}
}

var _ portssvc.ApprovalSvcFacade = (*ApprovalService)(nil)

// Request creates a PENDING transaction awaiting authorization. For expenses
// the vault binding is deferred to execution, so a nil vault is accepted.
func (s *ApprovalService) Request(ctx context.Context, requesterID string, req dto.CreateRequestRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.userSvc.Require(ctx, requesterID, domain.CanRequest); err != nil {
		return nil, err
	}

	if req.VaultID != nil {
		if _, err := s.vaultRepo.FindVaultByID(ctx, *req.VaultID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: vault %s not found", apperrors.ErrValidation, *req.VaultID)
			}
			return nil, err
		}
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Kind:          domain.TransactionKind(req.Kind),
		Category:      req.Category,
		Description:   req.Description,
		Amount:        req.Amount,
		VaultID:       req.VaultID,
		Status:        domain.StatusPending,
		RequesterID:   requesterID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requesterID,
			LastUpdatedAt: now,
			LastUpdatedBy: requesterID,
		},
	}
	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		logger.Error("Failed to save transaction request", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Transaction requested", slog.String("transaction_id", txn.TransactionID), slog.String("kind", req.Kind))
	s.notifier.Publish(ctx, "transaction.pending", map[string]string{"transactionID": txn.TransactionID})
	return &txn, nil
}

// RecordIncome records a point-of-sale income directly in VALIDATED state
// bound to the open session. Cash is already in hand, so the approval chain
// is bypassed on this path.
func (s *ApprovalService) RecordIncome(ctx context.Context, operatorID string, req dto.RecordIncomeRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.userSvc.Require(ctx, operatorID, domain.CanRequest); err != nil {
		return nil, err
	}

	session, err := s.sessionRepo.FindOpenSession(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.vaultRepo.FindVaultByID(ctx, req.VaultID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: vault %s not found", apperrors.ErrValidation, req.VaultID)
		}
		return nil, err
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Kind:          domain.Income,
		Category:      req.Category,
		Description:   req.Description,
		Amount:        req.Amount,
		VaultID:       &req.VaultID,
		SessionID:     &session.SessionID,
		Status:        domain.StatusValidated,
		RequesterID:   operatorID,
		ExecutorID:    &operatorID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     operatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: operatorID,
		},
	}
	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		logger.Error("Failed to save income", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Income recorded", slog.String("transaction_id", txn.TransactionID), slog.String("session_id", session.SessionID))
	s.notifier.Publish(ctx, "transaction.validated", map[string]string{"transactionID": txn.TransactionID})
	return &txn, nil
}

// Authorize moves a PENDING transaction to AUTHORIZED. The write is
// conditional: when two approvers race, exactly one succeeds and the other
// gets ErrConflict.
func (s *ApprovalService) Authorize(ctx context.Context, approverID, txnID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.userSvc.Require(ctx, approverID, domain.CanAuthorize); err != nil {
		return nil, err
	}

	txn, err := s.txnRepo.TransitionStatus(ctx, txnID, domain.StatusPending, domain.StatusAuthorized, portsrepo.TransactionUpdate{
		UpdatedBy: approverID,
		UpdatedAt: time.Now(),
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Transaction authorized", slog.String("transaction_id", txnID))
	s.notifier.Publish(ctx, "transaction.authorized", map[string]string{"transactionID": txnID})
	return txn, nil
}

// Reject moves a PENDING transaction to the terminal REJECTED state.
func (s *ApprovalService) Reject(ctx context.Context, approverID, txnID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.userSvc.Require(ctx, approverID, domain.CanAuthorize); err != nil {
		return nil, err
	}

	txn, err := s.txnRepo.TransitionStatus(ctx, txnID, domain.StatusPending, domain.StatusRejected, portsrepo.TransactionUpdate{
		UpdatedBy: approverID,
		UpdatedAt: time.Now(),
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Transaction rejected", slog.String("transaction_id", txnID))
	s.notifier.Publish(ctx, "transaction.rejected", map[string]string{"transactionID": txnID})
	return txn, nil
}

// Execute moves an AUTHORIZED transaction to VALIDATED, binding the source
// vault and the open session in the same conditional write. Expenses require
// an open session; transfers must go through the transfer coordinator.
func (s *ApprovalService) Execute(ctx context.Context, executorID, txnID, vaultID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.userSvc.Require(ctx, executorID, domain.CanExecute); err != nil {
		return nil, err
	}

	current, err := s.txnRepo.FindTransactionByID(ctx, txnID)
	if err != nil {
		return nil, err
	}
	if current.Kind == domain.Transfer {
		return nil, fmt.Errorf("%w: transfers are executed via the transfer endpoint", apperrors.ErrValidation)
	}

	if _, err := s.vaultRepo.FindVaultByID(ctx, vaultID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: vault %s not found", apperrors.ErrValidation, vaultID)
		}
		return nil, err
	}

	upd := portsrepo.TransactionUpdate{
		ExecutorID: &executorID,
		VaultID:    &vaultID,
		UpdatedBy:  executorID,
		UpdatedAt:  time.Now(),
	}

	if current.Kind == domain.Expense {
		session, err := s.sessionRepo.FindOpenSession(ctx)
		if err != nil {
			return nil, err
		}
		upd.SessionID = &session.SessionID
	}

	txn, err := s.txnRepo.TransitionStatus(ctx, txnID, domain.StatusAuthorized, domain.StatusValidated, upd)
	if err != nil {
		return nil, err
	}

	logger.Info("Transaction executed", slog.String("transaction_id", txnID), slog.String("vault_id", vaultID))
	s.notifier.Publish(ctx, "transaction.validated", map[string]string{"transactionID": txnID})
	return txn, nil
}

func (s *ApprovalService) GetTransaction(ctx context.Context, txnID string) (*domain.Transaction, error) {
	return s.txnRepo.FindTransactionByID(ctx, txnID)
}

func (s *ApprovalService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	txns, nextToken, err := s.txnRepo.ListTransactions(ctx, params)
	if err != nil {
		return nil, err
	}
	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

func (s *ApprovalService) CountPending(ctx context.Context) (int64, error) {
	return s.txnRepo.CountByStatus(ctx, domain.StatusPending)
}
