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

// transferExecuteAttempts bounds the retry loop around the atomic two-leg
// write before the failure is escalated.
const transferExecuteAttempts = 3

// TransferService coordinates two-leg inter-vault transfers on top of the
// approval workflow. The debit leg is stored with a negative amount against
// the source vault; execution validates it and records the positive credit
// leg in the same database transaction, so the two legs always sum to zero.
type TransferService struct {
	txnRepo     portsrepo.TransactionRepository
	vaultRepo   portsrepo.VaultRepository
	sessionRepo portsrepo.SessionRepository
	userSvc     portssvc.UserSvcFacade
	notifier    portssvc.NotificationPublisher
}

// NewTransferService creates a new TransferService.
func NewTransferService(
	tr portsrepo.TransactionRepository,
	vr portsrepo.VaultRepository,
	sr portsrepo.SessionRepository,
	us portssvc.UserSvcFacade,
	n portssvc.NotificationPublisher,
) portssvc.TransferSvcFacade {
	return &TransferService{
		txnRepo:     tr,
		vaultRepo:   vr,
		sessionRepo: sr,
		userSvc:     us,
		notifier:    n,
	}
}

var _ portssvc.TransferSvcFacade = (*TransferService)(nil)

// RequestTransfer creates the PENDING debit leg of an inter-vault transfer.
func (s *TransferService) RequestTransfer(ctx context.Context, requesterID string, req dto.CreateTransferRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.userSvc.Require(ctx, requesterID, domain.CanRequest); err != nil {
		return nil, err
	}

	if req.SourceVaultID == req.DestinationVaultID {
		return nil, fmt.Errorf("%w: source and destination vault must differ", apperrors.ErrValidation)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: transfer amount must be positive", apperrors.ErrValidation)
	}

	for _, vaultID := range []string{req.SourceVaultID, req.DestinationVaultID} {
		if _, err := s.vaultRepo.FindVaultByID(ctx, vaultID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: vault %s not found", apperrors.ErrValidation, vaultID)
			}
			return nil, err
		}
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID:      uuid.NewString(),
		Kind:               domain.Transfer,
		Category:           "TRANSFER",
		Description:        req.Reference,
		Amount:             req.Amount.Neg(),
		VaultID:            &req.SourceVaultID,
		DestinationVaultID: &req.DestinationVaultID,
		Status:             domain.StatusPending,
		RequesterID:        requesterID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requesterID,
			LastUpdatedAt: now,
			LastUpdatedBy: requesterID,
		},
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		logger.Error("Failed to save transfer request", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Transfer requested",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("source_vault_id", req.SourceVaultID),
		slog.String("destination_vault_id", req.DestinationVaultID),
	)
	s.notifier.Publish(ctx, "transaction.pending", map[string]string{"transactionID": txn.TransactionID})
	return &txn, nil
}

// ExecuteTransfer validates the authorized debit leg and records the credit
// leg atomically. Transient failures are retried a bounded number of times;
// exhaustion raises ErrTransferIncomplete and a `transfer.incomplete` alert,
// never a silent half-transfer. When the counterpart constraint reports the
// credit leg already exists, the committed pair is returned unchanged.
func (s *TransferService) ExecuteTransfer(ctx context.Context, executorID, txnID string) (*domain.Transaction, *domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.userSvc.Require(ctx, executorID, domain.CanExecute); err != nil {
		return nil, nil, err
	}

	debit, err := s.txnRepo.FindTransactionByID(ctx, txnID)
	if err != nil {
		return nil, nil, err
	}
	if debit.Kind != domain.Transfer {
		return nil, nil, fmt.Errorf("%w: transaction %s is not a transfer", apperrors.ErrValidation, txnID)
	}
	if debit.DestinationVaultID == nil || debit.VaultID == nil {
		return nil, nil, fmt.Errorf("%w: transfer %s is missing vault bindings", apperrors.ErrValidation, txnID)
	}

	upd := portsrepo.TransactionUpdate{
		ExecutorID: &executorID,
		UpdatedBy:  executorID,
		UpdatedAt:  time.Now(),
	}
	if session, err := s.sessionRepo.FindOpenSession(ctx); err == nil {
		upd.SessionID = &session.SessionID
	} else if !errors.Is(err, apperrors.ErrNoOpenSession) {
		return nil, nil, err
	}

	now := time.Now()
	creditLeg := domain.Transaction{
		TransactionID:            uuid.NewString(),
		Kind:                     domain.Transfer,
		Category:                 debit.Category,
		Description:              debit.Description,
		Amount:                   debit.Amount.Abs(),
		VaultID:                  debit.DestinationVaultID,
		CounterpartTransactionID: &debit.TransactionID,
		SessionID:                upd.SessionID,
		Status:                   domain.StatusValidated,
		RequesterID:              debit.RequesterID,
		ExecutorID:               &executorID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     executorID,
			LastUpdatedAt: now,
			LastUpdatedBy: executorID,
		},
	}

	var lastErr error
	for attempt := 1; attempt <= transferExecuteAttempts; attempt++ {
		debitLeg, credit, err := s.txnRepo.ExecuteTransfer(ctx, txnID, upd, creditLeg)
		if err == nil {
			logger.Info("Transfer executed",
				slog.String("transaction_id", txnID),
				slog.String("credit_transaction_id", credit.TransactionID),
			)
			s.notifier.Publish(ctx, "transaction.validated", map[string]string{
				"transactionID":       txnID,
				"creditTransactionID": credit.TransactionID,
			})
			return debitLeg, credit, nil
		}
		if errors.Is(err, apperrors.ErrDuplicate) {
			// The unique counterpart constraint fired: a credit leg already
			// exists for this debit. Return the committed pair instead of
			// failing, so re-execution is idempotent.
			credit, findErr := s.txnRepo.FindTransactionByCounterpartID(ctx, txnID)
			if findErr != nil {
				return nil, nil, err
			}
			committedDebit, findErr := s.txnRepo.FindTransactionByID(ctx, txnID)
			if findErr != nil {
				return nil, nil, err
			}
			logger.Info("Transfer already executed",
				slog.String("transaction_id", txnID),
				slog.String("credit_transaction_id", credit.TransactionID),
			)
			return committedDebit, credit, nil
		}
		if errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, err
		}
		lastErr = err
		logger.Warn("Transfer execution attempt failed",
			slog.String("transaction_id", txnID),
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()),
		)
	}

	logger.Error("Transfer execution exhausted retries", slog.String("transaction_id", txnID), slog.String("error", lastErr.Error()))
	s.notifier.Publish(ctx, "transfer.incomplete", map[string]string{"transactionID": txnID})
	return nil, nil, fmt.Errorf("%w: transfer %s: %v", apperrors.ErrTransferIncomplete, txnID, lastErr)
}
