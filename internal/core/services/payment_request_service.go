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

// PaymentRequestService bridges payroll disbursement requests to the ledger.
// Paying a request atomically generates its salary expense.
type PaymentRequestService struct {
	paymentRepo portsrepo.PaymentRequestRepository
	vaultRepo   portsrepo.VaultRepository
	sessionRepo portsrepo.SessionRepository
	txnRepo     portsrepo.TransactionRepository
	userSvc     portssvc.UserSvcFacade
	notifier    portssvc.NotificationPublisher
}

// NewPaymentRequestService creates a new PaymentRequestService.
func NewPaymentRequestService(
	pr portsrepo.PaymentRequestRepository,
	vr portsrepo.VaultRepository,
	sr portsrepo.SessionRepository,
	tr portsrepo.TransactionRepository,
	us portssvc.UserSvcFacade,
	n portssvc.NotificationPublisher,
) portssvc.PaymentRequestSvcFacade {
	return &PaymentRequestService{
		paymentRepo: pr,
		vaultRepo:   vr,
		sessionRepo: sr,
		txnRepo:     tr,
		userSvc:     us,
		notifier:    n,
	}
}

var _ portssvc.PaymentRequestSvcFacade = (*PaymentRequestService)(nil)

func (s *PaymentRequestService) CreatePaymentRequest(ctx context.Context, creatorID string, req dto.CreatePaymentRequestRequest) (*domain.PaymentRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.userSvc.Require(ctx, creatorID, domain.CanRequest); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now()
	request := domain.PaymentRequest{
		RequestID:   uuid.NewString(),
		Beneficiary: req.Beneficiary,
		Amount:      req.Amount,
		Description: req.Description,
		Status:      domain.PaymentPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.paymentRepo.SavePaymentRequest(ctx, request); err != nil {
		logger.Error("Failed to save payment request", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Payment request created", slog.String("request_id", request.RequestID))
	s.notifier.Publish(ctx, "payment_request.pending", map[string]string{"requestID": request.RequestID})
	return &request, nil
}

func (s *PaymentRequestService) ListPaymentRequests(ctx context.Context, status *string) ([]domain.PaymentRequest, error) {
	var filter *domain.PaymentRequestStatus
	if status != nil && *status != "" {
		st := domain.PaymentRequestStatus(*status)
		if st != domain.PaymentPending && st != domain.PaymentPaid {
			return nil, fmt.Errorf("%w: unknown payment request status %q", apperrors.ErrValidation, *status)
		}
		filter = &st
	}
	return s.paymentRepo.ListPaymentRequests(ctx, filter)
}

// Pay marks the request PAID and records its salary expense in one atomic
// write, bound to the given vault and the open session. Two racing payers
// produce exactly one expense.
func (s *PaymentRequestService) Pay(ctx context.Context, executorID, requestID, vaultID string) (*domain.PaymentRequest, *domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.userSvc.Require(ctx, executorID, domain.CanExecute); err != nil {
		return nil, nil, err
	}

	request, err := s.paymentRepo.FindPaymentRequestByID(ctx, requestID)
	if err != nil {
		return nil, nil, err
	}

	session, err := s.sessionRepo.FindOpenSession(ctx)
	if err != nil {
		return nil, nil, err
	}

	if _, err := s.vaultRepo.FindVaultByID(ctx, vaultID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: vault %s not found", apperrors.ErrValidation, vaultID)
		}
		return nil, nil, err
	}

	now := time.Now()
	expense := domain.Transaction{
		TransactionID: uuid.NewString(),
		Kind:          domain.Expense,
		Category:      domain.CategorySalary,
		Description:   fmt.Sprintf("Salary payment to %s", request.Beneficiary),
		Amount:        request.Amount,
		VaultID:       &vaultID,
		SessionID:     &session.SessionID,
		Status:        domain.StatusValidated,
		RequesterID:   request.CreatedBy,
		ExecutorID:    &executorID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     executorID,
			LastUpdatedAt: now,
			LastUpdatedBy: executorID,
		},
	}

	upd := portsrepo.TransactionUpdate{
		ExecutorID: &executorID,
		VaultID:    &vaultID,
		SessionID:  &session.SessionID,
		UpdatedBy:  executorID,
		UpdatedAt:  now,
	}
	if err := s.paymentRepo.MarkPaid(ctx, requestID, expense, upd); err != nil {
		return nil, nil, err
	}

	paid, err := s.paymentRepo.FindPaymentRequestByID(ctx, requestID)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("Payment request paid",
		slog.String("request_id", requestID),
		slog.String("transaction_id", expense.TransactionID),
	)
	s.notifier.Publish(ctx, "payment_request.paid", map[string]string{
		"requestID":     requestID,
		"transactionID": expense.TransactionID,
	})
	return paid, &expense, nil
}
