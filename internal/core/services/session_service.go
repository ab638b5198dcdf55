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
	"github.com/shopspring/decimal"
)

// SessionService manages the cash register session lifecycle. At most one
// session is OPEN system-wide; closing snapshots a per-vault reconciliation
// that is immutable afterwards.
type SessionService struct {
	sessionRepo portsrepo.SessionRepository
	vaultRepo   portsrepo.VaultRepository
	txnRepo     portsrepo.TransactionRepository
	userSvc     portssvc.UserSvcFacade
	notifier    portssvc.NotificationPublisher
}

// NewSessionService creates a new SessionService.
func NewSessionService(
	sr portsrepo.SessionRepository,
	vr portsrepo.VaultRepository,
	tr portsrepo.TransactionRepository,
	us portssvc.UserSvcFacade,
	n portssvc.NotificationPublisher,
) portssvc.SessionSvcFacade {
	return &SessionService{
		sessionRepo: sr,
		vaultRepo:   vr,
		txnRepo:     tr,
		userSvc:     us,
		notifier:    n,
	}
}

var _ portssvc.SessionSvcFacade = (*SessionService)(nil)

// Open starts a new session. The declared opening amount is recorded verbatim;
// the variance against the previous session's global closing balance is
// recorded alongside it rather than blocking the open.
func (s *SessionService) Open(ctx context.Context, operatorID string, req dto.OpenSessionRequest) (*domain.CashSession, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.userSvc.Require(ctx, operatorID, domain.CanExecute); err != nil {
		return nil, err
	}

	openingVariance := decimal.Zero
	previous, err := s.sessionRepo.FindLatestClosedSession(ctx)
	switch {
	case err == nil:
		if previous.ClosingBalanceGlobal != nil {
			openingVariance = req.OpeningAmount.Sub(*previous.ClosingBalanceGlobal)
		}
	case errors.Is(err, apperrors.ErrNotFound):
		// first session ever
	default:
		return nil, err
	}

	now := time.Now()
	session := domain.CashSession{
		SessionID:       uuid.NewString(),
		Status:          domain.SessionOpen,
		OpenedBy:        operatorID,
		OpeningDate:     now,
		OpeningAmount:   req.OpeningAmount,
		OpeningVariance: openingVariance,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     operatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: operatorID,
		},
	}

	if err := s.sessionRepo.OpenSession(ctx, session); err != nil {
		if errors.Is(err, apperrors.ErrSessionAlreadyOpen) {
			logger.Warn("Session open lost the race", slog.String("operator_id", operatorID))
		}
		return nil, err
	}

	if !openingVariance.IsZero() {
		logger.Warn("Opening amount differs from previous closing balance",
			slog.String("session_id", session.SessionID),
			slog.String("opening_variance", openingVariance.String()),
		)
	}
	logger.Info("Session opened", slog.String("session_id", session.SessionID))
	s.notifier.Publish(ctx, "session.opened", map[string]string{"sessionID": session.SessionID})
	return &session, nil
}

// Current returns the open session, or ErrNoOpenSession.
func (s *SessionService) Current(ctx context.Context) (*domain.CashSession, error) {
	return s.sessionRepo.FindOpenSession(ctx)
}

// Close reconciles every vault against its declared physical count and closes
// the open session. Variances are recorded, never blocking; an absent or
// already-closed session is reported as ErrSessionClosed.
func (s *SessionService) Close(ctx context.Context, operatorID string, req dto.CloseSessionRequest) (*domain.CashSession, []domain.VaultReconciliation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.userSvc.Require(ctx, operatorID, domain.CanExecute); err != nil {
		return nil, nil, err
	}

	session, err := s.sessionRepo.FindOpenSession(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoOpenSession) {
			return nil, nil, apperrors.ErrSessionClosed
		}
		return nil, nil, err
	}

	vaults, err := s.vaultRepo.ListVaults(ctx)
	if err != nil {
		return nil, nil, err
	}

	counts := make(map[string]dto.VaultCountRequest, len(req.Counts))
	for _, count := range req.Counts {
		if _, dup := counts[count.VaultID]; dup {
			return nil, nil, fmt.Errorf("%w: duplicate count for vault %s", apperrors.ErrValidation, count.VaultID)
		}
		counts[count.VaultID] = count
	}
	for _, vault := range vaults {
		if _, ok := counts[vault.VaultID]; !ok {
			return nil, nil, fmt.Errorf("%w: missing count for vault %s", apperrors.ErrValidation, vault.VaultID)
		}
	}
	if len(counts) != len(vaults) {
		return nil, nil, fmt.Errorf("%w: counts reference unknown vaults", apperrors.ErrValidation)
	}

	now := time.Now()
	closingGlobal := decimal.Zero
	recons := make([]domain.VaultReconciliation, 0, len(vaults))
	for _, vault := range vaults {
		count := counts[vault.VaultID]

		var billetage domain.Billetage
		if vault.Kind == domain.VaultCash {
			if len(count.Billetage) == 0 {
				return nil, nil, fmt.Errorf("%w: cash vault %s requires a billetage", apperrors.ErrValidation, vault.VaultID)
			}
			billetage = domain.Billetage(count.Billetage)
			if err := billetage.Validate(count.RealBalance); err != nil {
				return nil, nil, err
			}
		}

		sum, err := s.txnRepo.SumValidatedByVault(ctx, vault.VaultID)
		if err != nil {
			return nil, nil, err
		}
		systemBalance := vault.OpeningBalance.Add(sum)
		variance := count.RealBalance.Sub(systemBalance)

		recon := domain.VaultReconciliation{
			SessionID:     session.SessionID,
			VaultID:       vault.VaultID,
			VaultName:     vault.Name,
			SystemBalance: systemBalance,
			RealBalance:   count.RealBalance,
			Variance:      variance,
			Billetage:     billetage,
		}
		if recon.HasVariance() {
			logger.Warn("Reconciliation variance",
				slog.String("session_id", session.SessionID),
				slog.String("vault_id", vault.VaultID),
				slog.String("variance", variance.String()),
			)
		}
		recons = append(recons, recon)
		closingGlobal = closingGlobal.Add(count.RealBalance)
	}

	session.Status = domain.SessionClosed
	session.ClosedBy = &operatorID
	session.ClosingDate = &now
	session.ClosingBalanceGlobal = &closingGlobal
	session.LastUpdatedAt = now
	session.LastUpdatedBy = operatorID

	if err := s.sessionRepo.CloseSession(ctx, *session, recons); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, nil, apperrors.ErrSessionClosed
		}
		return nil, nil, err
	}

	logger.Info("Session closed",
		slog.String("session_id", session.SessionID),
		slog.String("closing_balance_global", closingGlobal.String()),
	)
	s.notifier.Publish(ctx, "session.closed", map[string]string{"sessionID": session.SessionID})
	return session, recons, nil
}

// Summary returns a session with its reconciliation snapshot and per-kind
// totals of its validated transactions.
func (s *SessionService) Summary(ctx context.Context, sessionID string) (*dto.SessionSummaryResponse, error) {
	session, err := s.sessionRepo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	recons, err := s.sessionRepo.FindReconciliations(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	sums, err := s.txnRepo.SumValidatedByKindForSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return &dto.SessionSummaryResponse{
		Session:         dto.ToSessionResponse(session),
		Reconciliations: dto.ToReconciliationResponses(recons),
		TotalIncome:     sums[domain.Income],
		TotalExpense:    sums[domain.Expense],
	}, nil
}
