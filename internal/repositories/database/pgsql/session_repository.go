package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/fitiavana-dev/treasury_app/internal/apperrors"
	"github.com/fitiavana-dev/treasury_app/internal/core/domain"
	portsrepo "github.com/fitiavana-dev/treasury_app/internal/core/ports/repositories"
	"github.com/fitiavana-dev/treasury_app/internal/models"
	"github.com/fitiavana-dev/treasury_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSessionRepository struct {
	BaseRepository
}

// newPgxSessionRepository creates a new repository for cash register sessions.
func newPgxSessionRepository(pool *pgxpool.Pool) portsrepo.SessionRepository {
	return &PgxSessionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SessionRepository = (*PgxSessionRepository)(nil)

const sessionColumns = `
	session_id, status, opened_by, opening_date, opening_amount, opening_variance,
	closed_by, closing_date, closing_balance_global,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanSession(row pgx.Row) (*domain.CashSession, error) {
	var m models.CashSession
	err := row.Scan(
		&m.SessionID,
		&m.Status,
		&m.OpenedBy,
		&m.OpeningDate,
		&m.OpeningAmount,
		&m.OpeningVariance,
		&m.ClosedBy,
		&m.ClosingDate,
		&m.ClosingBalanceGlobal,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	session := mapping.ToDomainCashSession(m)
	return &session, nil
}

// OpenSession inserts a new OPEN session. The partial unique index on open
// sessions guarantees at most one, so a unique violation means someone else
// already has one open.
func (r *PgxSessionRepository) OpenSession(ctx context.Context, session domain.CashSession) error {
	query := `
		INSERT INTO cash_register_sessions (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	m := mapping.ToModelCashSession(session)
	_, err := r.Pool.Exec(ctx, query,
		m.SessionID,
		m.Status,
		m.OpenedBy,
		m.OpeningDate,
		m.OpeningAmount,
		m.OpeningVariance,
		m.ClosedBy,
		m.ClosingDate,
		m.ClosingBalanceGlobal,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "uq_sessions_one_open") {
			return apperrors.ErrSessionAlreadyOpen
		}
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: session with ID %s already exists", apperrors.ErrDuplicate, session.SessionID)
		}
		return fmt.Errorf("failed to open session %s: %w", session.SessionID, err)
	}
	return nil
}

func (r *PgxSessionRepository) FindOpenSession(ctx context.Context) (*domain.CashSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM cash_register_sessions WHERE status = $1;`
	session, err := scanSession(r.Pool.QueryRow(ctx, query, domain.SessionOpen))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoOpenSession
		}
		return nil, fmt.Errorf("failed to find open session: %w", err)
	}
	return session, nil
}

func (r *PgxSessionRepository) FindSessionByID(ctx context.Context, sessionID string) (*domain.CashSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM cash_register_sessions WHERE session_id = $1;`
	session, err := scanSession(r.Pool.QueryRow(ctx, query, sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find session by ID %s: %w", sessionID, err)
	}
	return session, nil
}

func (r *PgxSessionRepository) FindLatestClosedSession(ctx context.Context) (*domain.CashSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM cash_register_sessions
		WHERE status = $1
		ORDER BY closing_date DESC
		LIMIT 1;
	`
	session, err := scanSession(r.Pool.QueryRow(ctx, query, domain.SessionClosed))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find latest closed session: %w", err)
	}
	return session, nil
}

// CloseSession persists the reconciliation snapshot and flips the session to
// CLOSED in one database transaction. The status transition is conditional, so
// two concurrent closers cannot both succeed.
func (r *PgxSessionRepository) CloseSession(ctx context.Context, session domain.CashSession, recons []domain.VaultReconciliation) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	updateQuery := `
		UPDATE cash_register_sessions
		SET status = $2,
			closed_by = $3,
			closing_date = $4,
			closing_balance_global = $5,
			last_updated_at = $6,
			last_updated_by = $7
		WHERE session_id = $1 AND status = $8;
	`
	m := mapping.ToModelCashSession(session)
	tag, err := tx.Exec(ctx, updateQuery,
		m.SessionID,
		domain.SessionClosed,
		m.ClosedBy,
		m.ClosingDate,
		m.ClosingBalanceGlobal,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		domain.SessionOpen,
	)
	if err != nil {
		return fmt.Errorf("failed to close session %s: %w", session.SessionID, err)
	}
	if tag.RowsAffected() == 0 {
		if _, findErr := r.FindSessionByID(ctx, session.SessionID); findErr != nil {
			return findErr
		}
		return fmt.Errorf("%w: session %s is not open", apperrors.ErrConflict, session.SessionID)
	}

	insertQuery := `
		INSERT INTO session_reconciliations (
			session_id, vault_id, vault_name, system_balance, real_balance, variance, billetage
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, recon := range recons {
		rm, mapErr := mapping.ToModelVaultReconciliation(recon)
		if mapErr != nil {
			return fmt.Errorf("failed to serialize reconciliation for vault %s: %w", recon.VaultID, mapErr)
		}
		_, err := tx.Exec(ctx, insertQuery,
			rm.SessionID,
			rm.VaultID,
			rm.VaultName,
			rm.SystemBalance,
			rm.RealBalance,
			rm.Variance,
			rm.Billetage,
		)
		if err != nil {
			return fmt.Errorf("failed to save reconciliation for vault %s: %w", recon.VaultID, err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxSessionRepository) FindReconciliations(ctx context.Context, sessionID string) ([]domain.VaultReconciliation, error) {
	query := `
		SELECT session_id, vault_id, vault_name, system_balance, real_balance, variance, billetage
		FROM session_reconciliations
		WHERE session_id = $1
		ORDER BY vault_name;
	`
	rows, err := r.Pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reconciliations for session %s: %w", sessionID, err)
	}
	defer rows.Close()

	var recons []domain.VaultReconciliation
	for rows.Next() {
		var m models.VaultReconciliation
		err := rows.Scan(
			&m.SessionID,
			&m.VaultID,
			&m.VaultName,
			&m.SystemBalance,
			&m.RealBalance,
			&m.Variance,
			&m.Billetage,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reconciliation row: %w", err)
		}
		recon, mapErr := mapping.ToDomainVaultReconciliation(m)
		if mapErr != nil {
			return nil, fmt.Errorf("failed to deserialize reconciliation for vault %s: %w", m.VaultID, mapErr)
		}
		recons = append(recons, recon)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading reconciliation rows: %w", err)
	}
	return recons, nil
}
