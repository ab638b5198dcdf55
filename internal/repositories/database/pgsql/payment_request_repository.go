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

type PgxPaymentRequestRepository struct {
	BaseRepository
}

// newPgxPaymentRequestRepository creates a new repository for payment requests.
func newPgxPaymentRequestRepository(pool *pgxpool.Pool) portsrepo.PaymentRequestRepository {
	return &PgxPaymentRequestRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PaymentRequestRepository = (*PgxPaymentRequestRepository)(nil)

const paymentRequestColumns = `
	request_id, beneficiary, amount, description, status, paid_transaction_id,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanPaymentRequest(row pgx.Row) (*domain.PaymentRequest, error) {
	var m models.PaymentRequest
	err := row.Scan(
		&m.RequestID,
		&m.Beneficiary,
		&m.Amount,
		&m.Description,
		&m.Status,
		&m.PaidTransactionID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	req := mapping.ToDomainPaymentRequest(m)
	return &req, nil
}

func (r *PgxPaymentRequestRepository) SavePaymentRequest(ctx context.Context, req domain.PaymentRequest) error {
	query := `
		INSERT INTO payment_requests (` + paymentRequestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	m := mapping.ToModelPaymentRequest(req)
	_, err := r.Pool.Exec(ctx, query,
		m.RequestID,
		m.Beneficiary,
		m.Amount,
		m.Description,
		m.Status,
		m.PaidTransactionID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: payment request with ID %s already exists", apperrors.ErrDuplicate, req.RequestID)
		}
		return fmt.Errorf("failed to save payment request %s: %w", req.RequestID, err)
	}
	return nil
}

func (r *PgxPaymentRequestRepository) FindPaymentRequestByID(ctx context.Context, requestID string) (*domain.PaymentRequest, error) {
	query := `SELECT ` + paymentRequestColumns + ` FROM payment_requests WHERE request_id = $1;`
	req, err := scanPaymentRequest(r.Pool.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment request by ID %s: %w", requestID, err)
	}
	return req, nil
}

func (r *PgxPaymentRequestRepository) ListPaymentRequests(ctx context.Context, status *domain.PaymentRequestStatus) ([]domain.PaymentRequest, error) {
	query := `SELECT ` + paymentRequestColumns + ` FROM payment_requests`
	var args []any
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment requests: %w", err)
	}
	defer rows.Close()

	var reqs []domain.PaymentRequest
	for rows.Next() {
		req, scanErr := scanPaymentRequest(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan payment request row: %w", scanErr)
		}
		reqs = append(reqs, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading payment request rows: %w", err)
	}
	return reqs, nil
}

// MarkPaid transitions the request PENDING->PAID and inserts the generated
// salary expense in one database transaction. Only one of two concurrent
// payers can win the conditional update.
func (r *PgxPaymentRequestRepository) MarkPaid(ctx context.Context, requestID string, expense domain.Transaction, upd portsrepo.TransactionUpdate) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	updateQuery := `
		UPDATE payment_requests
		SET status = $2,
			paid_transaction_id = $3,
			last_updated_at = $4,
			last_updated_by = $5
		WHERE request_id = $1 AND status = $6;
	`
	tag, err := tx.Exec(ctx, updateQuery,
		requestID,
		domain.PaymentPaid,
		expense.TransactionID,
		upd.UpdatedAt,
		upd.UpdatedBy,
		domain.PaymentPending,
	)
	if err != nil {
		return fmt.Errorf("failed to mark payment request %s paid: %w", requestID, err)
	}
	if tag.RowsAffected() == 0 {
		if _, findErr := r.FindPaymentRequestByID(ctx, requestID); findErr != nil {
			return findErr
		}
		return fmt.Errorf("%w: payment request %s is not pending", apperrors.ErrConflict, requestID)
	}

	expenseModel := mapping.ToModelTransaction(expense)
	if _, err := tx.Exec(ctx, insertTransactionQuery, transactionInsertArgs(expenseModel)...); err != nil {
		return fmt.Errorf("failed to insert salary expense for request %s: %w", requestID, err)
	}

	return r.Commit(ctx, tx)
}
