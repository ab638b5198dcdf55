package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fitiavana-dev/treasury_app/internal/apperrors"
	"github.com/fitiavana-dev/treasury_app/internal/core/domain"
	portsrepo "github.com/fitiavana-dev/treasury_app/internal/core/ports/repositories"
	"github.com/fitiavana-dev/treasury_app/internal/dto"
	"github.com/fitiavana-dev/treasury_app/internal/models"
	"github.com/fitiavana-dev/treasury_app/internal/utils/mapping"
	"github.com/fitiavana-dev/treasury_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepository
var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

const transactionColumns = `
	transaction_id, kind, category, description, amount,
	vault_id, destination_vault_id, counterpart_transaction_id, session_id,
	status, requester_id, executor_id,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.Kind,
		&m.Category,
		&m.Description,
		&m.Amount,
		&m.VaultID,
		&m.DestinationVaultID,
		&m.CounterpartTransactionID,
		&m.SessionID,
		&m.Status,
		&m.RequesterID,
		&m.ExecutorID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

const insertTransactionQuery = `
	INSERT INTO transactions (` + transactionColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
`

func transactionInsertArgs(m models.Transaction) []any {
	return []any{
		m.TransactionID,
		m.Kind,
		m.Category,
		m.Description,
		m.Amount,
		m.VaultID,
		m.DestinationVaultID,
		m.CounterpartTransactionID,
		m.SessionID,
		m.Status,
		m.RequesterID,
		m.ExecutorID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	}
}

// SaveTransaction persists a new transaction row.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	_, err := r.Pool.Exec(ctx, insertTransactionQuery, transactionInsertArgs(m)...)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, txn.TransactionID)
		}
		return fmt.Errorf("failed to save transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	return txn, nil
}

// FindTransactionByCounterpartID retrieves the credit leg recorded against a debit leg, if any.
func (r *PgxTransactionRepository) FindTransactionByCounterpartID(ctx context.Context, counterpartID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE counterpart_transaction_id = $1;`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, counterpartID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by counterpart ID %s: %w", counterpartID, err)
	}
	return txn, nil
}

const transitionStatusQuery = `
	UPDATE transactions
	SET status = $3,
		executor_id = COALESCE($4, executor_id),
		vault_id = COALESCE($5, vault_id),
		session_id = COALESCE($6, session_id),
		last_updated_at = $7,
		last_updated_by = $8
	WHERE transaction_id = $1 AND status = $2;
`

// TransitionStatus moves a transaction from one status to another as a single
// conditional update. When the row exists but is no longer in the expected
// status, it returns ErrConflict so the caller knows another actor won.
func (r *PgxTransactionRepository) TransitionStatus(ctx context.Context, transactionID string, from, to domain.TransactionStatus, upd portsrepo.TransactionUpdate) (*domain.Transaction, error) {
	tag, err := r.Pool.Exec(ctx, transitionStatusQuery,
		transactionID, from, to,
		upd.ExecutorID, upd.VaultID, upd.SessionID,
		upd.UpdatedAt, upd.UpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to transition transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a missing row from a lost race.
		current, findErr := r.FindTransactionByID(ctx, transactionID)
		if findErr != nil {
			return nil, findErr
		}
		return nil, fmt.Errorf("%w: transaction %s is %s, expected %s", apperrors.ErrConflict, transactionID, current.Status, from)
	}
	return r.FindTransactionByID(ctx, transactionID)
}

// ExecuteTransfer validates the debit leg and inserts the credit leg in one
// database transaction, so the ledger never exposes a half-finished transfer.
func (r *PgxTransactionRepository) ExecuteTransfer(ctx context.Context, debitTxnID string, upd portsrepo.TransactionUpdate, creditLeg domain.Transaction) (*domain.Transaction, *domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx, transitionStatusQuery,
		debitTxnID, domain.StatusAuthorized, domain.StatusValidated,
		upd.ExecutorID, upd.VaultID, upd.SessionID,
		upd.UpdatedAt, upd.UpdatedBy,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to validate transfer debit leg %s: %w", debitTxnID, err)
	}
	if tag.RowsAffected() == 0 {
		debit, findErr := scanTransaction(tx.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE transaction_id = $1;`, debitTxnID))
		if findErr != nil {
			if errors.Is(findErr, pgx.ErrNoRows) {
				return nil, nil, apperrors.ErrNotFound
			}
			return nil, nil, fmt.Errorf("failed to inspect transfer debit leg %s: %w", debitTxnID, findErr)
		}
		return nil, nil, fmt.Errorf("%w: transfer %s is %s, expected %s", apperrors.ErrConflict, debitTxnID, debit.Status, domain.StatusAuthorized)
	}

	creditModel := mapping.ToModelTransaction(creditLeg)
	if _, err := tx.Exec(ctx, insertTransactionQuery, transactionInsertArgs(creditModel)...); err != nil {
		if isUniqueViolation(err, "uq_transactions_counterpart") {
			return nil, nil, fmt.Errorf("%w: credit leg for transfer %s already recorded", apperrors.ErrDuplicate, debitTxnID)
		}
		return nil, nil, fmt.Errorf("failed to insert transfer credit leg for %s: %w", debitTxnID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}

	debit, err := r.FindTransactionByID(ctx, debitTxnID)
	if err != nil {
		return nil, nil, err
	}
	credit, err := r.FindTransactionByID(ctx, creditLeg.TransactionID)
	if err != nil {
		return nil, nil, err
	}
	return debit, credit, nil
}

// ListTransactions returns a page of transactions matching the given filters,
// newest first, with an opaque token for the next page.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	var conditions []string
	var args []any
	addCondition := func(clause string, value any) {
		args = append(args, value)
		conditions = append(conditions, strings.Replace(clause, "?", "$"+strconv.Itoa(len(args)), 1))
	}

	if params.Kind != nil {
		addCondition("kind = ?", *params.Kind)
	}
	if params.Status != nil {
		addCondition("status = ?", *params.Status)
	}
	if params.VaultID != nil {
		args = append(args, *params.VaultID)
		ph := "$" + strconv.Itoa(len(args))
		conditions = append(conditions, "(vault_id = "+ph+" OR destination_vault_id = "+ph+")")
	}
	if params.SessionID != nil {
		addCondition("session_id = ?", *params.SessionID)
	}
	if params.From != nil {
		addCondition("created_at >= ?", *params.From)
	}
	if params.To != nil {
		addCondition("created_at <= ?", *params.To)
	}

	if params.NextToken != nil && *params.NextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*params.NextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCreatedAt, lastID)
		conditions = append(conditions, fmt.Sprintf("(created_at, transaction_id) < ($%d, $%d)", len(args)-1, len(args)))
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, limit+1)
	query += " ORDER BY created_at DESC, transaction_id DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var results []domain.Transaction
	for rows.Next() {
		txn, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", scanErr)
		}
		results = append(results, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed reading transaction rows: %w", err)
	}

	var nextTokenVal *string
	if len(results) > limit {
		results = results[:limit]
		last := results[len(results)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.TransactionID)
		nextTokenVal = &token
	}
	return results, nextTokenVal, nil
}

// CountByStatus returns the number of transactions in the given status.
func (r *PgxTransactionRepository) CountByStatus(ctx context.Context, status domain.TransactionStatus) (int64, error) {
	var count int64
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE status = $1;`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions by status %s: %w", status, err)
	}
	return count, nil
}

// SumValidatedByVault returns the signed sum of validated movements touching a
// vault. Transfer legs are stored signed, income adds, expense subtracts.
func (r *PgxTransactionRepository) SumValidatedByVault(ctx context.Context, vaultID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(
			CASE kind
				WHEN 'INCOME' THEN amount
				WHEN 'EXPENSE' THEN -amount
				ELSE amount
			END
		), 0)
		FROM transactions
		WHERE vault_id = $1 AND status = $2;
	`
	var sum decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, vaultID, domain.StatusValidated).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum validated transactions for vault %s: %w", vaultID, err)
	}
	return sum, nil
}

// SumValidatedByKindForSession returns, per kind, the total validated amount
// recorded during a session. Amounts are as stored, so transfer legs are signed.
func (r *PgxTransactionRepository) SumValidatedByKindForSession(ctx context.Context, sessionID string) (map[domain.TransactionKind]decimal.Decimal, error) {
	query := `
		SELECT kind, COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE session_id = $1 AND status = $2
		GROUP BY kind;
	`
	rows, err := r.Pool.Query(ctx, query, sessionID, domain.StatusValidated)
	if err != nil {
		return nil, fmt.Errorf("failed to sum validated transactions for session %s: %w", sessionID, err)
	}
	defer rows.Close()

	sums := make(map[domain.TransactionKind]decimal.Decimal)
	for rows.Next() {
		var kind domain.TransactionKind
		var total decimal.Decimal
		if err := rows.Scan(&kind, &total); err != nil {
			return nil, fmt.Errorf("failed to scan session sum row: %w", err)
		}
		sums[kind] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading session sum rows: %w", err)
	}
	return sums, nil
}
