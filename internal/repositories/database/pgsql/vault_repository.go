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

type PgxVaultRepository struct {
	BaseRepository
}

// newPgxVaultRepository creates a new repository for vault data.
func newPgxVaultRepository(pool *pgxpool.Pool) portsrepo.VaultRepository {
	return &PgxVaultRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.VaultRepository = (*PgxVaultRepository)(nil)

const vaultColumns = `
	vault_id, name, kind, opening_balance,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanVault(row pgx.Row) (*domain.Vault, error) {
	var m models.Vault
	err := row.Scan(
		&m.VaultID,
		&m.Name,
		&m.Kind,
		&m.OpeningBalance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	vault := mapping.ToDomainVault(m)
	return &vault, nil
}

func (r *PgxVaultRepository) SaveVault(ctx context.Context, vault domain.Vault) error {
	query := `
		INSERT INTO vaults (` + vaultColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	m := mapping.ToModelVault(vault)
	_, err := r.Pool.Exec(ctx, query,
		m.VaultID,
		m.Name,
		m.Kind,
		m.OpeningBalance,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: vault with name %q already exists", apperrors.ErrDuplicate, vault.Name)
		}
		return fmt.Errorf("failed to save vault %s: %w", vault.VaultID, err)
	}
	return nil
}

func (r *PgxVaultRepository) FindVaultByID(ctx context.Context, vaultID string) (*domain.Vault, error) {
	query := `SELECT ` + vaultColumns + ` FROM vaults WHERE vault_id = $1;`
	vault, err := scanVault(r.Pool.QueryRow(ctx, query, vaultID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find vault by ID %s: %w", vaultID, err)
	}
	return vault, nil
}

func (r *PgxVaultRepository) ListVaults(ctx context.Context) ([]domain.Vault, error) {
	query := `SELECT ` + vaultColumns + ` FROM vaults ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list vaults: %w", err)
	}
	defer rows.Close()

	var vaults []domain.Vault
	for rows.Next() {
		vault, scanErr := scanVault(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan vault row: %w", scanErr)
		}
		vaults = append(vaults, *vault)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading vault rows: %w", err)
	}
	return vaults, nil
}
