package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/fitiavana-dev/treasury_app/internal/core/domain"
	portsrepo "github.com/fitiavana-dev/treasury_app/internal/core/ports/repositories"
	portssvc "github.com/fitiavana-dev/treasury_app/internal/core/ports/services"
	"github.com/fitiavana-dev/treasury_app/internal/dto"
	"github.com/fitiavana-dev/treasury_app/internal/middleware"
	"github.com/google/uuid"
)

// VaultService is the vault registry. Balances are always derived from the
// validated ledger, never stored.
type VaultService struct {
	vaultRepo portsrepo.VaultRepository
	txnRepo   portsrepo.TransactionRepository
}

// NewVaultService creates a new VaultService.
func NewVaultService(vr portsrepo.VaultRepository, tr portsrepo.TransactionRepository) portssvc.VaultSvcFacade {
	return &VaultService{vaultRepo: vr, txnRepo: tr}
}

var _ portssvc.VaultSvcFacade = (*VaultService)(nil)

func (s *VaultService) CreateVault(ctx context.Context, creatorID string, req dto.CreateVaultRequest) (*domain.Vault, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	vault := domain.Vault{
		VaultID:        uuid.NewString(),
		Name:           req.Name,
		Kind:           domain.VaultKind(req.Kind),
		OpeningBalance: req.OpeningBalance,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.vaultRepo.SaveVault(ctx, vault); err != nil {
		logger.Error("Failed to save vault", slog.String("error", err.Error()), slog.String("vault_name", req.Name))
		return nil, err
	}

	logger.Info("Vault created", slog.String("vault_id", vault.VaultID), slog.String("kind", req.Kind))
	return &vault, nil
}

func (s *VaultService) GetVault(ctx context.Context, vaultID string) (*domain.Vault, error) {
	return s.vaultRepo.FindVaultByID(ctx, vaultID)
}

func (s *VaultService) ListVaults(ctx context.Context) ([]domain.Vault, error) {
	return s.vaultRepo.ListVaults(ctx)
}

// Balance derives a vault's balance as opening balance plus the signed sum of
// its validated transactions.
func (s *VaultService) Balance(ctx context.Context, vaultID string) (*domain.VaultBalance, error) {
	vault, err := s.vaultRepo.FindVaultByID(ctx, vaultID)
	if err != nil {
		return nil, err
	}

	sum, err := s.txnRepo.SumValidatedByVault(ctx, vaultID)
	if err != nil {
		return nil, err
	}

	return &domain.VaultBalance{
		Vault:   *vault,
		Balance: vault.OpeningBalance.Add(sum),
	}, nil
}

// Balances derives every vault's balance.
func (s *VaultService) Balances(ctx context.Context) ([]domain.VaultBalance, error) {
	vaults, err := s.vaultRepo.ListVaults(ctx)
	if err != nil {
		return nil, err
	}

	balances := make([]domain.VaultBalance, 0, len(vaults))
	for _, vault := range vaults {
		sum, err := s.txnRepo.SumValidatedByVault(ctx, vault.VaultID)
		if err != nil {
			return nil, err
		}
		balances = append(balances, domain.VaultBalance{
			Vault:   vault,
			Balance: vault.OpeningBalance.Add(sum),
		})
	}
	return balances, nil
}
