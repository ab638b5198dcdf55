package services_test

import (
	"context"
	"testing"

	"github.com/fitiavana-dev/treasury_app/internal/core/domain"
	portssvc "github.com/fitiavana-dev/treasury_app/internal/core/ports/services"
	"github.com/fitiavana-dev/treasury_app/internal/core/services"
	"github.com/fitiavana-dev/treasury_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type VaultServiceTestSuite struct {
	suite.Suite
	mockVaultRepo *MockVaultRepository
	mockTxnRepo   *MockTransactionRepository
	service       portssvc.VaultSvcFacade
}

func (suite *VaultServiceTestSuite) SetupTest() {
	suite.mockVaultRepo = new(MockVaultRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewVaultService(suite.mockVaultRepo, suite.mockTxnRepo)
}

func (suite *VaultServiceTestSuite) TestCreateVault_Success() {
	ctx := context.Background()
	creatorID := uuid.NewString()

	suite.mockVaultRepo.On("SaveVault", ctx, mock.MatchedBy(func(v domain.Vault) bool {
		return v.Name == "Caisse" && v.Kind == domain.VaultCash && v.OpeningBalance.Equal(decimal.NewFromInt(50000))
	})).Return(nil).Once()

	vault, err := suite.service.CreateVault(ctx, creatorID, dto.CreateVaultRequest{
		Name:           "Caisse",
		Kind:           "CASH",
		OpeningBalance: decimal.NewFromInt(50000),
	})

	suite.Require().NoError(err)
	suite.NotEmpty(vault.VaultID)
	suite.Equal(creatorID, vault.CreatedBy)
	suite.mockVaultRepo.AssertExpectations(suite.T())
}

func (suite *VaultServiceTestSuite) TestBalance_DerivedFromOpeningPlusValidatedSum() {
	ctx := context.Background()
	vaultID := uuid.NewString()
	vault := &domain.Vault{VaultID: vaultID, Name: "Caisse", OpeningBalance: decimal.NewFromInt(50000)}

	suite.mockVaultRepo.On("FindVaultByID", ctx, vaultID).Return(vault, nil).Once()
	suite.mockTxnRepo.On("SumValidatedByVault", ctx, vaultID).Return(decimal.NewFromInt(20000), nil).Once()

	balance, err := suite.service.Balance(ctx, vaultID)

	suite.Require().NoError(err)
	suite.True(balance.Balance.Equal(decimal.NewFromInt(70000)))
}

func (suite *VaultServiceTestSuite) TestBalance_IdempotentDerivation() {
	ctx := context.Background()
	vaultID := uuid.NewString()
	vault := &domain.Vault{VaultID: vaultID, Name: "Caisse", OpeningBalance: decimal.NewFromInt(50000)}

	suite.mockVaultRepo.On("FindVaultByID", ctx, vaultID).Return(vault, nil).Twice()
	suite.mockTxnRepo.On("SumValidatedByVault", ctx, vaultID).Return(decimal.NewFromInt(5000), nil).Twice()

	first, err := suite.service.Balance(ctx, vaultID)
	suite.Require().NoError(err)
	second, err := suite.service.Balance(ctx, vaultID)
	suite.Require().NoError(err)

	suite.True(first.Balance.Equal(second.Balance))
}

func (suite *VaultServiceTestSuite) TestBalances_AllVaults() {
	ctx := context.Background()
	caisse := domain.Vault{VaultID: uuid.NewString(), Name: "Caisse", OpeningBalance: decimal.NewFromInt(50000)}
	banque := domain.Vault{VaultID: uuid.NewString(), Name: "Banque", OpeningBalance: decimal.Zero}

	suite.mockVaultRepo.On("ListVaults", ctx).Return([]domain.Vault{caisse, banque}, nil).Once()
	suite.mockTxnRepo.On("SumValidatedByVault", ctx, caisse.VaultID).Return(decimal.NewFromInt(-5000), nil).Once()
	suite.mockTxnRepo.On("SumValidatedByVault", ctx, banque.VaultID).Return(decimal.NewFromInt(10000), nil).Once()

	balances, err := suite.service.Balances(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(balances, 2)
	suite.True(balances[0].Balance.Equal(decimal.NewFromInt(45000)))
	suite.True(balances[1].Balance.Equal(decimal.NewFromInt(10000)))
}

func TestVaultServiceTestSuite(t *testing.T) {
	suite.Run(t, new(VaultServiceTestSuite))
}
