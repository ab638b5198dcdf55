package services_test

import (
	"context"
	"testing"

	"github.com/fitiavana-dev/treasury_app/internal/apperrors"
	"github.com/fitiavana-dev/treasury_app/internal/core/domain"
	portsrepo "github.com/fitiavana-dev/treasury_app/internal/core/ports/repositories"
	portssvc "github.com/fitiavana-dev/treasury_app/internal/core/ports/services"
	"github.com/fitiavana-dev/treasury_app/internal/core/services"
	"github.com/fitiavana-dev/treasury_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ApprovalServiceTestSuite struct {
	suite.Suite
	mockTxnRepo     *MockTransactionRepository
	mockVaultRepo   *MockVaultRepository
	mockSessionRepo *MockSessionRepository
	mockUserRepo    *MockUserRepository
	mockNotifier    *MockNotifier
	service         portssvc.ApprovalSvcFacade
}

func (suite *ApprovalServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockVaultRepo = new(MockVaultRepository)
	suite.mockSessionRepo = new(MockSessionRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockNotifier = new(MockNotifier)
	userSvc := services.NewUserService(suite.mockUserRepo)
	suite.service = services.NewApprovalService(
		suite.mockTxnRepo,
		suite.mockVaultRepo,
		suite.mockSessionRepo,
		userSvc,
		suite.mockNotifier,
	)
	suite.mockNotifier.On("Publish", mock.Anything, mock.Anything, mock.Anything).Maybe()
}

// --- Request Tests ---

func (suite *ApprovalServiceTestSuite) TestRequest_ExpenseDefersVaultBinding() {
	ctx := context.Background()
	requesterID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, requesterID).Return(econome(requesterID), nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Status == domain.StatusPending &&
			txn.Kind == domain.Expense &&
			txn.VaultID == nil &&
			txn.RequesterID == requesterID
	})).Return(nil).Once()

	txn, err := suite.service.Request(ctx, requesterID, dto.CreateRequestRequest{
		Kind:     "EXPENSE",
		Category: "FOURNITURES",
		Amount:   decimal.NewFromInt(15000),
	})

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPending, txn.Status)
	suite.Nil(txn.VaultID)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestRequest_NonPositiveAmount() {
	ctx := context.Background()
	requesterID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, requesterID).Return(econome(requesterID), nil).Once()

	_, err := suite.service.Request(ctx, requesterID, dto.CreateRequestRequest{
		Kind:     "EXPENSE",
		Category: "FOURNITURES",
		Amount:   decimal.NewFromInt(-5),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestRequest_DirectorCannotRequest() {
	ctx := context.Background()
	requesterID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, requesterID).Return(director(requesterID), nil).Once()

	_, err := suite.service.Request(ctx, requesterID, dto.CreateRequestRequest{
		Kind:     "EXPENSE",
		Category: "FOURNITURES",
		Amount:   decimal.NewFromInt(100),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- RecordIncome Tests ---

func (suite *ApprovalServiceTestSuite) TestRecordIncome_BindsOpenSession() {
	ctx := context.Background()
	operatorID := uuid.NewString()
	vaultID := uuid.NewString()
	session := &domain.CashSession{SessionID: uuid.NewString(), Status: domain.SessionOpen}

	suite.mockUserRepo.On("FindUserByID", ctx, operatorID).Return(econome(operatorID), nil).Once()
	suite.mockSessionRepo.On("FindOpenSession", ctx).Return(session, nil).Once()
	suite.mockVaultRepo.On("FindVaultByID", ctx, vaultID).Return(&domain.Vault{VaultID: vaultID, Kind: domain.VaultCash}, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Status == domain.StatusValidated &&
			txn.Kind == domain.Income &&
			txn.SessionID != nil && *txn.SessionID == session.SessionID &&
			txn.ExecutorID != nil && *txn.ExecutorID == operatorID
	})).Return(nil).Once()

	txn, err := suite.service.RecordIncome(ctx, operatorID, dto.RecordIncomeRequest{
		Category: "ECOLAGE",
		Amount:   decimal.NewFromInt(20000),
		VaultID:  vaultID,
	})

	suite.Require().NoError(err)
	suite.Equal(domain.StatusValidated, txn.Status)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestRecordIncome_NoOpenSession() {
	ctx := context.Background()
	operatorID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, operatorID).Return(econome(operatorID), nil).Once()
	suite.mockSessionRepo.On("FindOpenSession", ctx).Return(nil, apperrors.ErrNoOpenSession).Once()

	_, err := suite.service.RecordIncome(ctx, operatorID, dto.RecordIncomeRequest{
		Category: "ECOLAGE",
		Amount:   decimal.NewFromInt(20000),
		VaultID:  uuid.NewString(),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNoOpenSession)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

// --- Authorize / Reject Tests ---

func (suite *ApprovalServiceTestSuite) TestAuthorize_Success() {
	ctx := context.Background()
	approverID := uuid.NewString()
	txnID := uuid.NewString()
	authorized := &domain.Transaction{TransactionID: txnID, Status: domain.StatusAuthorized}

	suite.mockUserRepo.On("FindUserByID", ctx, approverID).Return(director(approverID), nil).Once()
	suite.mockTxnRepo.On("TransitionStatus", ctx, txnID, domain.StatusPending, domain.StatusAuthorized, mock.Anything).
		Return(authorized, nil).Once()

	txn, err := suite.service.Authorize(ctx, approverID, txnID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusAuthorized, txn.Status)
}

func (suite *ApprovalServiceTestSuite) TestAuthorize_LostRaceReturnsConflict() {
	ctx := context.Background()
	approverID := uuid.NewString()
	txnID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, approverID).Return(director(approverID), nil).Once()
	suite.mockTxnRepo.On("TransitionStatus", ctx, txnID, domain.StatusPending, domain.StatusAuthorized, mock.Anything).
		Return(nil, apperrors.ErrConflict).Once()

	_, err := suite.service.Authorize(ctx, approverID, txnID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *ApprovalServiceTestSuite) TestReject_EconomeCannotAuthorize() {
	ctx := context.Background()
	approverID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, approverID).Return(econome(approverID), nil).Once()

	_, err := suite.service.Reject(ctx, approverID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Execute Tests ---

func (suite *ApprovalServiceTestSuite) TestExecute_ExpenseBindsVaultAndSession() {
	ctx := context.Background()
	executorID := uuid.NewString()
	txnID := uuid.NewString()
	vaultID := uuid.NewString()
	session := &domain.CashSession{SessionID: uuid.NewString(), Status: domain.SessionOpen}
	authorized := &domain.Transaction{TransactionID: txnID, Kind: domain.Expense, Status: domain.StatusAuthorized}
	validated := &domain.Transaction{TransactionID: txnID, Kind: domain.Expense, Status: domain.StatusValidated, VaultID: &vaultID}

	suite.mockUserRepo.On("FindUserByID", ctx, executorID).Return(econome(executorID), nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, txnID).Return(authorized, nil).Once()
	suite.mockVaultRepo.On("FindVaultByID", ctx, vaultID).Return(&domain.Vault{VaultID: vaultID}, nil).Once()
	suite.mockSessionRepo.On("FindOpenSession", ctx).Return(session, nil).Once()
	suite.mockTxnRepo.On("TransitionStatus", ctx, txnID, domain.StatusAuthorized, domain.StatusValidated,
		mock.MatchedBy(func(upd portsrepo.TransactionUpdate) bool {
			return upd.VaultID != nil && *upd.VaultID == vaultID &&
				upd.SessionID != nil && *upd.SessionID == session.SessionID &&
				upd.ExecutorID != nil && *upd.ExecutorID == executorID
		})).Return(validated, nil).Once()

	txn, err := suite.service.Execute(ctx, executorID, txnID, vaultID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusValidated, txn.Status)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestExecute_TransferKindRefused() {
	ctx := context.Background()
	executorID := uuid.NewString()
	txnID := uuid.NewString()
	transfer := &domain.Transaction{TransactionID: txnID, Kind: domain.Transfer, Status: domain.StatusAuthorized}

	suite.mockUserRepo.On("FindUserByID", ctx, executorID).Return(econome(executorID), nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, txnID).Return(transfer, nil).Once()

	_, err := suite.service.Execute(ctx, executorID, txnID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ApprovalServiceTestSuite) TestExecute_DoubleExecutionLosesRace() {
	ctx := context.Background()
	executorID := uuid.NewString()
	txnID := uuid.NewString()
	vaultID := uuid.NewString()
	alreadyValidated := &domain.Transaction{TransactionID: txnID, Kind: domain.Income, Status: domain.StatusAuthorized}

	suite.mockUserRepo.On("FindUserByID", ctx, executorID).Return(econome(executorID), nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, txnID).Return(alreadyValidated, nil).Once()
	suite.mockVaultRepo.On("FindVaultByID", ctx, vaultID).Return(&domain.Vault{VaultID: vaultID}, nil).Once()
	suite.mockTxnRepo.On("TransitionStatus", ctx, txnID, domain.StatusAuthorized, domain.StatusValidated, mock.Anything).
		Return(nil, apperrors.ErrConflict).Once()

	_, err := suite.service.Execute(ctx, executorID, txnID, vaultID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func TestApprovalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ApprovalServiceTestSuite))
}
