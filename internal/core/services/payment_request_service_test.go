package services_test

import (
	"context"
	"testing"

	"github.com/fitiavana-dev/treasury_app/internal/apperrors"
	"github.com/fitiavana-dev/treasury_app/internal/core/domain"
	portssvc "github.com/fitiavana-dev/treasury_app/internal/core/ports/services"
	"github.com/fitiavana-dev/treasury_app/internal/core/services"
	"github.com/fitiavana-dev/treasury_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PaymentRequestServiceTestSuite struct {
	suite.Suite
	mockPaymentRepo *MockPaymentRequestRepository
	mockVaultRepo   *MockVaultRepository
	mockSessionRepo *MockSessionRepository
	mockTxnRepo     *MockTransactionRepository
	mockUserRepo    *MockUserRepository
	mockNotifier    *MockNotifier
	service         portssvc.PaymentRequestSvcFacade
}

func (suite *PaymentRequestServiceTestSuite) SetupTest() {
	suite.mockPaymentRepo = new(MockPaymentRequestRepository)
	suite.mockVaultRepo = new(MockVaultRepository)
	suite.mockSessionRepo = new(MockSessionRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockNotifier = new(MockNotifier)
	userSvc := services.NewUserService(suite.mockUserRepo)
	suite.service = services.NewPaymentRequestService(
		suite.mockPaymentRepo,
		suite.mockVaultRepo,
		suite.mockSessionRepo,
		suite.mockTxnRepo,
		userSvc,
		suite.mockNotifier,
	)
	suite.mockNotifier.On("Publish", mock.Anything, mock.Anything, mock.Anything).Maybe()
}

func (suite *PaymentRequestServiceTestSuite) TestCreatePaymentRequest_Success() {
	ctx := context.Background()
	creatorID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, creatorID).Return(econome(creatorID), nil).Once()
	suite.mockPaymentRepo.On("SavePaymentRequest", ctx, mock.MatchedBy(func(r domain.PaymentRequest) bool {
		return r.Status == domain.PaymentPending && r.Beneficiary == "R. Andriamihaja"
	})).Return(nil).Once()

	request, err := suite.service.CreatePaymentRequest(ctx, creatorID, dto.CreatePaymentRequestRequest{
		Beneficiary: "R. Andriamihaja",
		Amount:      decimal.NewFromInt(300000),
		Description: "August salary",
	})

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentPending, request.Status)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentRequestServiceTestSuite) TestCreatePaymentRequest_NonPositiveAmount() {
	ctx := context.Background()
	creatorID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, creatorID).Return(econome(creatorID), nil).Once()

	_, err := suite.service.CreatePaymentRequest(ctx, creatorID, dto.CreatePaymentRequestRequest{
		Beneficiary: "R. Andriamihaja",
		Amount:      decimal.Zero,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PaymentRequestServiceTestSuite) TestPay_GeneratesSalaryExpense() {
	ctx := context.Background()
	executorID := uuid.NewString()
	requestID := uuid.NewString()
	vaultID := uuid.NewString()
	session := &domain.CashSession{SessionID: uuid.NewString(), Status: domain.SessionOpen}
	pending := &domain.PaymentRequest{
		RequestID:   requestID,
		Beneficiary: "R. Andriamihaja",
		Amount:      decimal.NewFromInt(300000),
		Status:      domain.PaymentPending,
	}
	paidTxnID := uuid.NewString()
	paid := &domain.PaymentRequest{
		RequestID:         requestID,
		Beneficiary:       pending.Beneficiary,
		Amount:            pending.Amount,
		Status:            domain.PaymentPaid,
		PaidTransactionID: &paidTxnID,
	}

	suite.mockUserRepo.On("FindUserByID", ctx, executorID).Return(econome(executorID), nil).Once()
	suite.mockPaymentRepo.On("FindPaymentRequestByID", ctx, requestID).Return(pending, nil).Once()
	suite.mockSessionRepo.On("FindOpenSession", ctx).Return(session, nil).Once()
	suite.mockVaultRepo.On("FindVaultByID", ctx, vaultID).Return(&domain.Vault{VaultID: vaultID}, nil).Once()
	suite.mockPaymentRepo.On("MarkPaid", ctx, requestID,
		mock.MatchedBy(func(expense domain.Transaction) bool {
			return expense.Kind == domain.Expense &&
				expense.Category == domain.CategorySalary &&
				expense.Status == domain.StatusValidated &&
				expense.Amount.Equal(pending.Amount) &&
				expense.SessionID != nil && *expense.SessionID == session.SessionID
		}),
		mock.AnythingOfType("repositories.TransactionUpdate"),
	).Return(nil).Once()
	suite.mockPaymentRepo.On("FindPaymentRequestByID", ctx, requestID).Return(paid, nil).Once()

	result, expense, err := suite.service.Pay(ctx, executorID, requestID, vaultID)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentPaid, result.Status)
	suite.Equal(domain.CategorySalary, expense.Category)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentRequestServiceTestSuite) TestPay_NoOpenSession() {
	ctx := context.Background()
	executorID := uuid.NewString()
	requestID := uuid.NewString()
	pending := &domain.PaymentRequest{RequestID: requestID, Status: domain.PaymentPending, Amount: decimal.NewFromInt(100)}

	suite.mockUserRepo.On("FindUserByID", ctx, executorID).Return(econome(executorID), nil).Once()
	suite.mockPaymentRepo.On("FindPaymentRequestByID", ctx, requestID).Return(pending, nil).Once()
	suite.mockSessionRepo.On("FindOpenSession", ctx).Return(nil, apperrors.ErrNoOpenSession).Once()

	_, _, err := suite.service.Pay(ctx, executorID, requestID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNoOpenSession)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "MarkPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentRequestServiceTestSuite) TestPay_SecondPayerLoses() {
	ctx := context.Background()
	executorID := uuid.NewString()
	requestID := uuid.NewString()
	vaultID := uuid.NewString()
	session := &domain.CashSession{SessionID: uuid.NewString(), Status: domain.SessionOpen}
	pending := &domain.PaymentRequest{RequestID: requestID, Status: domain.PaymentPending, Amount: decimal.NewFromInt(100)}

	suite.mockUserRepo.On("FindUserByID", ctx, executorID).Return(econome(executorID), nil).Once()
	suite.mockPaymentRepo.On("FindPaymentRequestByID", ctx, requestID).Return(pending, nil).Once()
	suite.mockSessionRepo.On("FindOpenSession", ctx).Return(session, nil).Once()
	suite.mockVaultRepo.On("FindVaultByID", ctx, vaultID).Return(&domain.Vault{VaultID: vaultID}, nil).Once()
	suite.mockPaymentRepo.On("MarkPaid", ctx, requestID, mock.Anything, mock.AnythingOfType("repositories.TransactionUpdate")).
		Return(apperrors.ErrConflict).Once()

	_, _, err := suite.service.Pay(ctx, executorID, requestID, vaultID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *PaymentRequestServiceTestSuite) TestListPaymentRequests_UnknownStatus() {
	ctx := context.Background()
	status := "SHIPPED"

	_, err := suite.service.ListPaymentRequests(ctx, &status)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PaymentRequestServiceTestSuite) TestListPaymentRequests_StatusFilter() {
	ctx := context.Background()
	status := "PENDING"
	pendingStatus := domain.PaymentPending

	suite.mockPaymentRepo.On("ListPaymentRequests", ctx, &pendingStatus).
		Return([]domain.PaymentRequest{{RequestID: uuid.NewString(), Status: domain.PaymentPending}}, nil).Once()

	requests, err := suite.service.ListPaymentRequests(ctx, &status)

	suite.Require().NoError(err)
	suite.Len(requests, 1)
}

func TestPaymentRequestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentRequestServiceTestSuite))
}
