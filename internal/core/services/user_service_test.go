package services_test

import (
	"context"
	"testing"

	"github.com/fitiavana-dev/treasury_app/internal/apperrors"
	"github.com/fitiavana-dev/treasury_app/internal/core/domain"
	portssvc "github.com/fitiavana-dev/treasury_app/internal/core/ports/services"
	"github.com/fitiavana-dev/treasury_app/internal/core/services"
	"github.com/fitiavana-dev/treasury_app/internal/dto"
	"github.com/fitiavana-dev/treasury_app/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
}

func (suite *UserServiceTestSuite) TestCreateUser_HashesPassword() {
	ctx := context.Background()
	adminID := uuid.NewString()
	password := "super-secret-pw"

	suite.mockUserRepo.On("FindUserByID", ctx, adminID).
		Return(&domain.User{UserID: adminID, Role: domain.RoleAdmin}, nil).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Username == "econome1" &&
			user.Role == domain.RoleEconome &&
			user.CreatedBy == adminID &&
			user.PasswordHash != password &&
			utils.CheckPasswordHash(password, user.PasswordHash)
	})).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, adminID, dto.CreateUserRequest{
		Name:     "Econome One",
		Username: "econome1",
		Password: password,
		Role:     "ECONOME",
	})

	suite.Require().NoError(err)
	suite.NotEmpty(user.UserID)
	suite.NotEqual(password, user.PasswordHash)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateUsername() {
	ctx := context.Background()
	adminID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, adminID).
		Return(&domain.User{UserID: adminID, Role: domain.RoleAdmin}, nil).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateUser(ctx, adminID, dto.CreateUserRequest{
		Name:     "Econome One",
		Username: "econome1",
		Password: "super-secret-pw",
		Role:     "ECONOME",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *UserServiceTestSuite) TestCreateUser_NonAdminCreatorForbidden() {
	ctx := context.Background()
	economeID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, economeID).Return(econome(economeID), nil).Once()

	_, err := suite.service.CreateUser(ctx, economeID, dto.CreateUserRequest{
		Name:     "Shadow Director",
		Username: "director2",
		Password: "super-secret-pw",
		Role:     "DIRECTOR",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateUser_UnknownCreatorUnauthorized() {
	ctx := context.Background()
	creatorID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, creatorID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateUser(ctx, creatorID, dto.CreateUserRequest{
		Name:     "Anyone",
		Username: "anyone",
		Password: "super-secret-pw",
		Role:     "ADMIN",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestEnsureAdmin_SeedsMissingAccount() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByUsername", ctx, "admin").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Username == "admin" &&
			user.Role == domain.RoleAdmin &&
			utils.CheckPasswordHash("first-secret", user.PasswordHash)
	})).Return(nil).Once()

	err := suite.service.EnsureAdmin(ctx, "admin", "first-secret")

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestEnsureAdmin_ExistingAccountUntouched() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByUsername", ctx, "admin").
		Return(&domain.User{UserID: uuid.NewString(), Username: "admin", Role: domain.RoleAdmin}, nil).Once()

	err := suite.service.EnsureAdmin(ctx, "admin", "first-secret")

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestRequire_AdminHasAllCapabilities() {
	ctx := context.Background()
	userID := uuid.NewString()
	admin := &domain.User{UserID: userID, Role: domain.RoleAdmin}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(admin, nil).Times(3)

	for _, cap := range []domain.Capability{domain.CanRequest, domain.CanAuthorize, domain.CanExecute} {
		user, err := suite.service.Require(ctx, userID, cap)
		suite.Require().NoError(err)
		suite.Equal(userID, user.UserID)
	}
}

func (suite *UserServiceTestSuite) TestRequire_DirectorCannotExecute() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(director(userID), nil).Once()

	_, err := suite.service.Require(ctx, userID, domain.CanExecute)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *UserServiceTestSuite) TestRequire_UnknownUserIsUnauthorized() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Require(ctx, userID, domain.CanRequest)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
