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
	"github.com/fitiavana-dev/treasury_app/internal/utils"
	"github.com/google/uuid"
)

// UserService handles identity, registration and capability checks.
type UserService struct {
	userRepo portsrepo.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(ur portsrepo.UserRepository) portssvc.UserSvcFacade {
	return &UserService{userRepo: ur}
}

// Ensure UserService implements the portssvc.UserSvcFacade interface
var _ portssvc.UserSvcFacade = (*UserService)(nil)

// CreateUser registers a new operator with a hashed password. Roles grant
// workflow capabilities, so only an ADMIN creator may mint accounts.
func (s *UserService) CreateUser(ctx context.Context, creatorID string, req dto.CreateUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	creator, err := s.userRepo.FindUserByID(ctx, creatorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %s not found", apperrors.ErrUnauthorized, creatorID)
		}
		return nil, err
	}
	if creator.Role != domain.RoleAdmin {
		logger.Warn("User creation denied", slog.String("creator_id", creatorID), slog.String("creator_role", string(creator.Role)))
		return nil, fmt.Errorf("%w: only an administrator can create users", apperrors.ErrForbidden)
	}

	user, err := s.newUser(req, creator.UserID)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.userRepo.SaveUser(ctx, *user); err != nil {
		logger.Error("Failed to save user", slog.String("error", err.Error()), slog.String("username", req.Username))
		return nil, err
	}

	logger.Info("User created", slog.String("user_id", user.UserID), slog.String("role", req.Role))
	return user, nil
}

// EnsureAdmin creates the named ADMIN account when it is absent, so a fresh
// deployment has a creator for every other account. Existing accounts are
// left untouched.
func (s *UserService) EnsureAdmin(ctx context.Context, username, password string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.userRepo.FindUserByUsername(ctx, username); err == nil {
		return nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	user, err := s.newUser(dto.CreateUserRequest{
		Name:     username,
		Username: username,
		Password: password,
		Role:     string(domain.RoleAdmin),
	}, "system")
	if err != nil {
		return err
	}

	if err := s.userRepo.SaveUser(ctx, *user); err != nil {
		// A concurrent boot may have won the insert.
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil
		}
		return err
	}

	logger.Info("Bootstrap admin created", slog.String("user_id", user.UserID), slog.String("username", username))
	return nil
}

func (s *UserService) newUser(req dto.CreateUserRequest, createdBy string) (*domain.User, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	return &domain.User{
		UserID:       uuid.NewString(),
		Name:         req.Name,
		Username:     req.Username,
		PasswordHash: hash,
		Role:         domain.UserRole(req.Role),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     createdBy,
			LastUpdatedAt: now,
			LastUpdatedBy: createdBy,
		},
	}, nil
}

func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.userRepo.FindUserByUsername(ctx, username)
}

// Require loads the user and verifies the capability against the persisted
// role. Token claims are never consulted.
func (s *UserService) Require(ctx context.Context, userID string, cap domain.Capability) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %s not found", apperrors.ErrUnauthorized, userID)
		}
		return nil, err
	}

	if !user.HasCapability(cap) {
		logger.Warn("Capability denied", slog.String("user_id", userID), slog.String("role", string(user.Role)), slog.String("capability", string(cap)))
		return nil, fmt.Errorf("%w: role %s lacks %s", apperrors.ErrForbidden, user.Role, cap)
	}

	return user, nil
}
