package setup

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	apperrors "github.com/frahmantamala/airline-admin/internal"
	"github.com/frahmantamala/airline-admin/internal/auth"
	"github.com/frahmantamala/airline-admin/internal/core/common/validation"
	userDatamodel "github.com/frahmantamala/airline-admin/internal/core/datamodel/user"
	"github.com/frahmantamala/airline-admin/internal/user"
	"github.com/frahmantamala/airline-admin/pkg/dberror"
)

// RepositoryAPI creates the owner account. CreateOwner returns
// ErrSetupCompleted when an owner already exists.
type RepositoryAPI interface {
	OwnerExists(ctx context.Context) (bool, error)
	CreateOwner(ctx context.Context, u *userDatamodel.User) error
}

var createMessages = dberror.Messages{
	Constraints: map[string]string{
		"users_email_unique":            "An account with this email already exists",
		"users_callsign_unique":         "This callsign is already taken",
		"users_discord_username_unique": "This Discord username is already taken",
	},
	Fallback: "Failed to create admin account",
}

type Service struct {
	repo       RepositoryAPI
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, bcryptCost int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Completed reports whether an owner account exists.
func (s *Service) Completed(ctx context.Context) (bool, error) {
	ok, err := s.repo.OwnerExists(ctx)
	if err != nil {
		return false, apperrors.NewInternalError("Failed to check setup status", err)
	}
	return ok, nil
}

// CreateAdminAccount creates the first owner account.
func (s *Service) CreateAdminAccount(ctx context.Context, req CreateAdminRequest) (*CreateAdminResponse, error) {
	req.Normalize()
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to create admin account", err)
	}

	discord := req.DiscordUsername
	owner := &userDatamodel.User{
		ID:              uuid.New().String(),
		Name:            req.Name,
		Email:           req.Email,
		PasswordHash:    hash,
		DiscordUsername: &discord,
		Role:            user.EncodeRoles([]string{user.RoleOwner}),
		Verified:        true,
	}

	if err := s.repo.CreateOwner(ctx, owner); err != nil {
		s.logger.Error("failed to create admin account", "email", req.Email, "error", err)
		return nil, dberror.Map(err, createMessages)
	}

	s.logger.Info("owner account created", "user_id", owner.ID)
	return &CreateAdminResponse{
		Message: "Admin account created successfully",
		UserID:  owner.ID,
	}, nil
}
