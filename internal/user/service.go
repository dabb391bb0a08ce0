package user

import (
	"context"
	"log/slog"
	"time"

	apperrors "github.com/frahmantamala/airline-admin/internal"
	userDatamodel "github.com/frahmantamala/airline-admin/internal/core/datamodel/user"
	"github.com/frahmantamala/airline-admin/internal/core/events"
	"github.com/frahmantamala/airline-admin/internal/inactivity"
	"github.com/frahmantamala/airline-admin/pkg/dberror"
)

type RepositoryAPI interface {
	List(ctx context.Context, filter ListFilter) ([]*userDatamodel.User, int64, error)
	// GetByID returns nil when the user does not exist.
	GetByID(ctx context.Context, id string) (*userDatamodel.User, error)
	UpdateBan(ctx context.Context, id string, banned bool, reason *string, expires *int64) error
	UpdateRoles(ctx context.Context, id string, roles string) error
	Delete(ctx context.Context, id string) error
}

// TimeframeResolver supplies the inactivity cutoff and callsign prefix.
type TimeframeResolver interface {
	Timeframe(ctx context.Context) (inactivity.Timeframe, string, error)
}

type Service struct {
	repo      RepositoryAPI
	timeframe TimeframeResolver
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(repo RepositoryAPI, timeframe TimeframeResolver, publisher events.Publisher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:      repo,
		timeframe: timeframe,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Service) ListUsers(ctx context.Context, page, limit int, search string, hideInactive bool) (*ListUsersResponse, error) {
	page, limit, offset := inactivity.NormalizePage(page, limit)

	tf, prefix, err := s.timeframe.Timeframe(ctx)
	if err != nil {
		s.logger.Error("failed to resolve inactivity timeframe", "error", err)
		return nil, apperrors.NewInternalError("Failed to load users", err)
	}

	rows, total, err := s.repo.List(ctx, ListFilter{
		Search:         search,
		CallsignPrefix: prefix,
		HideInactive:   hideInactive,
		Timeframe:      tf,
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, apperrors.NewInternalError("Failed to load users", err)
	}

	users := make([]*User, 0, len(rows))
	for _, row := range rows {
		users = append(users, FromDataModel(row))
	}
	return &ListUsersResponse{Users: users, Total: total, Page: page, Limit: limit}, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	row, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

// BanUser removes a pilot from the VA. Nobody can ban the owner and only the
// owner can ban admins.
func (s *Service) BanUser(ctx context.Context, actorID string, actorRoles []string, id string, req BanRequest) error {
	if req.ExpiresAt != nil && *req.ExpiresAt <= s.now().Unix() {
		return apperrors.NewValidationFieldError("expires_at", "Ban expiry must be in the future", apperrors.ErrCodeValidationFailed)
	}

	target, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := checkModeration(actorRoles, ParseRoles(target.Role), "ban"); err != nil {
		return err
	}

	reason := req.NormalizedReason()
	if err := s.repo.UpdateBan(ctx, id, true, reason, req.ExpiresAt); err != nil {
		s.logger.Error("failed to ban user", "user_id", id, "error", err)
		return dberror.Map(err, dberror.Messages{Fallback: "Failed to remove user from the VA"})
	}

	s.logger.Info("user banned", "user_id", id, "actor_id", actorID)
	var reasonText string
	if reason != nil {
		reasonText = *reason
	}
	s.publish(ctx, events.NewUserBannedEvent(id, actorID, reasonText))
	return nil
}

func (s *Service) UnbanUser(ctx context.Context, id string) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.repo.UpdateBan(ctx, id, false, nil, nil); err != nil {
		s.logger.Error("failed to unban user", "user_id", id, "error", err)
		return dberror.Map(err, dberror.Messages{Fallback: "Failed to unban user"})
	}
	s.logger.Info("user unbanned", "user_id", id)
	return nil
}

// KickUser deletes the account. Pireps and leave requests go with it.
func (s *Service) KickUser(ctx context.Context, actorID string, actorRoles []string, id string) error {
	target, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := checkModeration(actorRoles, ParseRoles(target.Role), "delete"); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete user", "user_id", id, "error", err)
		return dberror.Map(err, dberror.Messages{Fallback: "Failed to delete user"})
	}

	s.logger.Info("user kicked", "user_id", id, "actor_id", actorID)
	s.publish(ctx, events.NewUserKickedEvent(id, actorID))
	return nil
}

func (s *Service) AddRole(ctx context.Context, actorID string, actorRoles []string, id, role string) (*RoleChangeResponse, error) {
	if !IsAssignable(role) {
		return nil, apperrors.NewValidationFieldError("role", "Invalid role", apperrors.ErrCodeInvalidRole)
	}
	if role == RoleAdmin && !HasRole(actorRoles, RoleOwner) {
		return nil, apperrors.NewForbiddenError("Only the owner can grant the admin role", apperrors.ErrCodeOwnerRequired)
	}

	target, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	roles := ParseRoles(target.Role)
	if HasRole(roles, role) {
		return &RoleChangeResponse{Message: "User already has this role", Roles: roles}, nil
	}

	roles = append(roles, role)
	if err := s.repo.UpdateRoles(ctx, id, EncodeRoles(roles)); err != nil {
		s.logger.Error("failed to add role", "user_id", id, "role", role, "error", err)
		return nil, dberror.Map(err, dberror.Messages{Fallback: "Failed to add role"})
	}

	s.logger.Info("role added", "user_id", id, "role", role, "actor_id", actorID)
	s.publish(ctx, events.NewUserRoleChangedEvent(id, actorID, "+"+role))
	return &RoleChangeResponse{Message: "Role added successfully", Roles: roles}, nil
}

func (s *Service) RemoveRole(ctx context.Context, actorID string, actorRoles []string, id, role string) (*RoleChangeResponse, error) {
	if role == RoleOwner {
		return nil, apperrors.NewForbiddenError("The owner role cannot be removed", apperrors.ErrCodeOwnerProtected)
	}
	if !IsAssignable(role) {
		return nil, apperrors.NewValidationFieldError("role", "Invalid role", apperrors.ErrCodeInvalidRole)
	}
	if role == RoleAdmin && !HasRole(actorRoles, RoleOwner) {
		return nil, apperrors.NewForbiddenError("Only the owner can remove the admin role", apperrors.ErrCodeOwnerRequired)
	}

	target, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	roles := ParseRoles(target.Role)
	if !HasRole(roles, role) {
		return &RoleChangeResponse{Message: "User does not have this role", Roles: roles}, nil
	}

	kept := make([]string, 0, len(roles)-1)
	for _, r := range roles {
		if r != role {
			kept = append(kept, r)
		}
	}
	if err := s.repo.UpdateRoles(ctx, id, EncodeRoles(kept)); err != nil {
		s.logger.Error("failed to remove role", "user_id", id, "role", role, "error", err)
		return nil, dberror.Map(err, dberror.Messages{Fallback: "Failed to remove role"})
	}

	s.logger.Info("role removed", "user_id", id, "role", role, "actor_id", actorID)
	s.publish(ctx, events.NewUserRoleChangedEvent(id, actorID, "-"+role))
	return &RoleChangeResponse{Message: "Role removed successfully", Roles: kept}, nil
}

func (s *Service) load(ctx context.Context, id string) (*userDatamodel.User, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to load user", "user_id", id, "error", err)
		return nil, apperrors.NewInternalError("Failed to load user", err)
	}
	if row == nil {
		return nil, apperrors.ErrUserNotFound
	}
	return row, nil
}

func (s *Service) publish(ctx context.Context, e events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.logger.Warn("failed to publish event", "event_type", e.EventType(), "error", err)
	}
}

// checkModeration guards ban and delete: the owner is untouchable and
// admins answer only to the owner.
func checkModeration(actorRoles, targetRoles []string, action string) error {
	if HasRole(targetRoles, RoleOwner) {
		return apperrors.NewForbiddenError("You can't "+action+" the owner", apperrors.ErrCodeOwnerProtected)
	}
	if HasRole(targetRoles, RoleAdmin) && !HasRole(actorRoles, RoleOwner) {
		return apperrors.NewForbiddenError("Only the owner can "+action+" admins", apperrors.ErrCodeOwnerRequired)
	}
	return nil
}
