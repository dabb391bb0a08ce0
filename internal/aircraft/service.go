package aircraft

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	apperrors "github.com/frahmantamala/airline-admin/internal"
	aircraftDatamodel "github.com/frahmantamala/airline-admin/internal/core/datamodel/aircraft"
	"github.com/frahmantamala/airline-admin/pkg/dberror"
)

type RepositoryAPI interface {
	List(ctx context.Context) ([]*aircraftDatamodel.Aircraft, error)
	Create(ctx context.Context, a *aircraftDatamodel.Aircraft) error
	Delete(ctx context.Context, id string) (int64, error)
	DeleteMany(ctx context.Context, ids []string) (int64, error)
}

var (
	createMessages = dberror.Messages{
		Constraints: map[string]string{
			"aircraft_name_livery_unique": "An aircraft with this name and livery already exists",
		},
		Fallback: "Failed to add aircraft",
	}
	deleteMessages = dberror.Messages{
		Constraint: "Cannot delete aircraft - it is being used by ranks or pireps",
		Reference:  "Cannot delete aircraft - it has associated data that must be removed first",
		Fallback:   "Failed to delete aircraft",
	}
	bulkDeleteMessages = dberror.Messages{
		Constraint: "Cannot delete aircraft - one or more are being used by ranks or pireps",
		Reference:  "Cannot delete aircraft - they have associated data that must be removed first",
		Fallback:   "Failed to delete aircraft",
	}
)

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

func (s *Service) ListAircraft(ctx context.Context) ([]*Aircraft, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list fleet", "error", err)
		return nil, apperrors.NewInternalError("Failed to load fleet", err)
	}
	fleet := make([]*Aircraft, 0, len(rows))
	for _, row := range rows {
		fleet = append(fleet, FromDataModel(row))
	}
	return fleet, nil
}

func (s *Service) CreateAircraft(ctx context.Context, req CreateAircraftRequest) (*Aircraft, error) {
	req.Normalize()
	row := &aircraftDatamodel.Aircraft{
		ID:     uuid.New().String(),
		Name:   req.Name,
		Livery: req.Livery,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create aircraft", "name", req.Name, "livery", req.Livery, "error", err)
		return nil, dberror.Map(err, createMessages)
	}
	s.logger.Info("aircraft added", "aircraft_id", row.ID)
	return FromDataModel(row), nil
}

func (s *Service) DeleteAircraft(ctx context.Context, id string) error {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete aircraft", "aircraft_id", id, "error", err)
		return dberror.Map(err, deleteMessages)
	}
	if n == 0 {
		return apperrors.ErrAircraftNotFound
	}
	s.logger.Info("aircraft deleted", "aircraft_id", id)
	return nil
}

func (s *Service) DeleteManyAircraft(ctx context.Context, ids []string) (string, error) {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			unique = append(unique, id)
		}
	}

	n, err := s.repo.DeleteMany(ctx, unique)
	if err != nil {
		s.logger.Error("failed to bulk delete aircraft", "count", len(unique), "error", err)
		return "", dberror.Map(err, bulkDeleteMessages)
	}
	s.logger.Info("aircraft deleted", "count", n)
	return fmt.Sprintf("%d aircraft deleted", n), nil
}
