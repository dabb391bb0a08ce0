package rank

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	apperrors "github.com/frahmantamala/airline-admin/internal"
	rankDatamodel "github.com/frahmantamala/airline-admin/internal/core/datamodel/rank"
	"github.com/frahmantamala/airline-admin/pkg/dberror"
)

type RepositoryAPI interface {
	// List returns ranks by minimum flight time with each rank's allowed aircraft.
	List(ctx context.Context) ([]*rankDatamodel.Rank, map[string][]string, error)
	Create(ctx context.Context, r *rankDatamodel.Rank, aircraftIDs []string) error
	// Delete reports how many ranks were removed.
	Delete(ctx context.Context, id string) (int64, error)
	// DeleteMany removes all ids in one transaction or none of them.
	DeleteMany(ctx context.Context, ids []string) (int64, error)
}

var (
	createMessages = dberror.Messages{
		Constraints: map[string]string{
			"ranks_name_unique": "A rank with this name already exists",
		},
		Constraint: "One or more selected aircraft do not exist",
		Check:      "Flight time limits must not be negative",
		Fallback:   "Failed to create rank",
	}
	deleteMessages = dberror.Messages{
		Constraint: "Cannot delete rank - it is being used by users or aircraft",
		Reference:  "Cannot delete rank - it has associated data that must be removed first",
		Fallback:   "Failed to delete rank",
	}
	bulkDeleteMessages = dberror.Messages{
		Constraint: "Cannot delete ranks - they are being used by users or aircraft",
		Reference:  "Cannot delete ranks - they have associated data that must be removed first",
		Fallback:   "Failed to delete ranks",
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
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) ListRanks(ctx context.Context) ([]*Rank, error) {
	rows, aircraft, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list ranks", "error", err)
		return nil, apperrors.NewInternalError("Failed to load ranks", err)
	}

	ranks := make([]*Rank, 0, len(rows))
	for _, row := range rows {
		ranks = append(ranks, FromDataModel(row, aircraft[row.ID]))
	}
	return ranks, nil
}

func (s *Service) CreateRank(ctx context.Context, req CreateRankRequest) (*Rank, error) {
	req.Normalize()
	if req.MaximumFlightTime != nil && *req.MaximumFlightTime < req.MinimumFlightTime {
		return nil, apperrors.NewValidationFieldError("maximum_flight_time",
			"maximum_flight_time must be greater than or equal to minimum_flight_time", apperrors.ErrCodeValidationFailed)
	}

	row := &rankDatamodel.Rank{
		ID:                uuid.New().String(),
		Name:              req.Name,
		MinimumFlightTime: req.MinimumFlightTime,
		MaximumFlightTime: req.MaximumFlightTime,
		AllowAllAircraft:  req.AllowAllAircraft,
	}
	if err := s.repo.Create(ctx, row, req.AircraftIDs); err != nil {
		s.logger.Error("failed to create rank", "name", req.Name, "error", err)
		return nil, dberror.Map(err, createMessages)
	}

	s.logger.Info("rank created", "rank_id", row.ID, "name", row.Name)
	return FromDataModel(row, req.AircraftIDs), nil
}

func (s *Service) DeleteRank(ctx context.Context, id string) error {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete rank", "rank_id", id, "error", err)
		return dberror.Map(err, deleteMessages)
	}
	if n == 0 {
		return apperrors.ErrRankNotFound
	}
	s.logger.Info("rank deleted", "rank_id", id)
	return nil
}

// DeleteRanks returns a summary message; it fails as a whole when any id is
// unknown or still referenced.
func (s *Service) DeleteRanks(ctx context.Context, ids []string) (string, error) {
	ids = uniqueIDs(ids)
	n, err := s.repo.DeleteMany(ctx, ids)
	if err != nil {
		s.logger.Error("failed to bulk delete ranks", "count", len(ids), "error", err)
		return "", dberror.Map(err, bulkDeleteMessages)
	}
	s.logger.Info("ranks deleted", "count", n)
	return fmt.Sprintf("%d %s deleted successfully", n, plural(n, "rank", "ranks")), nil
}

func plural(n int64, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
