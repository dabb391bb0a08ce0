package route

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	apperrors "github.com/frahmantamala/airline-admin/internal"
	routeDatamodel "github.com/frahmantamala/airline-admin/internal/core/datamodel/route"
	"github.com/frahmantamala/airline-admin/pkg/dberror"
)

type RepositoryAPI interface {
	List(ctx context.Context) ([]*routeDatamodel.Route, error)
	Create(ctx context.Context, r *routeDatamodel.Route) error
	Delete(ctx context.Context, id string) (int64, error)
	DeleteMany(ctx context.Context, ids []string) (int64, error)
}

var (
	createMessages = dberror.Messages{
		Check:    "Flight time must be greater than zero",
		Fallback: "Failed to create route",
	}
	deleteMessages = dberror.Messages{
		Constraint: "Cannot delete route - it is being used in existing records",
		Reference:  "Cannot delete route - it has associated data that must be removed first",
		Fallback:   "Failed to delete route",
	}
	bulkDeleteMessages = dberror.Messages{
		Constraint: "Cannot delete routes - one or more are being used in existing records",
		Reference:  "Cannot delete routes - they have associated data that must be removed first",
		Fallback:   "Failed to delete routes",
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

func (s *Service) ListRoutes(ctx context.Context) ([]*Route, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list routes", "error", err)
		return nil, apperrors.NewInternalError("Failed to load routes", err)
	}

	routes := make([]*Route, 0, len(rows))
	for _, row := range rows {
		routes = append(routes, FromDataModel(row))
	}
	return routes, nil
}

func (s *Service) CreateRoute(ctx context.Context, req CreateRouteRequest) (*Route, error) {
	req.Normalize()
	if len(req.FlightNumbers) == 0 {
		return nil, apperrors.NewValidationFieldError("flight_numbers", "flight_numbers must contain at least 1 item(s)", apperrors.ErrCodeValidationFailed)
	}
	if req.DepartureIcao == req.ArrivalIcao {
		return nil, apperrors.NewValidationFieldError("arrival_icao", "Arrival must differ from departure", apperrors.ErrCodeValidationFailed)
	}

	row := &routeDatamodel.Route{
		ID:            uuid.New().String(),
		DepartureIcao: req.DepartureIcao,
		ArrivalIcao:   req.ArrivalIcao,
		FlightNumbers: encodeFlightNumbers(req.FlightNumbers),
		FlightTime:    req.FlightTime,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create route", "error", err)
		return nil, dberror.Map(err, createMessages)
	}

	s.logger.Info("route created", "route_id", row.ID, "departure", row.DepartureIcao, "arrival", row.ArrivalIcao)
	return FromDataModel(row), nil
}

func (s *Service) DeleteRoute(ctx context.Context, id string) error {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete route", "route_id", id, "error", err)
		return dberror.Map(err, deleteMessages)
	}
	if n == 0 {
		return apperrors.ErrRouteNotFound
	}
	s.logger.Info("route deleted", "route_id", id)
	return nil
}

func (s *Service) DeleteRoutes(ctx context.Context, ids []string) (string, error) {
	ids = uniqueIDs(ids)
	n, err := s.repo.DeleteMany(ctx, ids)
	if err != nil {
		s.logger.Error("failed to bulk delete routes", "count", len(ids), "error", err)
		return "", dberror.Map(err, bulkDeleteMessages)
	}
	s.logger.Info("routes deleted", "count", n)
	if n == 1 {
		return "1 route deleted", nil
	}
	return fmt.Sprintf("%d routes deleted", n), nil
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
