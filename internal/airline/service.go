package airline

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	apperrors "github.com/frahmantamala/airline-admin/internal"
	airlineDatamodel "github.com/frahmantamala/airline-admin/internal/core/datamodel/airline"
	"github.com/frahmantamala/airline-admin/pkg/dberror"
)

type RepositoryAPI interface {
	// Get returns the airline row, or nil when none has been created.
	Get(ctx context.Context) (*airlineDatamodel.Airline, error)
	Save(ctx context.Context, a *airlineDatamodel.Airline) error
}

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

func (s *Service) GetAirline(ctx context.Context) (*Airline, error) {
	row, err := s.repo.Get(ctx)
	if err != nil {
		s.logger.Error("failed to load airline", "error", err)
		return nil, apperrors.NewInternalError("Failed to load airline settings", err)
	}
	if row == nil {
		return nil, apperrors.ErrAirlineNotFound
	}
	return FromDataModel(row), nil
}

// UpdateAirline writes the settings, creating the single airline row on first use.
func (s *Service) UpdateAirline(ctx context.Context, req UpdateAirlineRequest) (*Airline, error) {
	req.Normalize()

	row, err := s.repo.Get(ctx)
	if err != nil {
		s.logger.Error("failed to load airline", "error", err)
		return nil, apperrors.NewInternalError("Failed to load airline settings", err)
	}
	if row == nil {
		row = &airlineDatamodel.Airline{ID: uuid.New().String()}
	}

	period := req.InactivityPeriod
	row.Name = req.Name
	row.Callsign = req.Callsign
	row.InactivityPeriod = &period

	if err := s.repo.Save(ctx, row); err != nil {
		s.logger.Error("failed to save airline", "error", err)
		return nil, dberror.Map(err, dberror.Messages{
			Check:    "Inactivity period must be a positive number of days",
			Fallback: "Failed to update airline settings",
		})
	}

	s.logger.Info("airline settings updated",
		"airline_id", row.ID,
		"inactivity_period", period)
	return FromDataModel(row), nil
}
