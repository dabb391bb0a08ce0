package inactivity

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Service answers inactivity queries. It holds no state between calls; every
// call re-reads the airline settings and the store.
type Service struct {
	repo     RepositoryAPI
	settings SettingsProvider
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(repo RepositoryAPI, settings SettingsProvider, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:     repo,
		settings: settings,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock replaces the wall clock, mainly for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Timeframe resolves the cutoff once for the current invocation and returns
// the airline callsign prefix alongside it.
func (s *Service) Timeframe(ctx context.Context) (Timeframe, string, error) {
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return Timeframe{}, "", fmt.Errorf("load airline settings: %w", err)
	}
	return ResolveTimeframe(settings, s.now()), settings.CallsignPrefix(), nil
}

func (s *Service) GetInactiveUsersPaginated(ctx context.Context, page, limit int, search string) (*Page, error) {
	tf, prefix, err := s.Timeframe(ctx)
	if err != nil {
		s.logger.Error("failed to resolve inactivity timeframe", "error", err)
		return nil, err
	}

	_, limit, offset := NormalizePage(page, limit)
	result, err := s.repo.FindInactivePage(ctx, Query{
		Timeframe:      tf,
		CallsignPrefix: prefix,
		Search:         search,
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		s.logger.Error("failed to query inactive users", "error", err, "page", page, "limit", limit)
		return nil, fmt.Errorf("query inactive users: %w", err)
	}
	if result.Users == nil {
		result.Users = []InactiveUser{}
	}

	s.logger.Debug("inactive users page resolved",
		"page", page,
		"limit", limit,
		"returned", len(result.Users),
		"total", result.Total,
		"cutoff", tf.Cutoff)

	return result, nil
}

func (s *Service) GetAllInactiveUsers(ctx context.Context) ([]InactiveUser, error) {
	users, _, _, err := s.listAll(ctx)
	return users, err
}

// listAll also returns the timeframe and callsign prefix the listing was
// classified with.
func (s *Service) listAll(ctx context.Context) ([]InactiveUser, Timeframe, string, error) {
	tf, prefix, err := s.Timeframe(ctx)
	if err != nil {
		s.logger.Error("failed to resolve inactivity timeframe", "error", err)
		return nil, Timeframe{}, "", err
	}

	users, err := s.repo.FindAllInactive(ctx, tf)
	if err != nil {
		s.logger.Error("failed to list inactive users", "error", err)
		return nil, tf, prefix, fmt.Errorf("list inactive users: %w", err)
	}
	if users == nil {
		users = []InactiveUser{}
	}
	return users, tf, prefix, nil
}
