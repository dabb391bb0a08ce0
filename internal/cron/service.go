package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/airline-admin/pkg/logger"
	"github.com/frahmantamala/airline-admin/pkg/metrics"
)

const (
	defaultInterval = 24 * time.Hour
	releaseTimeout  = 5 * time.Second
)

type ServiceParams struct {
	Logger   *slog.Logger
	Registry *Registry
	Lock     Lock
	Metrics  *metrics.CronJobMetrics
	Interval time.Duration
}

// Service runs registered jobs on a fixed cadence, one replica at a time.
type Service struct {
	logger   *slog.Logger
	registry *Registry
	lock     Lock
	metrics  *metrics.CronJobMetrics
	interval time.Duration
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Logger == nil {
		return nil, errors.New("logger required")
	}
	if params.Lock == nil {
		return nil, errors.New("lock required")
	}
	registry := params.Registry
	if registry == nil {
		registry = NewRegistry()
	}
	interval := params.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Service{
		logger:   params.Logger,
		registry: registry,
		lock:     params.Lock,
		metrics:  params.Metrics,
		interval: interval,
	}, nil
}

// Run executes a cycle immediately, then on every tick until ctx is done.
func (s *Service) Run(ctx context.Context) error {
	if err := s.RunOnce(ctx); err != nil {
		s.logger.Error("scheduled run failed", "error", err)
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("cron service context canceled")
			return ctx.Err()
		case <-ticker.C:
			if err := s.RunOnce(ctx); err != nil {
				s.logger.Error("scheduled run failed", "error", err)
			}
		}
	}
}

// RunOnce runs every job once if the lock can be taken. A failing job does
// not stop the ones after it.
func (s *Service) RunOnce(ctx context.Context) error {
	locked, err := s.lock.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("lock acquire: %w", err)
	}
	if !locked {
		s.logger.Info("another cron instance is running; skipping this cycle")
		return nil
	}
	defer func() {
		// Release even when ctx was cancelled mid-run, otherwise the lock
		// stays held until its TTL and the next cycle is skipped.
		relCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
		defer cancel()
		if relErr := s.lock.Release(relCtx); relErr != nil {
			s.logger.Error("failed to release cron lock", "error", relErr)
		}
	}()

	s.logger.Info("scheduled run starting", "jobs", len(s.registry.Jobs()))
	for _, job := range s.registry.Jobs() {
		s.runJob(ctx, job)
	}
	s.logger.Info("scheduled run complete")
	return nil
}

func (s *Service) runJob(ctx context.Context, job Job) {
	lg := s.logger.With("job", job.Name(), "event", "cron.job")
	jobCtx := logger.WithLogger(ctx, lg)
	lg.Info("job start")

	start := time.Now()
	err := job.Run(jobCtx)
	duration := time.Since(start)
	s.metrics.ObserveDuration(job.Name(), duration)

	if err != nil {
		lg.Error("job failed", "error", err, "duration_ms", duration.Milliseconds())
		s.metrics.IncFailure(job.Name())
		return
	}
	lg.Info("job completed", "duration_ms", duration.Milliseconds())
	s.metrics.IncSuccess(job.Name())
}
