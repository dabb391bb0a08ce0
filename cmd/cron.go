package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/frahmantamala/airline-admin/internal"
	airlinePostgres "github.com/frahmantamala/airline-admin/internal/airline/postgres"
	"github.com/frahmantamala/airline-admin/internal/core/events"
	"github.com/frahmantamala/airline-admin/internal/cron"
	"github.com/frahmantamala/airline-admin/internal/inactivity"
	inactivityPostgres "github.com/frahmantamala/airline-admin/internal/inactivity/postgres"
	"github.com/frahmantamala/airline-admin/internal/notifier"
	"github.com/frahmantamala/airline-admin/pkg/logger"
	"github.com/frahmantamala/airline-admin/pkg/metrics"
	"github.com/frahmantamala/airline-admin/pkg/redis"
)

var cronOnce bool

var cronCmd = &cobra.Command{
	Use:   "cron",
	Short: "Run scheduled jobs",
	Long:  `Run the inactivity report on the configured interval, guarded by a redis lock when redis is available.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runCron(cronOnce); err != nil {
			log.Fatalf("cron: %v", err)
		}
	},
}

func init() {
	cronCmd.Flags().BoolVar(&cronOnce, "once", false, "run every job a single time and exit")
}

func runCron(once bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	lg := logger.L().With("component", "cron")

	db, err := initDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()

	var sender notifier.Sender = notifier.Discard{}
	if cfg.Notifier.Enabled && cfg.Notifier.WebhookURL != "" {
		client := notifier.NewClient(cfg.Notifier, metrics.NewNotifierMetrics(registry), lg)
		defer client.Shutdown()
		sender = client
	}

	bus := events.NewEventBus(lg)
	subscribeAuditLog(bus, lg)
	defer bus.Wait()

	inactivityService := inactivity.NewService(
		inactivityPostgres.NewInactivityRepository(db.Gorm),
		airlinePostgres.NewAirlineRepository(db.Gorm),
		lg,
	)

	lock, closeLock := cronLock(ctx, cfg, lg)
	defer closeLock()

	service, err := cron.NewService(cron.ServiceParams{
		Logger:   lg,
		Registry: cron.NewRegistry(inactivity.NewNotifyJob(inactivityService, bus, sender)),
		Lock:     lock,
		Metrics:  metrics.NewCronJobMetrics(registry),
		Interval: cfg.Cron.Interval,
	})
	if err != nil {
		return err
	}

	if once {
		return service.RunOnce(ctx)
	}
	lg.Info("cron started", "interval", cfg.Cron.Interval)
	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// cronLock prefers a redis lock so only one replica runs a cycle; without
// redis it falls back to an in-process lock.
func cronLock(ctx context.Context, cfg *internal.Config, lg *slog.Logger) (cron.Lock, func()) {
	noop := func() {}
	if cfg.Redis.Addr == "" {
		lg.Warn("redis not configured, using local cron lock")
		return cron.NewLocalLock(), noop
	}

	dialCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	client, err := redis.New(dialCtx, cfg.Redis)
	if err != nil {
		lg.Warn("redis unavailable, using local cron lock", "error", err)
		return cron.NewLocalLock(), noop
	}

	key := cfg.Cron.LockKey
	if key == "" {
		key = redis.Key("cron", inactivity.NotifyJobName)
	}
	lock, err := cron.NewRedisLock(client, key, cfg.Cron.LockTTL)
	if err != nil {
		_ = client.Close()
		lg.Warn("redis lock rejected, using local cron lock", "error", err)
		return cron.NewLocalLock(), noop
	}
	return lock, func() { _ = client.Close() }
}

