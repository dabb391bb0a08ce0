package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/frahmantamala/airline-admin/internal"
	"github.com/frahmantamala/airline-admin/internal/aircraft"
	aircraftPostgres "github.com/frahmantamala/airline-admin/internal/aircraft/postgres"
	"github.com/frahmantamala/airline-admin/internal/airline"
	airlinePostgres "github.com/frahmantamala/airline-admin/internal/airline/postgres"
	"github.com/frahmantamala/airline-admin/internal/auth"
	authPostgres "github.com/frahmantamala/airline-admin/internal/auth/postgres"
	"github.com/frahmantamala/airline-admin/internal/core/events"
	"github.com/frahmantamala/airline-admin/internal/inactivity"
	inactivityPostgres "github.com/frahmantamala/airline-admin/internal/inactivity/postgres"
	"github.com/frahmantamala/airline-admin/internal/rank"
	rankPostgres "github.com/frahmantamala/airline-admin/internal/rank/postgres"
	"github.com/frahmantamala/airline-admin/internal/route"
	routePostgres "github.com/frahmantamala/airline-admin/internal/route/postgres"
	"github.com/frahmantamala/airline-admin/internal/setup"
	setupPostgres "github.com/frahmantamala/airline-admin/internal/setup/postgres"
	"github.com/frahmantamala/airline-admin/internal/transport"
	"github.com/frahmantamala/airline-admin/internal/transport/rest"
	"github.com/frahmantamala/airline-admin/internal/user"
	userPostgres "github.com/frahmantamala/airline-admin/internal/user/postgres"
	"github.com/frahmantamala/airline-admin/pkg/logger"
	"github.com/frahmantamala/airline-admin/pkg/metrics"
	"github.com/frahmantamala/airline-admin/pkg/redis"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *Database
	Redis    *redis.Client
	Router   *chi.Mux
	EventBus *events.EventBus
	Registry *prometheus.Registry
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}
	defer deps.close()

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr, "driver", deps.DB.Driver)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			deps.Logger.Error("Server failed to start", "error", err)
			deps.close()
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) {
	lg := deps.Logger
	db := deps.DB.Gorm
	base := transport.NewBaseHandler(lg)
	sec := deps.Config.Security

	airlineRepo := airlinePostgres.NewAirlineRepository(db)
	inactivityService := inactivity.NewService(inactivityPostgres.NewInactivityRepository(db), airlineRepo, lg)
	tokens := auth.NewJWTTokenGenerator(sec.JWTAccessSecret, sec.JWTRefreshSecret, sec.AccessTokenDuration, sec.RefreshTokenDuration)

	handlers := rest.Handlers{
		Auth:       auth.NewHandler(base, auth.NewService(authPostgres.NewRepository(db), tokens, lg)),
		Setup:      setup.NewHandler(base, setup.NewService(setupPostgres.NewSetupRepository(db), sec.BCryptCost, lg)),
		Users:      user.NewHandler(base, user.NewService(userPostgres.NewUserRepository(db), inactivityService, deps.EventBus, lg)),
		Inactivity: inactivity.NewHandler(base, inactivityService),
		Ranks:      rank.NewHandler(base, rank.NewService(rankPostgres.NewRankRepository(db), lg)),
		Routes:     route.NewHandler(base, route.NewService(routePostgres.NewRouteRepository(db), lg)),
		Fleet:      aircraft.NewHandler(base, aircraft.NewService(aircraftPostgres.NewAircraftRepository(db), lg)),
		Airline:    airline.NewHandler(base, airline.NewService(airlineRepo, lg)),
	}
	var redisPinger rest.Pinger
	if deps.Redis != nil {
		redisPinger = deps.Redis
	}
	handlers.Health = rest.NewHealthHandler(base, deps.DB.SQLX, redisPinger)

	opts := rest.Options{
		RBAC:           auth.NewRBACAuthorization(lg),
		AllowedOrigins: deps.Config.Server.AllowedOrigins,
		Logger:         lg,
	}
	if deps.Config.Observability.Metrics.Enabled {
		opts.Metrics = promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})
		opts.MetricsPath = deps.Config.Observability.Metrics.Path
		opts.HTTPMetrics = metrics.NewHTTPMetrics(deps.Registry)
	}

	rest.RegisterAllRoutes(deps.Router, handlers, opts)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	lg := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Redis only backs the readiness probe here; the server runs without it.
	var redisClient *redis.Client
	if config.Redis.Addr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		redisClient, err = redis.New(ctx, config.Redis)
		cancel()
		if err != nil {
			lg.Warn("redis unavailable, health check will skip it", "error", err)
			redisClient = nil
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	bus := events.NewEventBus(lg)
	subscribeAuditLog(bus, lg)

	return &Dependencies{
		Config:   config,
		Logger:   lg,
		DB:       db,
		Redis:    redisClient,
		Router:   chi.NewRouter(),
		EventBus: bus,
		Registry: registry,
	}, nil
}

func (d *Dependencies) close() {
	d.EventBus.Wait()
	if d.Redis != nil {
		_ = d.Redis.Close()
	}
	if err := d.DB.Close(); err != nil {
		d.Logger.Error("Database close error", "error", err)
	}
}

// subscribeAuditLog records moderation events in the structured log.
func subscribeAuditLog(bus *events.EventBus, lg *slog.Logger) {
	audit := func(ctx context.Context, event events.Event) error {
		lg.Info("audit",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"payload", event.Payload())
		return nil
	}
	for _, eventType := range []string{
		events.EventTypeUserBanned,
		events.EventTypeUserKicked,
		events.EventTypeUserRoleChanged,
		events.EventTypeInactiveUsersDetected,
	} {
		bus.Subscribe(eventType, audit)
	}
}
