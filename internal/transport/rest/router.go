package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/frahmantamala/airline-admin/api"
	"github.com/frahmantamala/airline-admin/internal/aircraft"
	"github.com/frahmantamala/airline-admin/internal/airline"
	"github.com/frahmantamala/airline-admin/internal/auth"
	"github.com/frahmantamala/airline-admin/internal/inactivity"
	"github.com/frahmantamala/airline-admin/internal/rank"
	"github.com/frahmantamala/airline-admin/internal/route"
	"github.com/frahmantamala/airline-admin/internal/setup"
	"github.com/frahmantamala/airline-admin/internal/transport/middleware"
	"github.com/frahmantamala/airline-admin/internal/transport/swagger"
	"github.com/frahmantamala/airline-admin/internal/user"
	"github.com/frahmantamala/airline-admin/pkg/metrics"
)

type Handlers struct {
	Health     *HealthHandler
	Auth       *auth.Handler
	Setup      *setup.Handler
	Users      *user.Handler
	Inactivity *inactivity.Handler
	Ranks      *rank.Handler
	Routes     *route.Handler
	Fleet      *aircraft.Handler
	Airline    *airline.Handler
}

type Options struct {
	RBAC           *auth.RBACAuthorization
	AllowedOrigins string
	MetricsPath    string
	// Metrics serves the scrape endpoint; nil disables it.
	Metrics     http.Handler
	HTTPMetrics *metrics.HTTPMetrics
	Logger      *slog.Logger
}

func RegisterAllRoutes(router chi.Router, h Handlers, opts Options) {
	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(opts.HTTPMetrics))
	router.Use(middleware.RecoveryMiddleware(opts.Logger))

	if opts.Metrics != nil {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		router.Handle(path, opts.Metrics)
	}
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(api.OpenAPISpec)
	})
	router.Handle("/swagger/*", swagger.Handler())

	rbac := opts.RBAC

	router.Route("/api/v1", func(r chi.Router) {
		if h.Health != nil {
			r.Get("/health", h.Health.Health)
			r.Get("/ping", h.Health.Ping)
		}

		if h.Setup != nil {
			r.Get("/setup/status", h.Setup.Status)
			r.Post("/setup/admin", h.Setup.CreateAdmin)
		}

		if h.Auth == nil {
			return
		}
		r.Route("/auth", func(ar chi.Router) {
			ar.Post("/login", h.Auth.Login)
			ar.Post("/refresh", h.Auth.RefreshToken)
			ar.With(h.Auth.AuthMiddleware).Get("/me", h.Auth.Me)
		})

		r.Route("/admin", func(ad chi.Router) {
			ad.Use(h.Auth.AuthMiddleware)

			ad.Group(func(ur chi.Router) {
				ur.Use(rbac.RequireRoles(user.RoleUsers))
				if h.Inactivity != nil {
					ur.Get("/users/inactive", h.Inactivity.ListInactiveUsers)
					ur.Get("/users/inactive/all", h.Inactivity.ExportInactiveUsers)
				}
				if h.Users != nil {
					ur.Get("/users", h.Users.ListUsers)
					ur.Get("/users/{id}", h.Users.GetUser)
					ur.Post("/users/{id}/ban", h.Users.BanUser)
					ur.Post("/users/{id}/unban", h.Users.UnbanUser)
					ur.Delete("/users/{id}", h.Users.KickUser)
					ur.Post("/users/{id}/roles", h.Users.AddRole)
					ur.Delete("/users/{id}/roles/{role}", h.Users.RemoveRole)
				}
			})

			if h.Ranks != nil {
				ad.Group(func(rr chi.Router) {
					rr.Use(rbac.RequireRoles(user.RoleRanks))
					rr.Get("/ranks", h.Ranks.ListRanks)
					rr.Post("/ranks", h.Ranks.CreateRank)
					rr.Post("/ranks/bulk-delete", h.Ranks.DeleteRanks)
					rr.Delete("/ranks/{id}", h.Ranks.DeleteRank)
				})
			}

			if h.Routes != nil {
				ad.Group(func(rr chi.Router) {
					rr.Use(rbac.RequireRoles(user.RoleRoutes))
					rr.Get("/routes", h.Routes.ListRoutes)
					rr.Post("/routes", h.Routes.CreateRoute)
					rr.Post("/routes/bulk-delete", h.Routes.DeleteRoutes)
					rr.Delete("/routes/{id}", h.Routes.DeleteRoute)
				})
			}

			if h.Fleet != nil {
				ad.Group(func(fr chi.Router) {
					fr.Use(rbac.RequireRoles(user.RoleFleet))
					fr.Get("/aircraft", h.Fleet.ListFleet)
					fr.Post("/aircraft", h.Fleet.CreateAircraft)
					fr.Post("/aircraft/bulk-delete", h.Fleet.DeleteManyAircraft)
					fr.Delete("/aircraft/{id}", h.Fleet.DeleteAircraft)
				})
			}

			if h.Airline != nil {
				ad.Group(func(alr chi.Router) {
					alr.Use(rbac.RequireRoles(user.RoleAirline))
					alr.Get("/airline", h.Airline.GetAirline)
					alr.Put("/airline", h.Airline.UpdateAirline)
				})
			}
		})
	})
}
