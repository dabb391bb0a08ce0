package user_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/airline-admin/internal"
	userDatamodel "github.com/frahmantamala/airline-admin/internal/core/datamodel/user"
	"github.com/frahmantamala/airline-admin/internal/inactivity"
	"github.com/frahmantamala/airline-admin/internal/transport"
	"github.com/frahmantamala/airline-admin/internal/user"
)

var _ = Describe("Handler", func() {
	var (
		repo   *mockUserRepository
		router chi.Router
	)

	as := func(req *http.Request, id string, roles ...string) *http.Request {
		ctx := internal.ContextWithUserID(req.Context(), id)
		ctx = internal.ContextWithRoles(ctx, roles)
		return req.WithContext(ctx)
	}

	BeforeEach(func() {
		repo = newMockUserRepository(
			&userDatamodel.User{ID: "owner", Name: "Olivia", Role: `["owner"]`},
			&userDatamodel.User{ID: "pilot", Name: "Pat", Role: `[]`},
		)
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc := user.NewService(repo, fixedTimeframe{tf: inactivity.Timeframe{Now: 1000, Cutoff: 10}}, nil, logger)
		h := user.NewHandler(&transport.BaseHandler{Logger: logger}, svc)

		router = chi.NewRouter()
		router.Get("/admin/users", h.ListUsers)
		router.Get("/admin/users/{id}", h.GetUser)
		router.Post("/admin/users/{id}/ban", h.BanUser)
		router.Delete("/admin/users/{id}", h.KickUser)
		router.Post("/admin/users/{id}/roles", h.AddRole)
		router.Delete("/admin/users/{id}/roles/{role}", h.RemoveRole)
	})

	serve := func(req *http.Request) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	It("lists users with the inactive filter flag", func() {
		rec := serve(httptest.NewRequest(http.MethodGet, "/admin/users?inactive=true&limit=500", nil))

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(repo.lastFilter.HideInactive).To(BeTrue())
		Expect(repo.lastFilter.Limit).To(Equal(inactivity.MaxPageSize))

		var body user.ListUsersResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		Expect(body.Total).To(Equal(int64(2)))
	})

	It("returns 404 for unknown users", func() {
		rec := serve(httptest.NewRequest(http.MethodGet, "/admin/users/ghost", nil))
		Expect(rec.Code).To(Equal(http.StatusNotFound))
	})

	It("bans with the caller's roles", func() {
		req := as(httptest.NewRequest(http.MethodPost, "/admin/users/pilot/ban", strings.NewReader(`{"reason":"spam"}`)), "owner", user.RoleOwner)
		rec := serve(req)

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring("User removed from the VA successfully"))
		Expect(repo.users["pilot"].Banned).To(BeTrue())
	})

	It("rejects an overlong ban reason", func() {
		body := `{"reason":"` + strings.Repeat("x", 501) + `"}`
		rec := serve(as(httptest.NewRequest(http.MethodPost, "/admin/users/pilot/ban", strings.NewReader(body)), "owner", user.RoleOwner))

		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(rec.Body.String()).To(ContainSubstring("reason must be less than 500 characters"))
	})

	It("refuses to kick the owner", func() {
		rec := serve(as(httptest.NewRequest(http.MethodDelete, "/admin/users/owner", nil), "owner", user.RoleOwner))
		Expect(rec.Code).To(Equal(http.StatusForbidden))
	})

	It("adds and removes roles", func() {
		rec := serve(as(httptest.NewRequest(http.MethodPost, "/admin/users/pilot/roles", strings.NewReader(`{"role":"ranks"}`)), "owner", user.RoleOwner))
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(repo.users["pilot"].Role).To(Equal(`["ranks"]`))

		rec = serve(as(httptest.NewRequest(http.MethodDelete, "/admin/users/pilot/roles/ranks", nil), "owner", user.RoleOwner))
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(repo.users["pilot"].Role).To(Equal(`[]`))
	})
})

