package route_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/frahmantamala/airline-admin/internal/core/dbtest"
	"github.com/frahmantamala/airline-admin/internal/route"
	routePostgres "github.com/frahmantamala/airline-admin/internal/route/postgres"
	"github.com/frahmantamala/airline-admin/internal/transport"
)

func TestRoute(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Route Suite")
}

var _ = Describe("Route Handler Integration", func() {
	var (
		db     *gorm.DB
		router chi.Router
	)

	BeforeEach(func() {
		var err error
		db, err = dbtest.OpenSQLite()
		Expect(err).NotTo(HaveOccurred())

		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service := route.NewService(routePostgres.NewRouteRepository(db), slogger)
		handler := route.NewHandler(&transport.BaseHandler{Logger: slogger}, service)

		router = chi.NewRouter()
		router.Get("/routes", handler.ListRoutes)
		router.Post("/routes", handler.CreateRoute)
		router.Delete("/routes/{id}", handler.DeleteRoute)
		router.Post("/routes/bulk-delete", handler.DeleteRoutes)
	})

	AfterEach(func() {
		dbtest.Close(db)
	})

	do := func(method, path, body string) *httptest.ResponseRecorder {
		var req *http.Request
		if body == "" {
			req = httptest.NewRequest(method, path, nil)
		} else {
			req = httptest.NewRequest(method, path, strings.NewReader(body))
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	create := func(body string) *route.Route {
		rec := do(http.MethodPost, "/routes", body)
		Expect(rec.Code).To(Equal(http.StatusCreated), rec.Body.String())
		var created route.Route
		Expect(json.Unmarshal(rec.Body.Bytes(), &created)).To(Succeed())
		return &created
	}

	message := func(rec *httptest.ResponseRecorder) string {
		var body struct {
			Message string `json:"message"`
			Error   struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		if body.Message != "" {
			return body.Message
		}
		return body.Error.Message
	}

	It("normalises codes and flight numbers on create", func() {
		created := create(`{"departure_icao":"egll","arrival_icao":"kjfk","flight_numbers":["ba117","BA117 ","BA175"],"flight_time":480}`)

		Expect(created.DepartureIcao).To(Equal("EGLL"))
		Expect(created.ArrivalIcao).To(Equal("KJFK"))
		Expect(created.FlightNumbers).To(Equal([]string{"BA117", "BA175"}))

		rec := do(http.MethodGet, "/routes", "")
		Expect(rec.Code).To(Equal(http.StatusOK))
		var body route.RoutesResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		Expect(body.Routes).To(HaveLen(1))
		Expect(body.Routes[0].FlightNumbers).To(Equal([]string{"BA117", "BA175"}))
	})

	It("rejects invalid payloads", func() {
		Expect(do(http.MethodPost, "/routes", `{"departure_icao":"EGL","arrival_icao":"KJFK","flight_numbers":["X1"],"flight_time":60}`).Code).
			To(Equal(http.StatusBadRequest))
		Expect(do(http.MethodPost, "/routes", `{"departure_icao":"EGLL","arrival_icao":"KJFK","flight_numbers":[],"flight_time":60}`).Code).
			To(Equal(http.StatusBadRequest))
		Expect(do(http.MethodPost, "/routes", `{"departure_icao":"EGLL","arrival_icao":"KJFK","flight_numbers":["X1"],"flight_time":0}`).Code).
			To(Equal(http.StatusBadRequest))
		Expect(do(http.MethodPost, "/routes", `{"departure_icao":"EGLL","arrival_icao":"EGLL","flight_numbers":["X1"],"flight_time":60}`).Code).
			To(Equal(http.StatusBadRequest))
	})

	It("refuses to delete a route referenced by a pirep", func() {
		created := create(`{"departure_icao":"EGLL","arrival_icao":"KJFK","flight_numbers":["BA117"],"flight_time":480}`)
		Expect(db.Exec("INSERT INTO users (id, name, email, password_hash, created_at) VALUES ('u1', 'Pilot', 'p@example.com', 'x', 1)").Error).To(Succeed())
		Expect(db.Exec("INSERT INTO pireps (id, user_id, route_id, date, created_at) VALUES ('p1', 'u1', ?, 10, 1)", created.ID).Error).To(Succeed())

		rec := do(http.MethodDelete, "/routes/"+created.ID, "")
		Expect(rec.Code).To(Equal(http.StatusConflict))
		Expect(message(rec)).To(Equal("Cannot delete route - it is being used in existing records"))

		rec = do(http.MethodPost, "/routes/bulk-delete", `{"ids":["`+created.ID+`"]}`)
		Expect(rec.Code).To(Equal(http.StatusConflict))
		Expect(message(rec)).To(Equal("Cannot delete routes - one or more are being used in existing records"))
	})

	It("deletes a single route and reports unknown ids", func() {
		created := create(`{"departure_icao":"EGLL","arrival_icao":"KJFK","flight_numbers":["BA117"],"flight_time":480}`)

		rec := do(http.MethodDelete, "/routes/"+created.ID, "")
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(message(rec)).To(Equal("Route deleted"))

		Expect(do(http.MethodDelete, "/routes/"+created.ID, "").Code).To(Equal(http.StatusNotFound))
	})

	It("bulk deletes all or nothing", func() {
		a := create(`{"departure_icao":"EGLL","arrival_icao":"KJFK","flight_numbers":["BA117"],"flight_time":480}`)
		b := create(`{"departure_icao":"KJFK","arrival_icao":"EGLL","flight_numbers":["BA118"],"flight_time":420}`)

		rec := do(http.MethodPost, "/routes/bulk-delete", `{"ids":["`+a.ID+`","missing"]}`)
		Expect(rec.Code).To(Equal(http.StatusNotFound))

		var count int64
		Expect(db.Table("routes").Count(&count).Error).To(Succeed())
		Expect(count).To(BeEquivalentTo(2))

		rec = do(http.MethodPost, "/routes/bulk-delete", `{"ids":["`+a.ID+`","`+b.ID+`","`+a.ID+`"]}`)
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(message(rec)).To(Equal("2 routes deleted"))
	})
})
