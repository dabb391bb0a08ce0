package inactivity_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/airline-admin/internal/inactivity"
	"github.com/frahmantamala/airline-admin/internal/transport"
)

type stubService struct {
	page              *inactivity.Page
	all               []inactivity.InactiveUser
	err               error
	gotPage, gotLimit int
	gotSearch         string
}

func (s *stubService) GetInactiveUsersPaginated(ctx context.Context, page, limit int, search string) (*inactivity.Page, error) {
	s.gotPage, s.gotLimit, s.gotSearch = page, limit, search
	if s.err != nil {
		return nil, s.err
	}
	return s.page, nil
}

func (s *stubService) GetAllInactiveUsers(ctx context.Context) ([]inactivity.InactiveUser, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.all, nil
}

var _ = Describe("Handler", func() {
	var (
		svc     *stubService
		handler *inactivity.Handler
	)

	BeforeEach(func() {
		svc = &stubService{page: &inactivity.Page{Users: []inactivity.InactiveUser{}, Total: 0}}
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		handler = inactivity.NewHandler(&transport.BaseHandler{Logger: slogger}, svc)
	})

	Describe("ListInactiveUsers", func() {
		It("passes page, limit and trimmed search through", func() {
			svc.page = &inactivity.Page{
				Users: []inactivity.InactiveUser{{ID: "a", Name: "Alice", Email: "a@example.com"}},
				Total: 11,
			}
			req := httptest.NewRequest(http.MethodGet, "/admin/users/inactive?page=2&limit=5&q=+smi+", nil)
			rec := httptest.NewRecorder()

			handler.ListInactiveUsers(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(svc.gotPage).To(Equal(2))
			Expect(svc.gotLimit).To(Equal(5))
			Expect(svc.gotSearch).To(Equal("smi"))

			var body map[string]interface{}
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body["total"]).To(BeNumerically("==", 11))
			users := body["users"].([]interface{})
			Expect(users).To(HaveLen(1))
			Expect(users[0].(map[string]interface{})).To(HaveKeyWithValue("last_flight", BeNil()))
		})

		It("defaults and caps paging parameters", func() {
			req := httptest.NewRequest(http.MethodGet, "/admin/users/inactive?page=0&limit=1000", nil)
			rec := httptest.NewRecorder()

			handler.ListInactiveUsers(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(svc.gotPage).To(Equal(1))
			Expect(svc.gotLimit).To(Equal(inactivity.MaxPageSize))
		})

		It("serialises an empty result as an empty array", func() {
			req := httptest.NewRequest(http.MethodGet, "/admin/users/inactive", nil)
			rec := httptest.NewRecorder()

			handler.ListInactiveUsers(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring(`"users":[]`))
			Expect(svc.gotLimit).To(Equal(inactivity.DefaultPageSize))
		})

		It("rejects a non-numeric page", func() {
			req := httptest.NewRequest(http.MethodGet, "/admin/users/inactive?page=two", nil)
			rec := httptest.NewRecorder()

			handler.ListInactiveUsers(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects a page number past the maximum", func() {
			req := httptest.NewRequest(http.MethodGet, "/admin/users/inactive?page=9223372036854775807", nil)
			rec := httptest.NewRecorder()

			handler.ListInactiveUsers(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(rec.Body.String()).To(ContainSubstring("INVALID_PAGE"))
			Expect(svc.gotPage).To(BeZero())
		})

		It("accepts the maximum page", func() {
			req := httptest.NewRequest(http.MethodGet, "/admin/users/inactive?page=1000000&limit=100", nil)
			rec := httptest.NewRecorder()

			handler.ListInactiveUsers(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(svc.gotPage).To(Equal(inactivity.MaxPage))
		})

		It("reports store failures as internal errors", func() {
			svc.err = errors.New("db down")
			req := httptest.NewRequest(http.MethodGet, "/admin/users/inactive", nil)
			rec := httptest.NewRecorder()

			handler.ListInactiveUsers(rec, req)

			Expect(rec.Code).To(Equal(http.StatusInternalServerError))
			Expect(rec.Body.String()).NotTo(ContainSubstring("db down"))
		})
	})

	Describe("ExportInactiveUsers", func() {
		It("returns every inactive user", func() {
			svc.all = []inactivity.InactiveUser{{ID: "a"}, {ID: "d"}}
			req := httptest.NewRequest(http.MethodGet, "/admin/users/inactive/all", nil)
			rec := httptest.NewRecorder()

			handler.ExportInactiveUsers(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			var body struct {
				Users []inactivity.InactiveUser `json:"users"`
				Total int                       `json:"total"`
			}
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body.Users).To(HaveLen(2))
			Expect(body.Total).To(Equal(2))
		})
	})
})

var _ = Describe("NormalizePage", func() {
	It("keeps the offset non-negative for huge pages", func() {
		page, limit, offset := inactivity.NormalizePage(math.MaxInt, 100)

		Expect(limit).To(Equal(100))
		Expect(offset).To(BeNumerically(">=", 0))
		Expect(offset).To(BeNumerically("<=", math.MaxInt32))
		Expect(offset).To(Equal((page - 1) * limit))
	})

	It("defaults page and limit", func() {
		page, limit, offset := inactivity.NormalizePage(0, 0)

		Expect(page).To(Equal(1))
		Expect(limit).To(Equal(inactivity.DefaultPageSize))
		Expect(offset).To(BeZero())
	})
})
