package postgres_test

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	airlinePostgres "github.com/frahmantamala/airline-admin/internal/airline/postgres"
	"github.com/frahmantamala/airline-admin/internal/core/dbtest"
	"github.com/frahmantamala/airline-admin/internal/inactivity"
	"github.com/frahmantamala/airline-admin/internal/inactivity/inactivitytest"
	inactivityPostgres "github.com/frahmantamala/airline-admin/internal/inactivity/postgres"
)

func TestInactivityPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Inactivity Repository Suite")
}

func ids(users []inactivity.InactiveUser) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.ID)
	}
	return out
}

var _ = Describe("Inactivity Repository", func() {
	var (
		db   *gorm.DB
		repo inactivity.RepositoryAPI
		ctx  context.Context
	)

	BeforeEach(func() {
		var err error
		db, err = dbtest.OpenSQLite()
		Expect(err).NotTo(HaveOccurred())
		repo = inactivityPostgres.NewInactivityRepository(db)
		ctx = context.Background()
	})

	AfterEach(func() {
		dbtest.Close(db)
	})

	Describe("shared scenarios", func() {
		for _, sc := range inactivitytest.Scenarios() {
			It(sc.Name, func() {
				Expect(inactivitytest.Seed(db, sc)).To(Succeed())
				tf := inactivity.ResolveTimeframe(sc.Settings, time.Unix(sc.Now, 0))

				if sc.Limit == 0 {
					users, err := repo.FindAllInactive(ctx, tf)
					Expect(err).NotTo(HaveOccurred())
					Expect(ids(users)).To(Equal(sc.WantIDs))
					Expect(int64(len(users))).To(Equal(sc.WantTotal))
					return
				}

				_, limit, offset := inactivity.NormalizePage(sc.Page, sc.Limit)
				page, err := repo.FindInactivePage(ctx, inactivity.Query{
					Timeframe:      tf,
					CallsignPrefix: sc.Settings.CallsignPrefix(),
					Search:         sc.Search,
					Limit:          limit,
					Offset:         offset,
				})
				Expect(err).NotTo(HaveOccurred())
				Expect(ids(page.Users)).To(Equal(sc.WantIDs))
				Expect(page.Total).To(Equal(sc.WantTotal))
			})
		}
	})

	Describe("FindInactivePage", func() {
		It("returns the projected columns with a nil last flight for users who never flew", func() {
			sc := inactivitytest.Scenarios()[0]
			Expect(inactivitytest.Seed(db, sc)).To(Succeed())
			tf := inactivity.ResolveTimeframe(sc.Settings, time.Unix(sc.Now, 0))

			page, err := repo.FindInactivePage(ctx, inactivity.Query{Timeframe: tf, Limit: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Users).To(HaveLen(2))

			alice := page.Users[0]
			Expect(alice.Name).To(Equal("Alice"))
			Expect(alice.Email).To(Equal("a@example.com"))
			Expect(alice.LastFlight).NotTo(BeNil())
			Expect(*alice.LastFlight).To(Equal(inactivitytest.Day(50)))

			Expect(page.Users[1].ID).To(Equal("d"))
			Expect(page.Users[1].LastFlight).To(BeNil())
		})

		It("returns an empty page on an empty store", func() {
			tf := inactivity.ResolveTimeframe(nil, time.Now())

			page, err := repo.FindInactivePage(ctx, inactivity.Query{Timeframe: tf, Limit: 25})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Users).NotTo(BeNil())
			Expect(page.Users).To(BeEmpty())
			Expect(page.Total).To(BeZero())
		})

		It("honours a cancelled context", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			_, err := repo.FindInactivePage(cancelled, inactivity.Query{Timeframe: inactivity.ResolveTimeframe(nil, time.Now()), Limit: 5})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("InactiveCondition", func() {
		It("can be negated to select active users", func() {
			sc := inactivitytest.Scenarios()[0]
			Expect(inactivitytest.Seed(db, sc)).To(Succeed())
			tf := inactivity.ResolveTimeframe(sc.Settings, time.Unix(sc.Now, 0))

			cond, vars := inactivityPostgres.InactiveCondition(tf)
			var active []string
			err := db.Table("users").Where("NOT "+cond, vars...).Order("id").Pluck("id", &active).Error
			Expect(err).NotTo(HaveOccurred())
			Expect(active).To(Equal([]string{"b", "c"}))
		})
	})

	Describe("through the service", func() {
		It("reads the airline row for period and prefix", func() {
			sc := inactivitytest.Scenarios()[0]
			Expect(inactivitytest.Seed(db, sc)).To(Succeed())

			svc := inactivity.NewService(repo, airlinePostgres.NewAirlineRepository(db), nil).
				WithClock(func() time.Time { return time.Unix(sc.Now, 0) })

			page, err := svc.GetInactiveUsersPaginated(ctx, 1, 10, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(ids(page.Users)).To(Equal([]string{"a", "d"}))
			Expect(page.Total).To(Equal(int64(2)))

			all, err := svc.GetAllInactiveUsers(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(ids(all)).To(Equal([]string{"a", "d"}))
		})

		It("falls back to the default period without an airline row", func() {
			Expect(inactivitytest.SeedUser(db, inactivitytest.User{
				ID: "old", Name: "Old", Email: "old@example.com", Verified: true, CreatedAt: inactivitytest.Day(1),
			})).To(Succeed())

			svc := inactivity.NewService(repo, airlinePostgres.NewAirlineRepository(db), nil).
				WithClock(func() time.Time { return time.Unix(inactivitytest.Day(40), 0) })

			all, err := svc.GetAllInactiveUsers(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(ids(all)).To(Equal([]string{"old"}))
		})
	})
})
