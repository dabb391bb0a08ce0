package postgres_test

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	airlinePostgres "github.com/frahmantamala/airline-admin/internal/airline/postgres"
	airlineDatamodel "github.com/frahmantamala/airline-admin/internal/core/datamodel/airline"
	"github.com/frahmantamala/airline-admin/internal/core/dbtest"
)

func TestAirlinePostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Airline Repository Suite")
}

var _ = Describe("AirlineRepository", func() {
	var (
		db   *gorm.DB
		repo *airlinePostgres.AirlineRepository
		ctx  context.Context
	)

	BeforeEach(func() {
		var err error
		db, err = dbtest.OpenSQLite()
		Expect(err).NotTo(HaveOccurred())
		repo = airlinePostgres.NewAirlineRepository(db)
		ctx = context.Background()
	})

	AfterEach(func() {
		dbtest.Close(db)
	})

	It("returns nil settings when no airline exists", func() {
		row, err := repo.Get(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(row).To(BeNil())

		settings, err := repo.GetSettings(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(settings).To(BeNil())
	})

	It("inserts and then updates the same row", func() {
		period := 10
		row := &airlineDatamodel.Airline{ID: "va", Name: "Virtual Air", Callsign: "VA", InactivityPeriod: &period}
		Expect(repo.Save(ctx, row)).To(Succeed())

		period = 20
		row.InactivityPeriod = &period
		Expect(repo.Save(ctx, row)).To(Succeed())

		var count int64
		Expect(db.Model(&airlineDatamodel.Airline{}).Count(&count).Error).To(Succeed())
		Expect(count).To(Equal(int64(1)))

		settings, err := repo.GetSettings(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(settings.InactivityPeriod).To(Equal(20))
		Expect(settings.Callsign).To(Equal("VA"))
	})

	It("leaves the period zero when unset so the engine default applies", func() {
		Expect(repo.Save(ctx, &airlineDatamodel.Airline{ID: "va", Name: "Virtual Air", Callsign: "VA"})).To(Succeed())

		settings, err := repo.GetSettings(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(settings.InactivityPeriod).To(BeZero())
	})

	It("rejects a negative period through the check constraint", func() {
		period := -1
		err := repo.Save(ctx, &airlineDatamodel.Airline{ID: "va", Name: "Virtual Air", InactivityPeriod: &period})
		Expect(err).To(HaveOccurred())
	})
})
