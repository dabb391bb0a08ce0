package postgres_test

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	userDatamodel "github.com/frahmantamala/airline-admin/internal/core/datamodel/user"
	"github.com/frahmantamala/airline-admin/internal/core/dbtest"
	"github.com/frahmantamala/airline-admin/internal/inactivity"
	"github.com/frahmantamala/airline-admin/internal/inactivity/inactivitytest"
	"github.com/frahmantamala/airline-admin/internal/user"
	userPostgres "github.com/frahmantamala/airline-admin/internal/user/postgres"
)

func TestUserPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Repository Suite")
}

func ids(users []*userDatamodel.User) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.ID)
	}
	return out
}

var _ = Describe("UserRepository", func() {
	var (
		db   *gorm.DB
		repo user.RepositoryAPI
		ctx  context.Context
		sc   inactivitytest.Scenario
		tf   inactivity.Timeframe
	)

	BeforeEach(func() {
		var err error
		db, err = dbtest.OpenSQLite()
		Expect(err).NotTo(HaveOccurred())
		repo = userPostgres.NewUserRepository(db)
		ctx = context.Background()

		sc = inactivitytest.Scenarios()[0]
		Expect(inactivitytest.Seed(db, sc)).To(Succeed())
		tf = inactivity.ResolveTimeframe(sc.Settings, time.Unix(sc.Now, 0))
	})

	AfterEach(func() {
		dbtest.Close(db)
	})

	It("lists every user with a total", func() {
		users, total, err := repo.List(ctx, user.ListFilter{Limit: 10, Timeframe: tf})
		Expect(err).NotTo(HaveOccurred())
		Expect(total).To(Equal(int64(len(sc.Users))))
		Expect(users).To(HaveLen(len(sc.Users)))
	})

	It("hides exactly the users the inactivity engine reports", func() {
		users, total, err := repo.List(ctx, user.ListFilter{Limit: 10, Timeframe: tf, HideInactive: true})
		Expect(err).NotTo(HaveOccurred())

		Expect(ids(users)).NotTo(ContainElements("a", "d"))
		Expect(ids(users)).To(ContainElements("b", "c"))
		Expect(total).To(Equal(int64(len(sc.Users) - 2)))
	})

	It("paginates", func() {
		first, total, err := repo.List(ctx, user.ListFilter{Limit: 1, Timeframe: tf})
		Expect(err).NotTo(HaveOccurred())
		second, _, err := repo.List(ctx, user.ListFilter{Limit: 1, Offset: 1, Timeframe: tf})
		Expect(err).NotTo(HaveOccurred())

		Expect(first).To(HaveLen(1))
		Expect(second).To(HaveLen(1))
		Expect(first[0].ID).NotTo(Equal(second[0].ID))
		Expect(total).To(Equal(int64(len(sc.Users))))
	})

	It("searches by name", func() {
		users, total, err := repo.List(ctx, user.ListFilter{Limit: 10, Timeframe: tf, Search: "ali"})
		Expect(err).NotTo(HaveOccurred())
		Expect(ids(users)).To(Equal([]string{"a"}))
		Expect(total).To(Equal(int64(1)))
	})

	It("bans, unbans and updates roles", func() {
		reason := "spam"
		expires := int64(2000000000)
		Expect(repo.UpdateBan(ctx, "b", true, &reason, &expires)).To(Succeed())

		u, err := repo.GetByID(ctx, "b")
		Expect(err).NotTo(HaveOccurred())
		Expect(u.Banned).To(BeTrue())
		Expect(*u.BanReason).To(Equal("spam"))
		Expect(*u.BanExpires).To(Equal(expires))

		Expect(repo.UpdateBan(ctx, "b", false, nil, nil)).To(Succeed())
		u, _ = repo.GetByID(ctx, "b")
		Expect(u.Banned).To(BeFalse())
		Expect(u.BanReason).To(BeNil())

		Expect(repo.UpdateRoles(ctx, "b", `["ranks"]`)).To(Succeed())
		u, _ = repo.GetByID(ctx, "b")
		Expect(user.ParseRoles(u.Role)).To(Equal([]string{"ranks"}))
	})

	It("deletes a user together with their pireps", func() {
		Expect(repo.Delete(ctx, "a")).To(Succeed())

		u, err := repo.GetByID(ctx, "a")
		Expect(err).NotTo(HaveOccurred())
		Expect(u).To(BeNil())

		var pireps int64
		Expect(db.Table("pireps").Where("user_id = ?", "a").Count(&pireps).Error).To(Succeed())
		Expect(pireps).To(BeZero())
	})

	It("reports a delete of a missing user", func() {
		Expect(repo.Delete(ctx, "ghost")).To(MatchError(gorm.ErrRecordNotFound))
	})
})
