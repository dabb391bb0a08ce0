package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/frahmantamala/airline-admin/internal"
	airlinePostgres "github.com/frahmantamala/airline-admin/internal/airline/postgres"
	"github.com/frahmantamala/airline-admin/internal/core/dbtest"
	"github.com/frahmantamala/airline-admin/internal/inactivity"
	inactivityPostgres "github.com/frahmantamala/airline-admin/internal/inactivity/postgres"
)

func openTestDatabase() *Database {
	gdb, err := dbtest.OpenSQLite()
	Expect(err).NotTo(HaveOccurred())
	sqlDB, err := gdb.DB()
	Expect(err).NotTo(HaveOccurred())
	return &Database{Gorm: gdb, SQLX: sqlx.NewDb(sqlDB, "sqlite3"), Driver: internal.DriverSQLite}
}

func seedFixture(db *gorm.DB, now time.Time) {
	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.MinCost)
	Expect(err).NotTo(HaveOccurred())
	Expect(db.Transaction(func(tx *gorm.DB) error {
		return seed(tx, string(hash), now)
	})).To(Succeed())
}

var _ = Describe("seed", func() {
	var db *Database

	BeforeEach(func() {
		db = openTestDatabase()
	})

	AfterEach(func() {
		dbtest.Close(db.Gorm)
	})

	It("produces the idle and never-flown pilots as inactive", func() {
		now := time.Now()
		seedFixture(db.Gorm, now)

		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc := inactivity.NewService(
			inactivityPostgres.NewInactivityRepository(db.Gorm),
			airlinePostgres.NewAirlineRepository(db.Gorm),
			lg,
		).WithClock(func() time.Time { return now })

		users, err := svc.GetAllInactiveUsers(context.Background())
		Expect(err).NotTo(HaveOccurred())

		names := make([]string, 0, len(users))
		for _, u := range users {
			names = append(names, u.Name)
		}
		Expect(names).To(Equal([]string{"Ida Idle", "Nora Neverflown"}))
	})

	It("clears every seeded table", func() {
		seedFixture(db.Gorm, time.Now())
		Expect(clearSeedData(db.Gorm)).To(Succeed())

		for _, table := range []string{"users", "pireps", "routes", "aircraft", "airlines"} {
			var n int
			Expect(db.SQLX.Get(&n, "SELECT COUNT(*) FROM "+table)).To(Succeed())
			Expect(n).To(BeZero(), table)
		}
	})
})

var _ = Describe("resetPassword", func() {
	var (
		db  *Database
		out *bytes.Buffer
	)

	BeforeEach(func() {
		db = openTestDatabase()
		out = &bytes.Buffer{}
		seedFixture(db.Gorm, time.Now())
	})

	AfterEach(func() {
		dbtest.Close(db.Gorm)
	})

	storedHash := func(email string) string {
		var hash string
		Expect(db.SQLX.Get(&hash, "SELECT password_hash FROM users WHERE email = ?", email)).To(Succeed())
		return hash
	}

	It("updates the hash after confirmation", func() {
		in := strings.NewReader("IDLE@example.com\nnew-secret\nnew-secret\nyes\n")

		Expect(resetPassword(context.Background(), db, bcrypt.MinCost, in, out)).To(Succeed())

		Expect(out.String()).To(ContainSubstring("Found user: Ida Idle <idle@example.com>"))
		Expect(out.String()).To(ContainSubstring("Password updated"))
		Expect(bcrypt.CompareHashAndPassword([]byte(storedHash("idle@example.com")), []byte("new-secret"))).To(Succeed())
	})

	It("leaves the password alone when not confirmed", func() {
		before := storedHash("idle@example.com")
		in := strings.NewReader("idle@example.com\nnew-secret\nnew-secret\nno\n")

		Expect(resetPassword(context.Background(), db, bcrypt.MinCost, in, out)).To(Succeed())

		Expect(out.String()).To(ContainSubstring("Aborted"))
		Expect(storedHash("idle@example.com")).To(Equal(before))
	})

	It("rejects mismatched passwords", func() {
		in := strings.NewReader("idle@example.com\none-secret\nother-secret\n")

		err := resetPassword(context.Background(), db, bcrypt.MinCost, in, out)
		Expect(err).To(MatchError("passwords do not match"))
	})

	It("rejects an empty password", func() {
		in := strings.NewReader("idle@example.com\n\n")

		err := resetPassword(context.Background(), db, bcrypt.MinCost, in, out)
		Expect(err).To(MatchError("password cannot be empty"))
	})

	It("reports an unknown email", func() {
		in := strings.NewReader("ghost@example.com\n")

		err := resetPassword(context.Background(), db, bcrypt.MinCost, in, out)
		Expect(err).To(MatchError(ContainSubstring("no user with email")))
	})
})
