package inactivity_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/airline-admin/internal/inactivity"
	"github.com/frahmantamala/airline-admin/internal/inactivity/inactivitytest"
)

func ids(users []inactivity.InactiveUser) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.ID)
	}
	return out
}

var _ = Describe("Timeframe", func() {
	Describe("ResolveTimeframe", func() {
		It("uses 30 days when no settings exist", func() {
			before := time.Now().Unix()
			tf := inactivity.ResolveTimeframe(nil, time.Now())

			Expect(tf.Now).To(BeNumerically("~", before, 1))
			Expect(tf.Now - tf.Cutoff).To(Equal(int64(30 * 86400)))
		})

		It("treats a zero period as the default", func() {
			now := time.Unix(inactivitytest.Day(100), 0)
			tf := inactivity.ResolveTimeframe(&inactivity.Settings{InactivityPeriod: 0}, now)

			Expect(tf.Cutoff).To(Equal(inactivitytest.Day(70)))
		})

		It("treats a negative period as the default", func() {
			now := time.Unix(inactivitytest.Day(100), 0)
			tf := inactivity.ResolveTimeframe(&inactivity.Settings{InactivityPeriod: -3}, now)

			Expect(tf.Cutoff).To(Equal(inactivitytest.Day(70)))
		})

		It("honours a configured period", func() {
			now := time.Unix(inactivitytest.Day(100), 0)
			tf := inactivity.ResolveTimeframe(&inactivity.Settings{InactivityPeriod: 14}, now)

			Expect(tf.Now).To(Equal(inactivitytest.Day(100)))
			Expect(tf.Cutoff).To(Equal(inactivitytest.Day(86)))
		})
	})

	Describe("IsInactive", func() {
		var (
			tf        inactivity.Timeframe
			candidate inactivity.Candidate
		)

		BeforeEach(func() {
			tf = inactivity.Timeframe{Now: inactivitytest.Day(100), Cutoff: inactivitytest.Day(70)}
			candidate = inactivity.Candidate{
				ID:         "u1",
				Name:       "Pilot",
				Verified:   true,
				CreatedAt:  inactivitytest.Day(1),
				LastFlight: inactivitytest.Int64(inactivitytest.Day(50)),
			}
		})

		It("flags a verified, unbanned user whose last flight is before the cutoff", func() {
			Expect(tf.IsInactive(candidate)).To(BeTrue())
		})

		It("does not flag activity exactly at the cutoff", func() {
			candidate.LastFlight = inactivitytest.Int64(tf.Cutoff)
			Expect(tf.IsInactive(candidate)).To(BeFalse())
		})

		It("falls back to the creation time when the user never flew", func() {
			candidate.LastFlight = nil
			Expect(tf.IsInactive(candidate)).To(BeTrue())

			candidate.CreatedAt = inactivitytest.Day(80)
			Expect(tf.IsInactive(candidate)).To(BeFalse())
		})

		It("never flags banned users", func() {
			candidate.Banned = true
			Expect(tf.IsInactive(candidate)).To(BeFalse())
		})

		It("never flags unverified users", func() {
			candidate.Verified = false
			Expect(tf.IsInactive(candidate)).To(BeFalse())
		})

		It("lets an approved leave spanning now override inactivity", func() {
			candidate.Leaves = []inactivity.Leave{{Status: "approved", StartDate: tf.Now - 1, EndDate: tf.Now + 1}}
			Expect(tf.IsInactive(candidate)).To(BeFalse())
		})

		It("treats leave boundaries as inclusive", func() {
			candidate.Leaves = []inactivity.Leave{{Status: "approved", StartDate: tf.Now, EndDate: tf.Now}}
			Expect(tf.IsInactive(candidate)).To(BeFalse())
		})

		It("ignores leave that is not approved", func() {
			candidate.Leaves = []inactivity.Leave{
				{Status: "pending", StartDate: tf.Now - 1, EndDate: tf.Now + 1},
				{Status: "denied", StartDate: tf.Now - 1, EndDate: tf.Now + 1},
			}
			Expect(tf.IsInactive(candidate)).To(BeTrue())
		})
	})
})

var _ = Describe("MatchesSearch", func() {
	smith := inactivity.Candidate{ID: "s", Name: "Smith"}
	jones := inactivity.Candidate{ID: "j", Name: "Jones", Callsign: inactivitytest.Int64(42)}

	It("matches everything on an empty search", func() {
		Expect(inactivity.MatchesSearch(smith, "VA", "")).To(BeTrue())
	})

	It("matches names case-insensitively", func() {
		Expect(inactivity.MatchesSearch(smith, "VA", "smi")).To(BeTrue())
		Expect(inactivity.MatchesSearch(smith, "VA", "SMITH")).To(BeTrue())
	})

	It("matches the prefix joined with the callsign", func() {
		Expect(inactivity.MatchesSearch(jones, "SMI", "smi42")).To(BeTrue())
		Expect(inactivity.MatchesSearch(jones, "VA", "a4")).To(BeTrue())
		Expect(inactivity.MatchesSearch(jones, "VA", "va43")).To(BeFalse())
	})

	It("never matches a callsign search for users without a callsign", func() {
		Expect(inactivity.MatchesSearch(smith, "VA", "va")).To(BeFalse())
	})
})

var _ = Describe("Paginate", func() {
	users := []inactivity.InactiveUser{{ID: "1"}, {ID: "2"}, {ID: "3"}}

	It("normalises a page below one to the first page", func() {
		page := inactivity.Paginate(users, 0, 2)
		Expect(ids(page.Users)).To(Equal([]string{"1", "2"}))
		Expect(page.Total).To(Equal(int64(3)))
	})

	It("returns an empty slice, not nil, past the end", func() {
		page := inactivity.Paginate(users, 5, 2)
		Expect(page.Users).NotTo(BeNil())
		Expect(page.Users).To(BeEmpty())
		Expect(page.Total).To(Equal(int64(3)))
	})
})

var _ = Describe("Evaluate scenarios", func() {
	for _, sc := range inactivitytest.Scenarios() {
		It(sc.Name, func() {
			tf := inactivity.ResolveTimeframe(sc.Settings, time.Unix(sc.Now, 0))
			all := inactivity.Evaluate(sc.Candidates(), tf, sc.Settings.CallsignPrefix(), sc.Search)

			if sc.Limit == 0 {
				Expect(ids(all)).To(Equal(sc.WantIDs))
				Expect(int64(len(all))).To(Equal(sc.WantTotal))
				return
			}

			page := inactivity.Paginate(all, sc.Page, sc.Limit)
			Expect(ids(page.Users)).To(Equal(sc.WantIDs))
			Expect(page.Total).To(Equal(sc.WantTotal))
		})
	}

	It("reports a never-flown user with a nil last flight", func() {
		sc := inactivitytest.Scenarios()[0]
		tf := inactivity.ResolveTimeframe(sc.Settings, time.Unix(sc.Now, 0))
		all := inactivity.Evaluate(sc.Candidates(), tf, "", "")

		Expect(all).To(HaveLen(2))
		Expect(*all[0].LastFlight).To(Equal(inactivitytest.Day(50)))
		Expect(all[1].ID).To(Equal("d"))
		Expect(all[1].LastFlight).To(BeNil())
	})
})
