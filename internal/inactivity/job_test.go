package inactivity_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/airline-admin/internal/core/events"
	"github.com/frahmantamala/airline-admin/internal/inactivity"
	"github.com/frahmantamala/airline-admin/internal/inactivity/inactivitytest"
	"github.com/frahmantamala/airline-admin/internal/notifier"
)

type recordingPublisher struct {
	published []events.Event
	err       error
}

func (p *recordingPublisher) Publish(ctx context.Context, e events.Event) error {
	p.published = append(p.published, e)
	return p.err
}

type recordingSender struct {
	notices []notifier.Notice
	full    bool
}

func (s *recordingSender) Enqueue(n notifier.Notice) error {
	if s.full {
		return notifier.ErrQueueFull
	}
	s.notices = append(s.notices, n)
	return nil
}

var _ = Describe("NotifyJob", func() {
	var (
		repo      *mockInactivityRepository
		publisher *recordingPublisher
		sender    *recordingSender
		job       *inactivity.NotifyJob
	)

	BeforeEach(func() {
		repo = &mockInactivityRepository{}
		publisher = &recordingPublisher{}
		sender = &recordingSender{}
		settings := &mockSettingsProvider{settings: &inactivity.Settings{InactivityPeriod: 30, Callsign: "VSK"}}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc := inactivity.NewService(repo, settings, logger).
			WithClock(func() time.Time { return time.Unix(inactivitytest.Day(100), 0) })
		job = inactivity.NewNotifyJob(svc, publisher, sender)
	})

	It("is registered under a stable name", func() {
		Expect(job.Name()).To(Equal("inactivity-notify"))
	})

	It("publishes one event and enqueues a notice per inactive pilot", func() {
		repo.all = []inactivity.InactiveUser{
			{ID: "a", Name: "Alice", LastFlight: inactivitytest.Int64(inactivitytest.Day(50))},
			{ID: "d", Name: "Dan", Callsign: inactivitytest.Int64(104)},
		}

		Expect(job.Run(context.Background())).To(Succeed())

		Expect(publisher.published).To(HaveLen(1))
		detected, ok := publisher.published[0].(*events.InactiveUsersDetectedEvent)
		Expect(ok).To(BeTrue())
		Expect(detected.Cutoff).To(Equal(inactivitytest.Day(70)))
		Expect(detected.Users).To(HaveLen(2))

		Expect(sender.notices).To(HaveLen(2))
		Expect(sender.notices[0].UserID).To(Equal("a"))
		Expect(sender.notices[0].Kind).To(Equal(inactivity.NoticeKindInactive))
		Expect(sender.notices[1].Content).To(Equal("Dan (VSK104) is inactive and has never filed a flight"))
	})

	It("renders the callsign with the airline prefix", func() {
		u := inactivity.InactiveUser{Name: "Ida", Callsign: inactivitytest.Int64(102), LastFlight: inactivitytest.Int64(inactivitytest.Day(40))}

		Expect(inactivity.NoticeContent(u, "VSK")).To(HavePrefix("Ida (VSK102) is inactive, last flight at <t:"))
		Expect(inactivity.NoticeContent(u, "")).To(HavePrefix("Ida (102) is inactive"))
	})

	It("does nothing when nobody is inactive", func() {
		Expect(job.Run(context.Background())).To(Succeed())
		Expect(publisher.published).To(BeEmpty())
		Expect(sender.notices).To(BeEmpty())
	})

	It("tolerates a full notifier queue", func() {
		repo.all = []inactivity.InactiveUser{{ID: "a", Name: "Alice"}}
		sender.full = true

		Expect(job.Run(context.Background())).To(Succeed())
		Expect(publisher.published).To(HaveLen(1))
	})

	It("fails when the store fails", func() {
		repo.err = errors.New("db down")

		err := job.Run(context.Background())
		Expect(err).To(MatchError(ContainSubstring("list inactive users")))
		Expect(publisher.published).To(BeEmpty())
	})
})
