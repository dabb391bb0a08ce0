package events_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/airline-admin/internal/core/events"
)

func TestEvents(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Events Suite")
}

var _ = Describe("EventBus", func() {
	var bus *events.EventBus

	BeforeEach(func() {
		bus = events.NewEventBus(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})))
	})

	It("delivers asynchronously published events to every subscriber", func() {
		var calls atomic.Int32
		handler := func(ctx context.Context, e events.Event) error {
			calls.Add(1)
			return nil
		}
		bus.Subscribe(events.EventTypeUserBanned, handler)
		bus.Subscribe(events.EventTypeUserBanned, handler)

		Expect(bus.Publish(context.Background(), events.NewUserBannedEvent("u1", "admin", "spam"))).To(Succeed())
		bus.Wait()

		Expect(calls.Load()).To(Equal(int32(2)))
	})

	It("keeps async handlers running after the publishing context is cancelled", func() {
		var sawErr atomic.Value
		bus.Subscribe(events.EventTypeUserKicked, func(ctx context.Context, e events.Event) error {
			sawErr.Store(ctx.Err() == nil)
			return nil
		})

		ctx, cancel := context.WithCancel(context.Background())
		Expect(bus.Publish(ctx, events.NewUserKickedEvent("u1", "admin"))).To(Succeed())
		cancel()
		bus.Wait()

		Expect(sawErr.Load()).To(Equal(true))
	})

	It("ignores events nobody subscribed to", func() {
		Expect(bus.Publish(context.Background(), events.NewUserKickedEvent("u1", "admin"))).To(Succeed())
		Expect(bus.PublishSync(context.Background(), events.NewUserKickedEvent("u1", "admin"))).To(Succeed())
	})

	It("stops synchronous delivery at the first failing handler", func() {
		var second bool
		bus.Subscribe(events.EventTypeUserRoleChanged, func(ctx context.Context, e events.Event) error {
			return errors.New("boom")
		})
		bus.Subscribe(events.EventTypeUserRoleChanged, func(ctx context.Context, e events.Event) error {
			second = true
			return nil
		})

		err := bus.PublishSync(context.Background(), events.NewUserRoleChangedEvent("u1", "owner", "+admin"))
		Expect(err).To(MatchError(ContainSubstring("boom")))
		Expect(second).To(BeFalse())
	})

	It("carries the inactive users on the detection event", func() {
		e := events.NewInactiveUsersDetectedEvent([]events.InactiveUser{{ID: "a"}, {ID: "d"}}, 1000)

		Expect(e.EventType()).To(Equal(events.EventTypeInactiveUsersDetected))
		Expect(e.EventID()).NotTo(BeEmpty())
		Expect(e.Users).To(HaveLen(2))
		Expect(e.Payload()).To(HaveKeyWithValue("count", 2))
	})
})
