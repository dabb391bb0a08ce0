package inactivity

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/frahmantamala/airline-admin/internal/core/events"
	"github.com/frahmantamala/airline-admin/internal/notifier"
	"github.com/frahmantamala/airline-admin/pkg/logger"
)

const NotifyJobName = "inactivity-notify"

const NoticeKindInactive = "pilot.inactive"

// NotifyJob reports the full inactive listing on every cron tick: one event
// on the bus and one webhook notice per pilot.
type NotifyJob struct {
	service   *Service
	publisher events.Publisher
	sender    notifier.Sender
}

func NewNotifyJob(service *Service, publisher events.Publisher, sender notifier.Sender) *NotifyJob {
	if sender == nil {
		sender = notifier.Discard{}
	}
	return &NotifyJob{service: service, publisher: publisher, sender: sender}
}

func (j *NotifyJob) Name() string {
	return NotifyJobName
}

func (j *NotifyJob) Run(ctx context.Context) error {
	lg := logger.From(ctx)

	users, tf, prefix, err := j.service.listAll(ctx)
	if err != nil {
		return err
	}

	lg.Info("inactive pilots detected", "count", len(users), "cutoff", tf.Cutoff)
	if len(users) == 0 {
		return nil
	}

	if j.publisher != nil {
		if err := j.publisher.Publish(ctx, events.NewInactiveUsersDetectedEvent(toEventUsers(users), tf.Cutoff)); err != nil {
			return fmt.Errorf("publish inactive users event: %w", err)
		}
	}

	var dropped int
	for _, u := range users {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := j.sender.Enqueue(notifier.Notice{
			Kind:     NoticeKindInactive,
			UserID:   u.ID,
			UserName: u.Name,
			Content:  NoticeContent(u, prefix),
		})
		if errors.Is(err, notifier.ErrQueueFull) {
			dropped++
			continue
		}
		if err != nil {
			return fmt.Errorf("enqueue notice for %s: %w", u.ID, err)
		}
	}
	if dropped > 0 {
		lg.Warn("some inactivity notices were dropped", "dropped", dropped, "total", len(users))
	}
	return nil
}

// NoticeContent renders the human-readable line posted for one pilot. The
// callsign is shown the way pilots search for it, prefix then number.
func NoticeContent(u InactiveUser, callsignPrefix string) string {
	who := u.Name
	if u.Callsign != nil {
		who += " (" + callsignPrefix + strconv.FormatInt(*u.Callsign, 10) + ")"
	}
	if u.LastFlight == nil {
		return who + " is inactive and has never filed a flight"
	}
	return who + " is inactive, last flight at <t:" + strconv.FormatInt(*u.LastFlight, 10) + ":D>"
}

func toEventUsers(users []InactiveUser) []events.InactiveUser {
	out := make([]events.InactiveUser, 0, len(users))
	for _, u := range users {
		out = append(out, events.InactiveUser{
			ID:         u.ID,
			Name:       u.Name,
			Email:      u.Email,
			Callsign:   u.Callsign,
			LastFlight: u.LastFlight,
		})
	}
	return out
}
