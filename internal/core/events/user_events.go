package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeInactiveUsersDetected = "users.inactive_detected"
	EventTypeUserBanned            = "user.banned"
	EventTypeUserKicked            = "user.kicked"
	EventTypeUserRoleChanged       = "user.role_changed"
)

// InactiveUser is the slice of an inactive pilot carried on events.
type InactiveUser struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Callsign   *int64 `json:"callsign,omitempty"`
	LastFlight *int64 `json:"last_flight,omitempty"`
}

type InactiveUsersDetectedEvent struct {
	BaseEvent
	Users  []InactiveUser `json:"users"`
	Cutoff int64          `json:"cutoff"`
}

func NewInactiveUsersDetectedEvent(users []InactiveUser, cutoff int64) *InactiveUsersDetectedEvent {
	return &InactiveUsersDetectedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeInactiveUsersDetected,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"count":  len(users),
				"cutoff": cutoff,
			},
		},
		Users:  users,
		Cutoff: cutoff,
	}
}

type UserModeratedEvent struct {
	BaseEvent
	UserID  string `json:"user_id"`
	ActorID string `json:"actor_id"`
	Reason  string `json:"reason,omitempty"`
}

func newUserModeratedEvent(eventType, userID, actorID, reason string) *UserModeratedEvent {
	return &UserModeratedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id":  userID,
				"actor_id": actorID,
				"reason":   reason,
			},
		},
		UserID:  userID,
		ActorID: actorID,
		Reason:  reason,
	}
}

func NewUserBannedEvent(userID, actorID, reason string) *UserModeratedEvent {
	return newUserModeratedEvent(EventTypeUserBanned, userID, actorID, reason)
}

func NewUserKickedEvent(userID, actorID string) *UserModeratedEvent {
	return newUserModeratedEvent(EventTypeUserKicked, userID, actorID, "")
}

// NewUserRoleChangedEvent reason carries "+role" or "-role".
func NewUserRoleChangedEvent(userID, actorID, change string) *UserModeratedEvent {
	return newUserModeratedEvent(EventTypeUserRoleChanged, userID, actorID, change)
}
