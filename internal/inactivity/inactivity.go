package inactivity

import (
	"context"
	"fmt"
	"math"
	"time"

	apperrors "github.com/frahmantamala/airline-admin/internal"
)

const (
	// DefaultInactivityPeriod applies when no airline row exists or its period is unset.
	DefaultInactivityPeriod = 30
	DefaultPageSize         = 25
	MaxPageSize             = 100
	// MaxPage is the highest page number accepted over HTTP.
	MaxPage = 1_000_000

	secondsPerDay = 24 * 60 * 60
)

// Settings is the slice of airline configuration the engine reads.
type Settings struct {
	InactivityPeriod int
	Callsign         string
}

// Timeframe pins "now" and the cutoff for one query invocation so every row
// is classified against the same instant.
type Timeframe struct {
	Now    int64
	Cutoff int64
}

// ResolveTimeframe computes the cutoff from settings. A nil settings value or a
// non-positive period falls back to DefaultInactivityPeriod.
func ResolveTimeframe(settings *Settings, now time.Time) Timeframe {
	period := DefaultInactivityPeriod
	if settings != nil && settings.InactivityPeriod > 0 {
		period = settings.InactivityPeriod
	}
	nowSeconds := now.Unix()
	return Timeframe{
		Now:    nowSeconds,
		Cutoff: nowSeconds - int64(period)*secondsPerDay,
	}
}

// CallsignPrefix returns the airline callsign used in searches, empty when absent.
func (s *Settings) CallsignPrefix() string {
	if s == nil {
		return ""
	}
	return s.Callsign
}

type InactiveUser struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Callsign   *int64  `json:"callsign"`
	Image      *string `json:"image"`
	LastFlight *int64  `json:"last_flight"`
}

type Page struct {
	Users []InactiveUser `json:"users"`
	Total int64          `json:"total"`
}

// Query is what the service hands to the repository after normalising input.
// A zero Limit means no pagination.
type Query struct {
	Timeframe      Timeframe
	CallsignPrefix string
	Search         string
	Limit          int
	Offset         int
}

// SettingsProvider returns nil settings and a nil error when no airline row exists.
type SettingsProvider interface {
	GetSettings(ctx context.Context) (*Settings, error)
}

type RepositoryAPI interface {
	FindInactivePage(ctx context.Context, q Query) (*Page, error)
	FindAllInactive(ctx context.Context, tf Timeframe) ([]InactiveUser, error)
}

// NormalizePage maps page and limit onto sane values and returns the row offset.
// The page is clamped so the offset stays within math.MaxInt32.
func NormalizePage(page, limit int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if maxPage := math.MaxInt32/limit + 1; page > maxPage {
		page = maxPage
	}
	return page, limit, (page - 1) * limit
}

// CheckPage rejects page numbers past MaxPage.
func CheckPage(page int) error {
	if page > MaxPage {
		return apperrors.NewValidationFieldError("page", fmt.Sprintf("page must be at most %d", MaxPage), apperrors.ErrCodeInvalidPage)
	}
	return nil
}
