package airline

import (
	airlineDatamodel "github.com/frahmantamala/airline-admin/internal/core/datamodel/airline"
	"github.com/frahmantamala/airline-admin/internal/inactivity"
)

type Airline struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Callsign         string `json:"callsign"`
	InactivityPeriod int    `json:"inactivity_period"`
	CreatedAt        int64  `json:"created_at"`
	UpdatedAt        int64  `json:"updated_at"`
}

// FromDataModel fills an unset inactivity period with the engine default so
// callers always see the value that is actually applied.
func FromDataModel(a *airlineDatamodel.Airline) *Airline {
	period := inactivity.DefaultInactivityPeriod
	if a.InactivityPeriod != nil && *a.InactivityPeriod > 0 {
		period = *a.InactivityPeriod
	}
	return &Airline{
		ID:               a.ID,
		Name:             a.Name,
		Callsign:         a.Callsign,
		InactivityPeriod: period,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

func ToSettings(a *airlineDatamodel.Airline) *inactivity.Settings {
	if a == nil {
		return nil
	}
	s := &inactivity.Settings{Callsign: a.Callsign}
	if a.InactivityPeriod != nil {
		s.InactivityPeriod = *a.InactivityPeriod
	}
	return s
}
