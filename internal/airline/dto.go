package airline

import "strings"

type UpdateAirlineRequest struct {
	Name             string `json:"name" validate:"notblank,max=100"`
	Callsign         string `json:"callsign" validate:"notblank,max=10"`
	InactivityPeriod int    `json:"inactivity_period" validate:"min=1,max=3650"`
}

func (r *UpdateAirlineRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Callsign = strings.ToUpper(strings.TrimSpace(r.Callsign))
}
