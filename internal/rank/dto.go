package rank

import "strings"

type CreateRankRequest struct {
	Name              string   `json:"name" validate:"notblank,max=100"`
	MinimumFlightTime int      `json:"minimum_flight_time" validate:"min=0"`
	MaximumFlightTime *int     `json:"maximum_flight_time" validate:"omitempty,min=0"`
	AllowAllAircraft  bool     `json:"allow_all_aircraft"`
	AircraftIDs       []string `json:"aircraft_ids" validate:"dive,notblank"`
}

func (r *CreateRankRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	if r.AllowAllAircraft {
		r.AircraftIDs = nil
	}
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"min=1,dive,notblank"`
}

type RanksResponse struct {
	Ranks []*Rank `json:"ranks"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
