package rank

import (
	rankDatamodel "github.com/frahmantamala/airline-admin/internal/core/datamodel/rank"
)

type Rank struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	MinimumFlightTime int      `json:"minimum_flight_time"`
	MaximumFlightTime *int     `json:"maximum_flight_time"`
	AllowAllAircraft  bool     `json:"allow_all_aircraft"`
	AircraftIDs       []string `json:"aircraft_ids"`
	CreatedAt         int64    `json:"created_at"`
}

func FromDataModel(r *rankDatamodel.Rank, aircraftIDs []string) *Rank {
	if aircraftIDs == nil {
		aircraftIDs = []string{}
	}
	return &Rank{
		ID:                r.ID,
		Name:              r.Name,
		MinimumFlightTime: r.MinimumFlightTime,
		MaximumFlightTime: r.MaximumFlightTime,
		AllowAllAircraft:  r.AllowAllAircraft,
		AircraftIDs:       aircraftIDs,
		CreatedAt:         r.CreatedAt,
	}
}
