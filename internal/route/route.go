package route

import (
	"encoding/json"

	routeDatamodel "github.com/frahmantamala/airline-admin/internal/core/datamodel/route"
)

type Route struct {
	ID            string   `json:"id"`
	DepartureIcao string   `json:"departure_icao"`
	ArrivalIcao   string   `json:"arrival_icao"`
	FlightNumbers []string `json:"flight_numbers"`
	FlightTime    int      `json:"flight_time"`
	CreatedAt     int64    `json:"created_at"`
}

func FromDataModel(r *routeDatamodel.Route) *Route {
	numbers := []string{}
	if r.FlightNumbers != "" {
		_ = json.Unmarshal([]byte(r.FlightNumbers), &numbers)
	}
	return &Route{
		ID:            r.ID,
		DepartureIcao: r.DepartureIcao,
		ArrivalIcao:   r.ArrivalIcao,
		FlightNumbers: numbers,
		FlightTime:    r.FlightTime,
		CreatedAt:     r.CreatedAt,
	}
}

func encodeFlightNumbers(numbers []string) string {
	b, err := json.Marshal(numbers)
	if err != nil {
		return "[]"
	}
	return string(b)
}
