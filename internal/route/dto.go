package route

import "strings"

type CreateRouteRequest struct {
	DepartureIcao string   `json:"departure_icao" validate:"len=4,alphanum"`
	ArrivalIcao   string   `json:"arrival_icao" validate:"len=4,alphanum"`
	FlightNumbers []string `json:"flight_numbers" validate:"min=1,dive,notblank,max=10"`
	// FlightTime is in minutes.
	FlightTime int `json:"flight_time" validate:"min=1"`
}

func (r *CreateRouteRequest) Normalize() {
	r.DepartureIcao = strings.ToUpper(strings.TrimSpace(r.DepartureIcao))
	r.ArrivalIcao = strings.ToUpper(strings.TrimSpace(r.ArrivalIcao))
	numbers := make([]string, 0, len(r.FlightNumbers))
	seen := make(map[string]struct{}, len(r.FlightNumbers))
	for _, n := range r.FlightNumbers {
		n = strings.ToUpper(strings.TrimSpace(n))
		if _, dup := seen[n]; dup || n == "" {
			continue
		}
		seen[n] = struct{}{}
		numbers = append(numbers, n)
	}
	r.FlightNumbers = numbers
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"min=1,dive,notblank"`
}

type RoutesResponse struct {
	Routes []*Route `json:"routes"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
