package aircraft

import "strings"

type CreateAircraftRequest struct {
	Name   string `json:"name" validate:"notblank,max=100"`
	Livery string `json:"livery" validate:"notblank,max=100"`
}

func (r *CreateAircraftRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Livery = strings.TrimSpace(r.Livery)
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"min=1,dive,notblank"`
}

type FleetResponse struct {
	Aircraft []*Aircraft `json:"aircraft"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
