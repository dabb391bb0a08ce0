package aircraft

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/airline-admin/internal/transport"
)

type ServiceAPI interface {
	ListAircraft(ctx context.Context) ([]*Aircraft, error)
	CreateAircraft(ctx context.Context, req CreateAircraftRequest) (*Aircraft, error)
	DeleteAircraft(ctx context.Context, id string) error
	DeleteManyAircraft(ctx context.Context, ids []string) (string, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{BaseHandler: baseHandler, Service: service}
}

func (h *Handler) ListFleet(w http.ResponseWriter, r *http.Request) {
	fleet, err := h.Service.ListAircraft(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, FleetResponse{Aircraft: fleet})
}

func (h *Handler) CreateAircraft(w http.ResponseWriter, r *http.Request) {
	var req CreateAircraftRequest
	if err := h.DecodeJSONBody(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	created, err := h.Service.CreateAircraft(r.Context(), req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) DeleteAircraft(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteAircraft(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Aircraft deleted"})
}

func (h *Handler) DeleteManyAircraft(w http.ResponseWriter, r *http.Request) {
	var req BulkDeleteRequest
	if err := h.DecodeJSONBody(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	msg, err := h.Service.DeleteManyAircraft(r.Context(), req.IDs)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, MessageResponse{Message: msg})
}
