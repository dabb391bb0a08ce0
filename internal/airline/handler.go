package airline

import (
	"context"
	"net/http"

	"github.com/frahmantamala/airline-admin/internal/transport"
)

type ServiceAPI interface {
	GetAirline(ctx context.Context) (*Airline, error)
	UpdateAirline(ctx context.Context, req UpdateAirlineRequest) (*Airline, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) GetAirline(w http.ResponseWriter, r *http.Request) {
	a, err := h.Service.GetAirline(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) UpdateAirline(w http.ResponseWriter, r *http.Request) {
	var req UpdateAirlineRequest
	if err := h.DecodeJSONBody(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	a, err := h.Service.UpdateAirline(r.Context(), req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, a)
}
