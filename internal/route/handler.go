package route

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/airline-admin/internal/transport"
)

type ServiceAPI interface {
	ListRoutes(ctx context.Context) ([]*Route, error)
	CreateRoute(ctx context.Context, req CreateRouteRequest) (*Route, error)
	DeleteRoute(ctx context.Context, id string) error
	DeleteRoutes(ctx context.Context, ids []string) (string, error)
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

func (h *Handler) ListRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := h.Service.ListRoutes(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, RoutesResponse{Routes: routes})
}

func (h *Handler) CreateRoute(w http.ResponseWriter, r *http.Request) {
	var req CreateRouteRequest
	if err := h.DecodeJSONBody(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	created, err := h.Service.CreateRoute(r.Context(), req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) DeleteRoute(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteRoute(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Route deleted"})
}

func (h *Handler) DeleteRoutes(w http.ResponseWriter, r *http.Request) {
	var req BulkDeleteRequest
	if err := h.DecodeJSONBody(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	msg, err := h.Service.DeleteRoutes(r.Context(), req.IDs)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, MessageResponse{Message: msg})
}
