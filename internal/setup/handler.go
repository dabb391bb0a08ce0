package setup

import (
	"context"
	"net/http"

	"github.com/frahmantamala/airline-admin/internal/transport"
)

type ServiceAPI interface {
	Completed(ctx context.Context) (bool, error)
	CreateAdminAccount(ctx context.Context, req CreateAdminRequest) (*CreateAdminResponse, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{BaseHandler: baseHandler, Service: service}
}

func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	done, err := h.Service.Completed(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]bool{"completed": done})
}

func (h *Handler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req CreateAdminRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	resp, err := h.Service.CreateAdminAccount(r.Context(), req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, resp)
}
