package rank

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/airline-admin/internal/transport"
)

type ServiceAPI interface {
	ListRanks(ctx context.Context) ([]*Rank, error)
	CreateRank(ctx context.Context, req CreateRankRequest) (*Rank, error)
	DeleteRank(ctx context.Context, id string) error
	DeleteRanks(ctx context.Context, ids []string) (string, error)
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

func (h *Handler) ListRanks(w http.ResponseWriter, r *http.Request) {
	ranks, err := h.Service.ListRanks(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, RanksResponse{Ranks: ranks})
}

func (h *Handler) CreateRank(w http.ResponseWriter, r *http.Request) {
	var req CreateRankRequest
	if err := h.DecodeJSONBody(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	created, err := h.Service.CreateRank(r.Context(), req)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) DeleteRank(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteRank(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Rank deleted successfully"})
}

func (h *Handler) DeleteRanks(w http.ResponseWriter, r *http.Request) {
	var req BulkDeleteRequest
	if err := h.DecodeJSONBody(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	msg, err := h.Service.DeleteRanks(r.Context(), req.IDs)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, MessageResponse{Message: msg})
}
