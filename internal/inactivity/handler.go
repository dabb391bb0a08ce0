package inactivity

import (
	"context"
	"net/http"
	"strings"

	"github.com/frahmantamala/airline-admin/internal/transport"
)

type ServiceAPI interface {
	GetInactiveUsersPaginated(ctx context.Context, page, limit int, search string) (*Page, error)
	GetAllInactiveUsers(ctx context.Context) ([]InactiveUser, error)
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

type PageResponse struct {
	Users []InactiveUser `json:"users"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// ListInactiveUsers handles GET /admin/users/inactive?page=&limit=&q=.
func (h *Handler) ListInactiveUsers(w http.ResponseWriter, r *http.Request) {
	page, err := h.QueryInt(r, "page", 1)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if err := CheckPage(page); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	limit, err := h.QueryInt(r, "limit", DefaultPageSize)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	page, limit, _ = NormalizePage(page, limit)
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	search := strings.TrimSpace(r.URL.Query().Get("q"))

	result, err := h.Service.GetInactiveUsersPaginated(r.Context(), page, limit, search)
	if err != nil {
		h.Logger.Error("ListInactiveUsers: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, PageResponse{
		Users: result.Users,
		Total: result.Total,
		Page:  page,
		Limit: limit,
	})
}

// ExportInactiveUsers handles GET /admin/users/inactive/all, the unpaginated listing.
func (h *Handler) ExportInactiveUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.GetAllInactiveUsers(r.Context())
	if err != nil {
		h.Logger.Error("ExportInactiveUsers: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"users": users,
		"total": len(users),
	})
}
