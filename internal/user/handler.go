package user

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/airline-admin/internal"
	"github.com/frahmantamala/airline-admin/internal/inactivity"
	"github.com/frahmantamala/airline-admin/internal/transport"
)

type ServiceAPI interface {
	ListUsers(ctx context.Context, page, limit int, search string, hideInactive bool) (*ListUsersResponse, error)
	GetUser(ctx context.Context, id string) (*User, error)
	BanUser(ctx context.Context, actorID string, actorRoles []string, id string, req BanRequest) error
	UnbanUser(ctx context.Context, id string) error
	KickUser(ctx context.Context, actorID string, actorRoles []string, id string) error
	AddRole(ctx context.Context, actorID string, actorRoles []string, id, role string) (*RoleChangeResponse, error)
	RemoveRole(ctx context.Context, actorID string, actorRoles []string, id, role string) (*RoleChangeResponse, error)
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

// ListUsers handles GET /admin/users?page=&limit=&q=&inactive=true.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, err := h.QueryInt(r, "page", 1)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if err := inactivity.CheckPage(page); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	limit, err := h.QueryInt(r, "limit", inactivity.DefaultPageSize)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if limit > inactivity.MaxPageSize {
		limit = inactivity.MaxPageSize
	}
	search := strings.TrimSpace(r.URL.Query().Get("q"))
	hideInactive := r.URL.Query().Get("inactive") == "true"

	result, err := h.Service.ListUsers(r.Context(), page, limit, search, hideInactive)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.Service.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) BanUser(w http.ResponseWriter, r *http.Request) {
	var req BanRequest
	if err := h.DecodeJSONBody(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	ctx := r.Context()
	if err := h.Service.BanUser(ctx, internal.UserIDFromContext(ctx), internal.RolesFromContext(ctx), chi.URLParam(r, "id"), req); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, MessageResponse{Message: "User removed from the VA successfully"})
}

func (h *Handler) UnbanUser(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.UnbanUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, MessageResponse{Message: "User unbanned successfully"})
}

func (h *Handler) KickUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.Service.KickUser(ctx, internal.UserIDFromContext(ctx), internal.RolesFromContext(ctx), chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, MessageResponse{Message: "User deleted successfully"})
}

func (h *Handler) AddRole(w http.ResponseWriter, r *http.Request) {
	var req AddRoleRequest
	if err := h.DecodeJSONBody(r, &req); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	ctx := r.Context()
	result, err := h.Service.AddRole(ctx, internal.UserIDFromContext(ctx), internal.RolesFromContext(ctx), chi.URLParam(r, "id"), req.Role)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) RemoveRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	result, err := h.Service.RemoveRole(ctx, internal.UserIDFromContext(ctx), internal.RolesFromContext(ctx), chi.URLParam(r, "id"), chi.URLParam(r, "role"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, result)
}
