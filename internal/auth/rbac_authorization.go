package auth

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/airline-admin/internal"
	"github.com/frahmantamala/airline-admin/internal/transport"
	"github.com/frahmantamala/airline-admin/internal/user"
)

// RBACAuthorization guards routes by the caller's roles. Owners and admins
// pass every check.
type RBACAuthorization struct {
	*transport.BaseHandler
}

func NewRBACAuthorization(logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{BaseHandler: transport.NewBaseHandler(logger)}
}

func (ra *RBACAuthorization) Check(next http.HandlerFunc, roles ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := internal.UserIDFromContext(r.Context())
		if userID == "" {
			ra.Logger.Warn("authorization check failed: user not found in context")
			ra.HandleServiceError(w, internal.ErrInvalidToken)
			return
		}

		granted := internal.RolesFromContext(r.Context())
		if !user.HasAnyRole(granted, roles...) {
			ra.Logger.WarnContext(r.Context(), "access denied: insufficient role",
				"user_id", userID,
				"required_roles", roles,
				"user_roles", granted)
			ra.HandleServiceError(w, internal.ErrInsufficientRole)
			return
		}

		next.ServeHTTP(w, r)
	}
}

func (ra *RBACAuthorization) RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return ra.Check(next.ServeHTTP, roles...)
	}
}
