package user

import (
	"strings"

	"github.com/frahmantamala/airline-admin/internal/inactivity"
)

// ListFilter is what the service hands the repository for one page.
type ListFilter struct {
	Search         string
	CallsignPrefix string
	// HideInactive drops users the inactivity engine would report, using Timeframe.
	HideInactive bool
	Timeframe    inactivity.Timeframe
	Limit        int
	Offset       int
}

type ListUsersResponse struct {
	Users []*User `json:"users"`
	Total int64   `json:"total"`
	Page  int     `json:"page"`
	Limit int     `json:"limit"`
}

type BanRequest struct {
	Reason    *string `json:"reason" validate:"omitempty,max=500"`
	ExpiresAt *int64  `json:"expires_at"`
}

// NormalizedReason trims the reason and turns a blank one into nil.
func (r BanRequest) NormalizedReason() *string {
	if r.Reason == nil {
		return nil
	}
	reason := strings.TrimSpace(*r.Reason)
	if reason == "" {
		return nil
	}
	return &reason
}

type AddRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

type RoleChangeResponse struct {
	Message string   `json:"message"`
	Roles   []string `json:"roles"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
