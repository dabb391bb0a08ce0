package user

import (
	userDatamodel "github.com/frahmantamala/airline-admin/internal/core/datamodel/user"
)

type User struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	DiscordUsername *string  `json:"discord_username"`
	Callsign        *int64   `json:"callsign"`
	Image           *string  `json:"image"`
	Roles           []string `json:"roles"`
	RankID          *string  `json:"rank_id"`
	Verified        bool     `json:"verified"`
	Banned          bool     `json:"banned"`
	BanReason       *string  `json:"ban_reason"`
	BanExpires      *int64   `json:"ban_expires"`
	CreatedAt       int64    `json:"created_at"`
	UpdatedAt       int64    `json:"updated_at"`
}

func (u *User) IsOwner() bool {
	return HasRole(u.Roles, RoleOwner)
}

func (u *User) IsAdmin() bool {
	return HasRole(u.Roles, RoleAdmin)
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		DiscordUsername: u.DiscordUsername,
		Callsign:        u.Callsign,
		Image:           u.Image,
		Roles:           ParseRoles(u.Role),
		RankID:          u.RankID,
		Verified:        u.Verified,
		Banned:          u.Banned,
		BanReason:       u.BanReason,
		BanExpires:      u.BanExpires,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}
