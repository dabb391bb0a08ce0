package setup

import "strings"

type CreateAdminRequest struct {
	Email           string `json:"email" validate:"required,max=255,email"`
	Name            string `json:"name" validate:"notblank"`
	Password        string `json:"password" validate:"min=8"`
	DiscordUsername string `json:"discord_username" validate:"discord"`
}

// Normalize trims the email before validation.
func (r *CreateAdminRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
	r.Name = strings.TrimSpace(r.Name)
}

type CreateAdminResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}
