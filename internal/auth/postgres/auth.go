package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/airline-admin/internal/auth"
	userDatamodel "github.com/frahmantamala/airline-admin/internal/core/datamodel/user"
	"github.com/frahmantamala/airline-admin/internal/user"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) auth.RepositoryAPI {
	return &Repository{db: db}
}

func (r *Repository) GetCredentials(ctx context.Context, email string) (*auth.Principal, string, error) {
	row, err := r.first(ctx, "LOWER(email) = ?", email)
	if err != nil || row == nil {
		return nil, "", err
	}
	return toPrincipal(row), row.PasswordHash, nil
}

func (r *Repository) GetPrincipal(ctx context.Context, userID string) (*auth.Principal, error) {
	row, err := r.first(ctx, "id = ?", userID)
	if err != nil || row == nil {
		return nil, err
	}
	return toPrincipal(row), nil
}

func (r *Repository) first(ctx context.Context, query string, arg interface{}) (*userDatamodel.User, error) {
	var row userDatamodel.User
	err := r.db.WithContext(ctx).Where(query, arg).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func toPrincipal(u *userDatamodel.User) *auth.Principal {
	return &auth.Principal{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Roles:      user.ParseRoles(u.Role),
		Banned:     u.Banned,
		BanExpires: u.BanExpires,
	}
}
