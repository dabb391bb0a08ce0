package postgres

import (
	"context"

	"gorm.io/gorm"

	apperrors "github.com/frahmantamala/airline-admin/internal"
	userDatamodel "github.com/frahmantamala/airline-admin/internal/core/datamodel/user"
	"github.com/frahmantamala/airline-admin/internal/setup"
)

// ownerCondition matches the JSON-encoded role column.
const ownerCondition = `role LIKE '%"owner"%'`

type SetupRepository struct {
	db *gorm.DB
}

func NewSetupRepository(db *gorm.DB) setup.RepositoryAPI {
	return &SetupRepository{db: db}
}

func (r *SetupRepository) OwnerExists(ctx context.Context) (bool, error) {
	return ownerExists(r.db.WithContext(ctx))
}

func (r *SetupRepository) CreateOwner(ctx context.Context, u *userDatamodel.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := ownerExists(tx)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.ErrSetupCompleted
		}
		return tx.Create(u).Error
	})
}

func ownerExists(db *gorm.DB) (bool, error) {
	var count int64
	err := db.Model(&userDatamodel.User{}).Where(ownerCondition).Count(&count).Error
	return count > 0, err
}
