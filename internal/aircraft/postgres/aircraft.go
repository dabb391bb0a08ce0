package postgres

import (
	"context"

	"gorm.io/gorm"

	apperrors "github.com/frahmantamala/airline-admin/internal"
	"github.com/frahmantamala/airline-admin/internal/aircraft"
	aircraftDatamodel "github.com/frahmantamala/airline-admin/internal/core/datamodel/aircraft"
)

type AircraftRepository struct {
	db *gorm.DB
}

func NewAircraftRepository(db *gorm.DB) aircraft.RepositoryAPI {
	return &AircraftRepository{db: db}
}

func (r *AircraftRepository) List(ctx context.Context) ([]*aircraftDatamodel.Aircraft, error) {
	var fleet []*aircraftDatamodel.Aircraft
	err := r.db.WithContext(ctx).Order("name ASC").Order("livery ASC").Find(&fleet).Error
	return fleet, err
}

func (r *AircraftRepository) Create(ctx context.Context, a *aircraftDatamodel.Aircraft) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AircraftRepository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&aircraftDatamodel.Aircraft{})
	return res.RowsAffected, res.Error
}

func (r *AircraftRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id IN ?", ids).Delete(&aircraftDatamodel.Aircraft{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != int64(len(ids)) {
			return apperrors.ErrAircraftNotFound
		}
		deleted = res.RowsAffected
		return nil
	})
	return deleted, err
}
