package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/airline-admin/internal/airline"
	airlineDatamodel "github.com/frahmantamala/airline-admin/internal/core/datamodel/airline"
	"github.com/frahmantamala/airline-admin/internal/inactivity"
)

// AirlineRepository reads and writes the single airline row. It also feeds
// the inactivity engine its settings.
type AirlineRepository struct {
	db *gorm.DB
}

func NewAirlineRepository(db *gorm.DB) *AirlineRepository {
	return &AirlineRepository{db: db}
}

var (
	_ airline.RepositoryAPI       = (*AirlineRepository)(nil)
	_ inactivity.SettingsProvider = (*AirlineRepository)(nil)
)

func (r *AirlineRepository) Get(ctx context.Context) (*airlineDatamodel.Airline, error) {
	var a airlineDatamodel.Airline
	err := r.db.WithContext(ctx).Order("created_at ASC").Order("id ASC").First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *AirlineRepository) Save(ctx context.Context, a *airlineDatamodel.Airline) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *AirlineRepository) GetSettings(ctx context.Context) (*inactivity.Settings, error) {
	a, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}
	return airline.ToSettings(a), nil
}
