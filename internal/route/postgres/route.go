package postgres

import (
	"context"

	"gorm.io/gorm"

	apperrors "github.com/frahmantamala/airline-admin/internal"
	routeDatamodel "github.com/frahmantamala/airline-admin/internal/core/datamodel/route"
	"github.com/frahmantamala/airline-admin/internal/route"
)

type RouteRepository struct {
	db *gorm.DB
}

func NewRouteRepository(db *gorm.DB) route.RepositoryAPI {
	return &RouteRepository{db: db}
}

func (r *RouteRepository) List(ctx context.Context) ([]*routeDatamodel.Route, error) {
	var routes []*routeDatamodel.Route
	err := r.db.WithContext(ctx).
		Order("departure_icao ASC").
		Order("arrival_icao ASC").
		Order("id ASC").
		Find(&routes).Error
	return routes, err
}

func (r *RouteRepository) Create(ctx context.Context, rt *routeDatamodel.Route) error {
	return r.db.WithContext(ctx).Create(rt).Error
}

func (r *RouteRepository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&routeDatamodel.Route{})
	return res.RowsAffected, res.Error
}

func (r *RouteRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id IN ?", ids).Delete(&routeDatamodel.Route{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != int64(len(ids)) {
			return apperrors.ErrRouteNotFound
		}
		deleted = res.RowsAffected
		return nil
	})
	return deleted, err
}
