package postgres

import (
	"context"

	"gorm.io/gorm"

	apperrors "github.com/frahmantamala/airline-admin/internal"
	rankDatamodel "github.com/frahmantamala/airline-admin/internal/core/datamodel/rank"
	"github.com/frahmantamala/airline-admin/internal/rank"
)

type RankRepository struct {
	db *gorm.DB
}

func NewRankRepository(db *gorm.DB) rank.RepositoryAPI {
	return &RankRepository{db: db}
}

func (r *RankRepository) List(ctx context.Context) ([]*rankDatamodel.Rank, map[string][]string, error) {
	var ranks []*rankDatamodel.Rank
	if err := r.db.WithContext(ctx).Order("minimum_flight_time ASC").Order("name ASC").Find(&ranks).Error; err != nil {
		return nil, nil, err
	}

	var links []rankDatamodel.RankAircraft
	if err := r.db.WithContext(ctx).Order("rank_id ASC").Order("aircraft_id ASC").Find(&links).Error; err != nil {
		return nil, nil, err
	}

	aircraft := make(map[string][]string, len(ranks))
	for _, l := range links {
		aircraft[l.RankID] = append(aircraft[l.RankID], l.AircraftID)
	}
	return ranks, aircraft, nil
}

func (r *RankRepository) Create(ctx context.Context, rk *rankDatamodel.Rank, aircraftIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rk).Error; err != nil {
			return err
		}
		if len(aircraftIDs) == 0 {
			return nil
		}
		links := make([]rankDatamodel.RankAircraft, 0, len(aircraftIDs))
		for _, id := range aircraftIDs {
			links = append(links, rankDatamodel.RankAircraft{RankID: rk.ID, AircraftID: id})
		}
		return tx.Create(&links).Error
	})
}

func (r *RankRepository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&rankDatamodel.Rank{})
	return res.RowsAffected, res.Error
}

func (r *RankRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id IN ?", ids).Delete(&rankDatamodel.Rank{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != int64(len(ids)) {
			return apperrors.ErrRankNotFound
		}
		deleted = res.RowsAffected
		return nil
	})
	return deleted, err
}
