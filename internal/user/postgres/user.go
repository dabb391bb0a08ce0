package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	userDatamodel "github.com/frahmantamala/airline-admin/internal/core/datamodel/user"
	inactivityPostgres "github.com/frahmantamala/airline-admin/internal/inactivity/postgres"
	"github.com/frahmantamala/airline-admin/internal/user"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) filtered(ctx context.Context, filter user.ListFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&userDatamodel.User{})
	if filter.Search != "" {
		cond, vars := inactivityPostgres.SearchCondition(filter.CallsignPrefix, filter.Search)
		q = q.Where(cond, vars...)
	}
	if filter.HideInactive {
		cond, vars := inactivityPostgres.InactiveCondition(filter.Timeframe)
		q = q.Where("NOT "+cond, vars...)
	}
	return q
}

func (r *UserRepository) List(ctx context.Context, filter user.ListFilter) ([]*userDatamodel.User, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	users := []*userDatamodel.User{}
	if total == 0 {
		return users, 0, nil
	}

	err := r.filtered(ctx, filter).
		Order("users.created_at DESC").
		Order("users.id ASC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) UpdateBan(ctx context.Context, id string, banned bool, reason *string, expires *int64) error {
	return r.db.WithContext(ctx).Model(&userDatamodel.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"banned":      banned,
		"ban_reason":  reason,
		"ban_expires": expires,
	}).Error
}

func (r *UserRepository) UpdateRoles(ctx context.Context, id string, roles string) error {
	return r.db.WithContext(ctx).Model(&userDatamodel.User{}).Where("id = ?", id).Update("role", roles).Error
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&userDatamodel.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
