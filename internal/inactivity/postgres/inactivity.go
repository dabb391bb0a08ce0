package postgres

import (
	"context"
	"strings"

	pirepDatamodel "github.com/frahmantamala/airline-admin/internal/core/datamodel/pirep"
	"github.com/frahmantamala/airline-admin/internal/inactivity"
	"gorm.io/gorm"
)

const inactiveColumns = "users.id, users.name, users.email, users.callsign, users.image, lf.last_flight AS last_flight"

const inactiveOrder = "COALESCE(lf.last_flight, 0) DESC, users.name ASC, users.id ASC"

// InactiveCondition is the SQL form of Timeframe.IsInactive for queries over
// the users table. It is wrapped in parentheses so callers may negate it.
func InactiveCondition(tf inactivity.Timeframe) (string, []interface{}) {
	sql := `(users.verified = ? AND users.banned = ? AND COALESCE(
		(SELECT MAX(p_last.date) FROM pireps p_last WHERE p_last.user_id = users.id),
		users.created_at
	) < ? AND NOT EXISTS (
		SELECT 1 FROM leave_requests lr
		WHERE lr.user_id = users.id
			AND lr.status = ?
			AND lr.start_date <= ?
			AND lr.end_date >= ?
	))`
	return sql, []interface{}{true, false, tf.Cutoff, inactivity.LeaveStatusApproved, tf.Now, tf.Now}
}

// SearchCondition matches the user name or the airline prefix joined with the
// numeric callsign, case-insensitively. LIKE wildcards in search are literal.
func SearchCondition(callsignPrefix, search string) (string, []interface{}) {
	pattern := "%" + escapeLike(search) + "%"
	sql := `(LOWER(users.name) LIKE LOWER(?) ESCAPE '\' OR LOWER(CAST(? AS TEXT) || CAST(users.callsign AS TEXT)) LIKE LOWER(?) ESCAPE '\')`
	return sql, []interface{}{pattern, callsignPrefix, pattern}
}

type InactivityRepository struct {
	db *gorm.DB
}

func NewInactivityRepository(db *gorm.DB) inactivity.RepositoryAPI {
	return &InactivityRepository{db: db}
}

type inactiveRow struct {
	ID         string  `gorm:"column:id"`
	Name       string  `gorm:"column:name"`
	Email      string  `gorm:"column:email"`
	Callsign   *int64  `gorm:"column:callsign"`
	Image      *string `gorm:"column:image"`
	LastFlight *int64  `gorm:"column:last_flight"`
	TotalCount int64   `gorm:"column:total_count"`
}

func (r inactiveRow) toInactiveUser() inactivity.InactiveUser {
	return inactivity.InactiveUser{
		ID:         r.ID,
		Name:       r.Name,
		Email:      r.Email,
		Callsign:   r.Callsign,
		Image:      r.Image,
		LastFlight: r.LastFlight,
	}
}

func (r *InactivityRepository) lastFlightSubquery(db *gorm.DB) *gorm.DB {
	return db.Model(&pirepDatamodel.Pirep{}).
		Select("user_id, MAX(date) AS last_flight").
		Group("user_id")
}

func (r *InactivityRepository) filtered(db *gorm.DB, q inactivity.Query) *gorm.DB {
	cond, vars := InactiveCondition(q.Timeframe)
	tx := db.Table("users").Where(cond, vars...)
	if q.Search != "" {
		searchCond, searchVars := SearchCondition(q.CallsignPrefix, q.Search)
		tx = tx.Where(searchCond, searchVars...)
	}
	return tx
}

func (r *InactivityRepository) FindInactivePage(ctx context.Context, q inactivity.Query) (*inactivity.Page, error) {
	db := r.db.WithContext(ctx)

	var rows []inactiveRow
	tx := r.filtered(db, q).
		Select(inactiveColumns+", COUNT(*) OVER() AS total_count").
		Joins("LEFT JOIN (?) AS lf ON lf.user_id = users.id", r.lastFlightSubquery(db)).
		Order(inactiveOrder)
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit).Offset(q.Offset)
	}
	if err := tx.Scan(&rows).Error; err != nil {
		return nil, err
	}

	page := &inactivity.Page{Users: make([]inactivity.InactiveUser, 0, len(rows))}
	for _, row := range rows {
		page.Users = append(page.Users, row.toInactiveUser())
	}
	if len(rows) > 0 {
		page.Total = rows[0].TotalCount
		return page, nil
	}

	// Past the last page the window count has no row to ride on.
	if q.Offset > 0 {
		if err := r.filtered(db, q).Count(&page.Total).Error; err != nil {
			return nil, err
		}
	}
	return page, nil
}

func (r *InactivityRepository) FindAllInactive(ctx context.Context, tf inactivity.Timeframe) ([]inactivity.InactiveUser, error) {
	db := r.db.WithContext(ctx)

	var rows []inactiveRow
	err := r.filtered(db, inactivity.Query{Timeframe: tf}).
		Select(inactiveColumns).
		Joins("LEFT JOIN (?) AS lf ON lf.user_id = users.id", r.lastFlightSubquery(db)).
		Order(inactiveOrder).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	users := make([]inactivity.InactiveUser, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toInactiveUser())
	}
	return users, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
