package inactivitytest

import (
	"fmt"

	airlineDatamodel "github.com/frahmantamala/airline-admin/internal/core/datamodel/airline"
	leaveDatamodel "github.com/frahmantamala/airline-admin/internal/core/datamodel/leave"
	pirepDatamodel "github.com/frahmantamala/airline-admin/internal/core/datamodel/pirep"
	userDatamodel "github.com/frahmantamala/airline-admin/internal/core/datamodel/user"
	"gorm.io/gorm"
)

// Seed writes the scenario's airline row, users, flights and leave requests.
func Seed(db *gorm.DB, s Scenario) error {
	if s.Settings != nil {
		period := s.Settings.InactivityPeriod
		row := &airlineDatamodel.Airline{
			ID:               "airline",
			Name:             "Test Virtual",
			Callsign:         s.Settings.Callsign,
			InactivityPeriod: &period,
		}
		if err := db.Create(row).Error; err != nil {
			return fmt.Errorf("seed airline: %w", err)
		}
	}

	for _, u := range s.Users {
		if err := SeedUser(db, u); err != nil {
			return err
		}
	}
	return nil
}

func SeedUser(db *gorm.DB, u User) error {
	row := &userDatamodel.User{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: "x",
		Callsign:     u.Callsign,
		Image:        u.Image,
		Role:         "[]",
		Verified:     u.Verified,
		Banned:       u.Banned,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.CreatedAt,
	}
	if err := db.Create(row).Error; err != nil {
		return fmt.Errorf("seed user %s: %w", u.ID, err)
	}

	for i, f := range u.Flights {
		p := &pirepDatamodel.Pirep{
			ID:     fmt.Sprintf("%s-flight-%d", u.ID, i),
			UserID: u.ID,
			Date:   f.Date,
			Status: f.Status,
		}
		if err := db.Create(p).Error; err != nil {
			return fmt.Errorf("seed flight for %s: %w", u.ID, err)
		}
	}

	for i, l := range u.Leaves {
		lr := &leaveDatamodel.LeaveRequest{
			ID:        fmt.Sprintf("%s-leave-%d", u.ID, i),
			UserID:    u.ID,
			Status:    l.Status,
			StartDate: l.StartDate,
			EndDate:   l.EndDate,
		}
		if err := db.Create(lr).Error; err != nil {
			return fmt.Errorf("seed leave for %s: %w", u.ID, err)
		}
	}
	return nil
}
