package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	aircraftDatamodel "github.com/frahmantamala/airline-admin/internal/core/datamodel/aircraft"
	airlineDatamodel "github.com/frahmantamala/airline-admin/internal/core/datamodel/airline"
	leaveDatamodel "github.com/frahmantamala/airline-admin/internal/core/datamodel/leave"
	pirepDatamodel "github.com/frahmantamala/airline-admin/internal/core/datamodel/pirep"
	rankDatamodel "github.com/frahmantamala/airline-admin/internal/core/datamodel/rank"
	routeDatamodel "github.com/frahmantamala/airline-admin/internal/core/datamodel/route"
	userDatamodel "github.com/frahmantamala/airline-admin/internal/core/datamodel/user"
	"github.com/frahmantamala/airline-admin/internal/auth"
	"github.com/frahmantamala/airline-admin/internal/user"
)

const seedPassword = "password"

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with an airline, fleet, ranks, routes and a handful of pilots in different activity states.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			if err := clearSeedData(db.Gorm); err != nil {
				log.Fatalf("failed to clear data: %v", err)
			}
			fmt.Println("Cleared existing data")
		}

		var airlines int64
		if err := db.Gorm.Model(&airlineDatamodel.Airline{}).Count(&airlines).Error; err != nil {
			log.Fatalf("failed to inspect airlines: %v", err)
		}
		if airlines > 0 {
			fmt.Println("Airline already present; run with --clear to reseed")
			return
		}

		hash, err := auth.HashPassword(seedPassword, cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}

		if err := db.Gorm.Transaction(func(tx *gorm.DB) error {
			return seed(tx, hash, time.Now())
		}); err != nil {
			log.Fatalf("failed to seed: %v", err)
		}

		fmt.Println("Seeding completed. Every pilot's password is:", seedPassword)
	},
}

// clearSeedData removes rows children first so RESTRICT references hold.
func clearSeedData(db *gorm.DB) error {
	tables := []string{"leave_requests", "pireps", "users", "rank_aircraft", "routes", "ranks", "aircraft", "airlines"}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, table := range tables {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		return nil
	})
}

type seedPilot struct {
	name       string
	email      string
	callsign   int64
	roles      []string
	joinedDays int
	flewDays   []int
	leave      string
	banned     bool
}

func seed(tx *gorm.DB, hash string, now time.Time) error {
	daysAgo := func(d int) int64 { return now.AddDate(0, 0, -d).Unix() }
	period := 30

	if err := tx.Create(&airlineDatamodel.Airline{
		ID:               uuid.NewString(),
		Name:             "Virtual Sky",
		Callsign:         "VSK",
		InactivityPeriod: &period,
	}).Error; err != nil {
		return fmt.Errorf("airline: %w", err)
	}

	fleet := []*aircraftDatamodel.Aircraft{
		{ID: uuid.NewString(), Name: "A320", Livery: "House"},
		{ID: uuid.NewString(), Name: "B737-800", Livery: "House"},
		{ID: uuid.NewString(), Name: "B777-300ER", Livery: "Retro"},
	}
	if err := tx.Create(&fleet).Error; err != nil {
		return fmt.Errorf("aircraft: %w", err)
	}

	cadetMax := 50
	ranks := []*rankDatamodel.Rank{
		{ID: uuid.NewString(), Name: "Cadet", MinimumFlightTime: 0, MaximumFlightTime: &cadetMax},
		{ID: uuid.NewString(), Name: "Captain", MinimumFlightTime: 50, AllowAllAircraft: true},
	}
	if err := tx.Create(&ranks).Error; err != nil {
		return fmt.Errorf("ranks: %w", err)
	}
	if err := tx.Create(&[]rankDatamodel.RankAircraft{
		{RankID: ranks[0].ID, AircraftID: fleet[0].ID},
		{RankID: ranks[0].ID, AircraftID: fleet[1].ID},
	}).Error; err != nil {
		return fmt.Errorf("rank aircraft: %w", err)
	}

	routes := []*routeDatamodel.Route{
		{ID: uuid.NewString(), DepartureIcao: "EGLL", ArrivalIcao: "KJFK", FlightNumbers: `["VSK1","VSK2"]`, FlightTime: 480},
		{ID: uuid.NewString(), DepartureIcao: "EGLL", ArrivalIcao: "LFPG", FlightNumbers: `["VSK310"]`, FlightTime: 75},
		{ID: uuid.NewString(), DepartureIcao: "KJFK", ArrivalIcao: "KLAX", FlightNumbers: `["VSK20"]`, FlightTime: 360},
	}
	if err := tx.Create(&routes).Error; err != nil {
		return fmt.Errorf("routes: %w", err)
	}

	pilots := []seedPilot{
		{name: "Olivia Owner", email: "owner@example.com", callsign: 1, roles: []string{user.RoleOwner}, joinedDays: 400, flewDays: []int{3}},
		{name: "Amir Active", email: "active@example.com", callsign: 101, roles: []string{user.RolePireps}, joinedDays: 200, flewDays: []int{5, 40}},
		{name: "Ida Idle", email: "idle@example.com", callsign: 102, joinedDays: 300, flewDays: []int{90}},
		{name: "Nora Neverflown", email: "never@example.com", callsign: 103, joinedDays: 120},
		{name: "Leo Leave", email: "leave@example.com", callsign: 104, joinedDays: 250, flewDays: []int{75}, leave: leaveDatamodel.StatusApproved},
		{name: "Nia Newcomer", email: "new@example.com", callsign: 105, joinedDays: 5},
		{name: "Ben Banned", email: "banned@example.com", callsign: 106, joinedDays: 180, banned: true},
	}

	for _, p := range pilots {
		u := &userDatamodel.User{
			ID:           uuid.NewString(),
			Name:         p.name,
			Email:        p.email,
			PasswordHash: hash,
			Callsign:     &p.callsign,
			Role:         user.EncodeRoles(p.roles),
			RankID:       &ranks[0].ID,
			Verified:     true,
			Banned:       p.banned,
			CreatedAt:    daysAgo(p.joinedDays),
		}
		if err := tx.Create(u).Error; err != nil {
			return fmt.Errorf("user %s: %w", p.email, err)
		}

		for _, d := range p.flewDays {
			r := routes[d%len(routes)]
			if err := tx.Create(&pirepDatamodel.Pirep{
				ID:            uuid.NewString(),
				UserID:        u.ID,
				RouteID:       &r.ID,
				AircraftID:    &fleet[0].ID,
				FlightNumber:  "VSK1",
				DepartureIcao: r.DepartureIcao,
				ArrivalIcao:   r.ArrivalIcao,
				FlightTime:    r.FlightTime,
				Date:          daysAgo(d),
				Status:        "approved",
			}).Error; err != nil {
				return fmt.Errorf("pirep for %s: %w", p.email, err)
			}
		}

		if p.leave != "" {
			reason := "Annual leave"
			if err := tx.Create(&leaveDatamodel.LeaveRequest{
				ID:        uuid.NewString(),
				UserID:    u.ID,
				Reason:    &reason,
				Status:    p.leave,
				StartDate: daysAgo(10),
				EndDate:   now.AddDate(0, 0, 10).Unix(),
			}).Error; err != nil {
				return fmt.Errorf("leave for %s: %w", p.email, err)
			}
		}

		fmt.Println("Seeded pilot:", p.email)
	}
	return nil
}
