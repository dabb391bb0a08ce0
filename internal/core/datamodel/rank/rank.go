package rank

type Rank struct {
	ID                string `gorm:"primaryKey;column:id"`
	Name              string `gorm:"column:name;uniqueIndex:ranks_name_unique;not null"`
	MinimumFlightTime int    `gorm:"column:minimum_flight_time;not null;default:0"`
	MaximumFlightTime *int   `gorm:"column:maximum_flight_time"`
	AllowAllAircraft  bool   `gorm:"column:allow_all_aircraft;not null;default:false"`
	CreatedAt         int64  `gorm:"column:created_at;autoCreateTime"`
}

func (Rank) TableName() string { return "ranks" }

// RankAircraft links a rank to an aircraft it may fly.
type RankAircraft struct {
	RankID     string `gorm:"primaryKey;column:rank_id"`
	AircraftID string `gorm:"primaryKey;column:aircraft_id"`
}

func (RankAircraft) TableName() string { return "rank_aircraft" }
