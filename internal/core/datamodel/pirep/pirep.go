package pirep

type Pirep struct {
	ID            string  `gorm:"primaryKey;column:id"`
	UserID        string  `gorm:"column:user_id;not null;index"`
	RouteID       *string `gorm:"column:route_id"`
	AircraftID    *string `gorm:"column:aircraft_id"`
	FlightNumber  string  `gorm:"column:flight_number"`
	DepartureIcao string  `gorm:"column:departure_icao"`
	ArrivalIcao   string  `gorm:"column:arrival_icao"`
	FlightTime    int     `gorm:"column:flight_time;not null;default:0"`
	Date          int64   `gorm:"column:date;not null"`
	Status        string  `gorm:"column:status;not null;default:pending"`
	CreatedAt     int64   `gorm:"column:created_at;autoCreateTime"`
}

func (Pirep) TableName() string { return "pireps" }
