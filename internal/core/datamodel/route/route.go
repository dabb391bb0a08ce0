package route

type Route struct {
	ID            string `gorm:"primaryKey;column:id"`
	DepartureIcao string `gorm:"column:departure_icao;not null"`
	ArrivalIcao   string `gorm:"column:arrival_icao;not null"`
	FlightNumbers string `gorm:"column:flight_numbers;not null;default:'[]'"`
	FlightTime    int    `gorm:"column:flight_time;not null"`
	CreatedAt     int64  `gorm:"column:created_at;autoCreateTime"`
}

func (Route) TableName() string { return "routes" }
