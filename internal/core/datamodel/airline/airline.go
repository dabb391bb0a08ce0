package airline

type Airline struct {
	ID               string `gorm:"primaryKey;column:id"`
	Name             string `gorm:"column:name;not null"`
	Callsign         string `gorm:"column:callsign;not null;default:''"`
	InactivityPeriod *int   `gorm:"column:inactivity_period"`
	CreatedAt        int64  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        int64  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Airline) TableName() string { return "airlines" }
