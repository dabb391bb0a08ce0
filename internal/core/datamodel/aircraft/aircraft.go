package aircraft

type Aircraft struct {
	ID        string `gorm:"primaryKey;column:id"`
	Name      string `gorm:"column:name;not null"`
	Livery    string `gorm:"column:livery;not null"`
	CreatedAt int64  `gorm:"column:created_at;autoCreateTime"`
}

func (Aircraft) TableName() string { return "aircraft" }
