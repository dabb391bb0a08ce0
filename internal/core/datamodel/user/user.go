package user

type User struct {
	ID              string  `gorm:"primaryKey;column:id"`
	Name            string  `gorm:"column:name;not null"`
	Email           string  `gorm:"column:email;uniqueIndex:users_email_unique;not null"`
	PasswordHash    string  `gorm:"column:password_hash;not null"`
	DiscordUsername *string `gorm:"column:discord_username;uniqueIndex:users_discord_username_unique"`
	Callsign        *int64  `gorm:"column:callsign;uniqueIndex:users_callsign_unique"`
	Image           *string `gorm:"column:image"`
	Role            string  `gorm:"column:role;not null;default:'[]'"`
	RankID          *string `gorm:"column:rank_id"`
	Verified        bool    `gorm:"column:verified;not null;default:false"`
	Banned          bool    `gorm:"column:banned;not null;default:false"`
	BanReason       *string `gorm:"column:ban_reason"`
	BanExpires      *int64  `gorm:"column:ban_expires"`
	CreatedAt       int64   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       int64   `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string { return "users" }
