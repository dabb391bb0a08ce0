package leave

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDenied   = "denied"
)

type LeaveRequest struct {
	ID        string  `gorm:"primaryKey;column:id"`
	UserID    string  `gorm:"column:user_id;not null;index"`
	Reason    *string `gorm:"column:reason"`
	Status    string  `gorm:"column:status;not null;default:pending"`
	StartDate int64   `gorm:"column:start_date;not null"`
	EndDate   int64   `gorm:"column:end_date;not null"`
	CreatedAt int64   `gorm:"column:created_at;autoCreateTime"`
}

func (LeaveRequest) TableName() string { return "leave_requests" }
