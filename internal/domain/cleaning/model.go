package cleaning

import "time"

// Schedule assigns a user to a cleaning area on a weekday (0 = Monday).
type Schedule struct {
	ID        uint      `gorm:"primaryKey"`
	RoomID    uint      `gorm:"not null;index"`
	UserID    uint      `gorm:"not null"`
	DayOfWeek int       `gorm:"not null"`
	Area      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Schedule) TableName() string {
	return "cleaning_schedules"
}

type CreateScheduleInput struct {
	UserID    uint
	DayOfWeek int
	Area      string
}

// UpdateScheduleInput is an explicit patch: nil fields are left untouched.
type UpdateScheduleInput struct {
	UserID    *uint
	DayOfWeek *int
	Area      *string
}
