package tasks

import "time"

type Task struct {
	ID          uint      `gorm:"primaryKey"`
	RoomID      uint      `gorm:"not null;index"`
	Title       string    `gorm:"not null"`
	Description *string   `gorm:"type:text"`
	AssigneeID  uint      `gorm:"not null;index"`
	Completed   bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

type CreateTaskInput struct {
	Title       string
	Description *string
	AssigneeID  uint
}

// UpdateTaskInput is an explicit patch: nil fields are left untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	AssigneeID  *uint
	Completed   *bool
}
