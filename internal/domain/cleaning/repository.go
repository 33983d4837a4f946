package cleaning

import "context"

type Repository interface {
	ListSchedules(ctx context.Context, roomID uint) ([]Schedule, error)
	GetSchedule(ctx context.Context, roomID, scheduleID uint) (*Schedule, error)
	CreateSchedule(ctx context.Context, schedule *Schedule) error
	UpdateSchedule(ctx context.Context, schedule *Schedule) error
	DeleteSchedule(ctx context.Context, roomID, scheduleID uint) error
}
