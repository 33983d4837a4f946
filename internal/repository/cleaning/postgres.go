package cleaning

import (
	"context"
	"errors"

	cleaningdomain "roomie-app-go/internal/domain/cleaning"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListSchedules(ctx context.Context, roomID uint) ([]cleaningdomain.Schedule, error) {
	var schedules []cleaningdomain.Schedule
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("day_of_week asc, created_at asc").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *PostgresRepository) GetSchedule(ctx context.Context, roomID, scheduleID uint) (*cleaningdomain.Schedule, error) {
	var schedule cleaningdomain.Schedule
	if err := r.db.WithContext(ctx).Where("id = ? AND room_id = ?", scheduleID, roomID).First(&schedule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cleaningdomain.ErrScheduleNotFound
		}
		return nil, err
	}
	return &schedule, nil
}

func (r *PostgresRepository) CreateSchedule(ctx context.Context, schedule *cleaningdomain.Schedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *PostgresRepository) UpdateSchedule(ctx context.Context, schedule *cleaningdomain.Schedule) error {
	return r.db.WithContext(ctx).Save(schedule).Error
}

func (r *PostgresRepository) DeleteSchedule(ctx context.Context, roomID, scheduleID uint) error {
	return r.db.WithContext(ctx).Delete(&cleaningdomain.Schedule{}, "id = ? AND room_id = ?", scheduleID, roomID).Error
}
