package tasks

import (
	"context"
	"errors"

	tasksdomain "roomie-app-go/internal/domain/tasks"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListTasks(ctx context.Context, roomID uint) ([]tasksdomain.Task, error) {
	var tasks []tasksdomain.Task
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at asc").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *PostgresRepository) GetTask(ctx context.Context, roomID, taskID uint) (*tasksdomain.Task, error) {
	var task tasksdomain.Task
	if err := r.db.WithContext(ctx).Where("id = ? AND room_id = ?", taskID, roomID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tasksdomain.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *PostgresRepository) CreateTask(ctx context.Context, task *tasksdomain.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *PostgresRepository) UpdateTask(ctx context.Context, task *tasksdomain.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *PostgresRepository) DeleteTask(ctx context.Context, roomID, taskID uint) error {
	return r.db.WithContext(ctx).Delete(&tasksdomain.Task{}, "id = ? AND room_id = ?", taskID, roomID).Error
}
