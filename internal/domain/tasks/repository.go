package tasks

import "context"

type Repository interface {
	ListTasks(ctx context.Context, roomID uint) ([]Task, error)
	GetTask(ctx context.Context, roomID, taskID uint) (*Task, error)
	CreateTask(ctx context.Context, task *Task) error
	UpdateTask(ctx context.Context, task *Task) error
	DeleteTask(ctx context.Context, roomID, taskID uint) error
}
