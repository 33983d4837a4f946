package tasks

import (
	"context"
	"fmt"
	"strings"

	"roomie-app-go/internal/domain/room"
)

// RoomAccess is the membership guard every task operation passes first.
type RoomAccess interface {
	RequireMember(ctx context.Context, userID, roomID uint) (room.Role, error)
}

type Service struct {
	repo  Repository
	rooms RoomAccess
}

func NewService(repo Repository, rooms RoomAccess) *Service {
	return &Service{repo: repo, rooms: rooms}
}

func (s *Service) ListTasks(ctx context.Context, userID, roomID uint) ([]Task, error) {
	if _, err := s.rooms.RequireMember(ctx, userID, roomID); err != nil {
		return nil, err
	}
	return s.repo.ListTasks(ctx, roomID)
}

func (s *Service) CreateTask(ctx context.Context, userID, roomID uint, input CreateTaskInput) (*Task, error) {
	if _, err := s.rooms.RequireMember(ctx, userID, roomID); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if input.AssigneeID == 0 {
		return nil, fmt.Errorf("assignee_id is required")
	}

	task := Task{
		RoomID:      roomID,
		Title:       title,
		Description: input.Description,
		AssigneeID:  input.AssigneeID,
	}
	if err := s.repo.CreateTask(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask applies the patch. A plain member may only touch tasks
// assigned to them; admins and the owner may touch any.
func (s *Service) UpdateTask(ctx context.Context, userID, roomID, taskID uint, input UpdateTaskInput) (*Task, error) {
	role, err := s.rooms.RequireMember(ctx, userID, roomID)
	if err != nil {
		return nil, err
	}

	task, err := s.repo.GetTask(ctx, roomID, taskID)
	if err != nil {
		return nil, err
	}

	if role == room.RoleMember && task.AssigneeID != userID {
		return nil, ErrNotAssignee
	}

	if input.Title != nil {
		trimmed := strings.TrimSpace(*input.Title)
		if trimmed == "" {
			return nil, fmt.Errorf("title is required")
		}
		task.Title = trimmed
	}
	if input.Description != nil {
		task.Description = input.Description
	}
	if input.AssigneeID != nil {
		if *input.AssigneeID == 0 {
			return nil, fmt.Errorf("assignee_id is required")
		}
		task.AssigneeID = *input.AssigneeID
	}
	if input.Completed != nil {
		task.Completed = *input.Completed
	}

	if err := s.repo.UpdateTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *Service) DeleteTask(ctx context.Context, userID, roomID, taskID uint) error {
	role, err := s.rooms.RequireMember(ctx, userID, roomID)
	if err != nil {
		return err
	}

	task, err := s.repo.GetTask(ctx, roomID, taskID)
	if err != nil {
		return err
	}

	if role == room.RoleMember && task.AssigneeID != userID {
		return ErrNotAssignee
	}

	return s.repo.DeleteTask(ctx, roomID, taskID)
}
