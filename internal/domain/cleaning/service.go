package cleaning

import (
	"context"
	"fmt"
	"strings"

	"roomie-app-go/internal/domain/room"
)

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

func (s *Service) ListSchedules(ctx context.Context, userID, roomID uint) ([]Schedule, error) {
	if _, err := s.rooms.RequireMember(ctx, userID, roomID); err != nil {
		return nil, err
	}
	return s.repo.ListSchedules(ctx, roomID)
}

func (s *Service) CreateSchedule(ctx context.Context, userID, roomID uint, input CreateScheduleInput) (*Schedule, error) {
	if _, err := s.rooms.RequireMember(ctx, userID, roomID); err != nil {
		return nil, err
	}

	area := strings.TrimSpace(input.Area)
	if area == "" {
		return nil, fmt.Errorf("area is required")
	}
	if input.DayOfWeek < 0 || input.DayOfWeek > 6 {
		return nil, fmt.Errorf("day_of_week must be between 0 and 6")
	}
	if input.UserID == 0 {
		return nil, fmt.Errorf("user_id is required")
	}

	schedule := Schedule{
		RoomID:    roomID,
		UserID:    input.UserID,
		DayOfWeek: input.DayOfWeek,
		Area:      area,
	}
	if err := s.repo.CreateSchedule(ctx, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (s *Service) UpdateSchedule(ctx context.Context, userID, roomID, scheduleID uint, input UpdateScheduleInput) (*Schedule, error) {
	if _, err := s.rooms.RequireMember(ctx, userID, roomID); err != nil {
		return nil, err
	}

	schedule, err := s.repo.GetSchedule(ctx, roomID, scheduleID)
	if err != nil {
		return nil, err
	}

	if input.UserID != nil {
		if *input.UserID == 0 {
			return nil, fmt.Errorf("user_id is required")
		}
		schedule.UserID = *input.UserID
	}
	if input.DayOfWeek != nil {
		if *input.DayOfWeek < 0 || *input.DayOfWeek > 6 {
			return nil, fmt.Errorf("day_of_week must be between 0 and 6")
		}
		schedule.DayOfWeek = *input.DayOfWeek
	}
	if input.Area != nil {
		trimmed := strings.TrimSpace(*input.Area)
		if trimmed == "" {
			return nil, fmt.Errorf("area is required")
		}
		schedule.Area = trimmed
	}

	if err := s.repo.UpdateSchedule(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

func (s *Service) DeleteSchedule(ctx context.Context, userID, roomID, scheduleID uint) error {
	if _, err := s.rooms.RequireMember(ctx, userID, roomID); err != nil {
		return err
	}
	if _, err := s.repo.GetSchedule(ctx, roomID, scheduleID); err != nil {
		return err
	}
	return s.repo.DeleteSchedule(ctx, roomID, scheduleID)
}
