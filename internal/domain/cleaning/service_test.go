package cleaning

import (
	"context"
	"errors"
	"testing"

	"roomie-app-go/internal/domain/room"
)

type fakeCleaningRepo struct {
	schedules map[uint]*Schedule
	nextID    uint
}

func newFakeCleaningRepo() *fakeCleaningRepo {
	return &fakeCleaningRepo{schedules: make(map[uint]*Schedule)}
}

func (r *fakeCleaningRepo) ListSchedules(ctx context.Context, roomID uint) ([]Schedule, error) {
	var result []Schedule
	for _, schedule := range r.schedules {
		if schedule.RoomID == roomID {
			result = append(result, *schedule)
		}
	}
	return result, nil
}

func (r *fakeCleaningRepo) GetSchedule(ctx context.Context, roomID, scheduleID uint) (*Schedule, error) {
	schedule, ok := r.schedules[scheduleID]
	if !ok || schedule.RoomID != roomID {
		return nil, ErrScheduleNotFound
	}
	copied := *schedule
	return &copied, nil
}

func (r *fakeCleaningRepo) CreateSchedule(ctx context.Context, schedule *Schedule) error {
	r.nextID++
	schedule.ID = r.nextID
	stored := *schedule
	r.schedules[schedule.ID] = &stored
	return nil
}

func (r *fakeCleaningRepo) UpdateSchedule(ctx context.Context, schedule *Schedule) error {
	if _, ok := r.schedules[schedule.ID]; !ok {
		return ErrScheduleNotFound
	}
	stored := *schedule
	r.schedules[schedule.ID] = &stored
	return nil
}

func (r *fakeCleaningRepo) DeleteSchedule(ctx context.Context, roomID, scheduleID uint) error {
	schedule, ok := r.schedules[scheduleID]
	if !ok || schedule.RoomID != roomID {
		return ErrScheduleNotFound
	}
	delete(r.schedules, scheduleID)
	return nil
}

type fakeRoomGuard struct {
	err error
}

func (g *fakeRoomGuard) RequireMember(ctx context.Context, userID, roomID uint) (room.Role, error) {
	if g.err != nil {
		return "", g.err
	}
	return room.RoleMember, nil
}

func TestCreateSchedule(t *testing.T) {
	service := NewService(newFakeCleaningRepo(), &fakeRoomGuard{})

	schedule, err := service.CreateSchedule(context.Background(), 1, 10, CreateScheduleInput{
		UserID:    2,
		DayOfWeek: 3,
		Area:      "Kitchen",
	})
	if err != nil {
		t.Fatalf("CreateSchedule: %v", err)
	}
	if schedule.ID == 0 || schedule.RoomID != 10 || schedule.UserID != 2 {
		t.Fatalf("unexpected schedule: %+v", schedule)
	}
}

func TestCreateScheduleValidation(t *testing.T) {
	service := NewService(newFakeCleaningRepo(), &fakeRoomGuard{})

	if _, err := service.CreateSchedule(context.Background(), 1, 10, CreateScheduleInput{UserID: 2, DayOfWeek: 7, Area: "Kitchen"}); err == nil {
		t.Fatalf("expected error for day_of_week 7")
	}
	if _, err := service.CreateSchedule(context.Background(), 1, 10, CreateScheduleInput{UserID: 2, DayOfWeek: -1, Area: "Kitchen"}); err == nil {
		t.Fatalf("expected error for negative day_of_week")
	}
	if _, err := service.CreateSchedule(context.Background(), 1, 10, CreateScheduleInput{UserID: 2, DayOfWeek: 0, Area: " "}); err == nil {
		t.Fatalf("expected error for blank area")
	}
	if _, err := service.CreateSchedule(context.Background(), 1, 10, CreateScheduleInput{UserID: 0, DayOfWeek: 0, Area: "Kitchen"}); err == nil {
		t.Fatalf("expected error for missing user_id")
	}
}

func TestCreateScheduleRequiresMembership(t *testing.T) {
	service := NewService(newFakeCleaningRepo(), &fakeRoomGuard{err: room.ErrBanned})

	if _, err := service.CreateSchedule(context.Background(), 1, 10, CreateScheduleInput{UserID: 2, DayOfWeek: 0, Area: "Kitchen"}); !errors.Is(err, room.ErrBanned) {
		t.Fatalf("expected ErrBanned, got %v", err)
	}
}

func TestUpdateSchedulePatch(t *testing.T) {
	service := NewService(newFakeCleaningRepo(), &fakeRoomGuard{})

	schedule, err := service.CreateSchedule(context.Background(), 1, 10, CreateScheduleInput{
		UserID:    2,
		DayOfWeek: 3,
		Area:      "Kitchen",
	})
	if err != nil {
		t.Fatalf("CreateSchedule: %v", err)
	}

	day := 5
	updated, err := service.UpdateSchedule(context.Background(), 1, 10, schedule.ID, UpdateScheduleInput{DayOfWeek: &day})
	if err != nil {
		t.Fatalf("UpdateSchedule: %v", err)
	}
	if updated.DayOfWeek != 5 {
		t.Fatalf("patch was not applied")
	}
	if updated.Area != "Kitchen" || updated.UserID != 2 {
		t.Fatalf("nil patch fields must stay untouched: %+v", updated)
	}

	bad := 9
	if _, err := service.UpdateSchedule(context.Background(), 1, 10, schedule.ID, UpdateScheduleInput{DayOfWeek: &bad}); err == nil {
		t.Fatalf("expected error for day_of_week 9")
	}
}

func TestDeleteScheduleNotFound(t *testing.T) {
	service := NewService(newFakeCleaningRepo(), &fakeRoomGuard{})

	if err := service.DeleteSchedule(context.Background(), 1, 10, 99); !errors.Is(err, ErrScheduleNotFound) {
		t.Fatalf("expected ErrScheduleNotFound, got %v", err)
	}
}
