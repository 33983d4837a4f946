package handler

import (
	"errors"
	"net/http"
	"time"

	cleaningdomain "roomie-app-go/internal/domain/cleaning"
	"roomie-app-go/internal/transport/httpserver/middleware"
)

type createScheduleRequest struct {
	UserID    uint   `json:"user_id"`
	DayOfWeek *int   `json:"day_of_week"`
	Area      string `json:"area"`
}

type updateScheduleRequest struct {
	UserID    *uint   `json:"user_id"`
	DayOfWeek *int    `json:"day_of_week"`
	Area      *string `json:"area"`
}

type scheduleResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	DayOfWeek int       `json:"day_of_week"`
	Area      string    `json:"area"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toScheduleResponse(s *cleaningdomain.Schedule) scheduleResponse {
	return scheduleResponse{
		ID:        s.ID,
		UserID:    s.UserID,
		DayOfWeek: s.DayOfWeek,
		Area:      s.Area,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (h *Handlers) writeScheduleError(w http.ResponseWriter, err error, op string, args ...any) {
	if errors.Is(err, cleaningdomain.ErrScheduleNotFound) {
		h.log.BusinessError(op+": schedule not found", err, args...)
		writeError(w, http.StatusNotFound, "schedule_not_found", "schedule not found")
		return
	}
	if writeRoomError(w, err) {
		h.log.BusinessError(op+": access rejected", err, args...)
		return
	}
	h.log.InternalError(op+": failed", err, args...)
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}

func (h *Handlers) ListCleaningSchedules(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	roomID, err := parseUintParam(r, "room_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	schedules, err := h.Cleaning.ListSchedules(r.Context(), user.ID, roomID)
	if err != nil {
		h.writeScheduleError(w, err, "cleaning.list", "user_id", user.ID, "room_id", roomID)
		return
	}

	result := make([]scheduleResponse, 0, len(schedules))
	for i := range schedules {
		result = append(result, toScheduleResponse(&schedules[i]))
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) CreateCleaningSchedule(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	roomID, err := parseUintParam(r, "room_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var req createScheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.Area == "" || req.UserID == 0 || req.DayOfWeek == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "user_id, day_of_week and area are required")
		return
	}

	schedule, err := h.Cleaning.CreateSchedule(r.Context(), user.ID, roomID, cleaningdomain.CreateScheduleInput{
		UserID:    req.UserID,
		DayOfWeek: *req.DayOfWeek,
		Area:      req.Area,
	})
	if err != nil {
		h.writeScheduleError(w, err, "cleaning.create", "user_id", user.ID, "room_id", roomID)
		return
	}

	writeJSON(w, http.StatusCreated, toScheduleResponse(schedule))
}

func (h *Handlers) UpdateCleaningSchedule(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	roomID, err := parseUintParam(r, "room_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	scheduleID, err := parseUintParam(r, "schedule_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var req updateScheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	schedule, err := h.Cleaning.UpdateSchedule(r.Context(), user.ID, roomID, scheduleID, cleaningdomain.UpdateScheduleInput{
		UserID:    req.UserID,
		DayOfWeek: req.DayOfWeek,
		Area:      req.Area,
	})
	if err != nil {
		h.writeScheduleError(w, err, "cleaning.update", "user_id", user.ID, "room_id", roomID, "schedule_id", scheduleID)
		return
	}

	writeJSON(w, http.StatusOK, toScheduleResponse(schedule))
}

func (h *Handlers) DeleteCleaningSchedule(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	roomID, err := parseUintParam(r, "room_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	scheduleID, err := parseUintParam(r, "schedule_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := h.Cleaning.DeleteSchedule(r.Context(), user.ID, roomID, scheduleID); err != nil {
		h.writeScheduleError(w, err, "cleaning.delete", "user_id", user.ID, "room_id", roomID, "schedule_id", scheduleID)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "schedule deleted"})
}
