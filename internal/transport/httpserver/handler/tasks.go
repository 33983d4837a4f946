package handler

import (
	"errors"
	"net/http"
	"time"

	tasksdomain "roomie-app-go/internal/domain/tasks"
	"roomie-app-go/internal/transport/httpserver/middleware"
)

type createTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	AssigneeID  uint    `json:"assignee_id"`
}

type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	AssigneeID  *uint   `json:"assignee_id"`
	Completed   *bool   `json:"completed"`
}

type taskResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	AssigneeID  uint      `json:"assignee_id"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toTaskResponse(t *tasksdomain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		AssigneeID:  t.AssigneeID,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (h *Handlers) writeTaskError(w http.ResponseWriter, err error, op string, args ...any) {
	switch {
	case errors.Is(err, tasksdomain.ErrTaskNotFound):
		h.log.BusinessError(op+": task not found", err, args...)
		writeError(w, http.StatusNotFound, "task_not_found", "task not found")
	case errors.Is(err, tasksdomain.ErrNotAssignee):
		h.log.BusinessError(op+": not the assignee", err, args...)
		writeError(w, http.StatusForbidden, "not_assignee", "can only modify your own tasks")
	default:
		if writeRoomError(w, err) {
			h.log.BusinessError(op+": access rejected", err, args...)
			return
		}
		h.log.InternalError(op+": failed", err, args...)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
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

	list, err := h.Tasks.ListTasks(r.Context(), user.ID, roomID)
	if err != nil {
		h.writeTaskError(w, err, "tasks.list", "user_id", user.ID, "room_id", roomID)
		return
	}

	result := make([]taskResponse, 0, len(list))
	for i := range list {
		result = append(result, toTaskResponse(&list[i]))
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
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

	var req createTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.Title == "" || req.AssigneeID == 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "title and assignee_id are required")
		return
	}

	task, err := h.Tasks.CreateTask(r.Context(), user.ID, roomID, tasksdomain.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		AssigneeID:  req.AssigneeID,
	})
	if err != nil {
		h.writeTaskError(w, err, "tasks.create", "user_id", user.ID, "room_id", roomID)
		return
	}

	writeJSON(w, http.StatusCreated, toTaskResponse(task))
}

func (h *Handlers) UpdateTask(w http.ResponseWriter, r *http.Request) {
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
	taskID, err := parseUintParam(r, "task_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var req updateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	task, err := h.Tasks.UpdateTask(r.Context(), user.ID, roomID, taskID, tasksdomain.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		AssigneeID:  req.AssigneeID,
		Completed:   req.Completed,
	})
	if err != nil {
		h.writeTaskError(w, err, "tasks.update", "user_id", user.ID, "room_id", roomID, "task_id", taskID)
		return
	}

	writeJSON(w, http.StatusOK, toTaskResponse(task))
}

func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
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
	taskID, err := parseUintParam(r, "task_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := h.Tasks.DeleteTask(r.Context(), user.ID, roomID, taskID); err != nil {
		h.writeTaskError(w, err, "tasks.delete", "user_id", user.ID, "room_id", roomID, "task_id", taskID)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "task deleted"})
}
