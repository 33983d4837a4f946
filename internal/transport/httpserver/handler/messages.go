package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	chatdomain "roomie-app-go/internal/domain/chat"
	"roomie-app-go/internal/transport/httpserver/middleware"
)

const defaultPollTimeoutSeconds = 25

type sendMessageRequest struct {
	Content string `json:"content"`
}

type messageResponse struct {
	ID        uint      `json:"id"`
	RoomID    uint      `json:"room_id"`
	SenderID  uint      `json:"sender_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func toMessageResponse(m *chatdomain.Message) messageResponse {
	return messageResponse{
		ID:        m.ID,
		RoomID:    m.RoomID,
		SenderID:  m.SenderID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

func toMessageList(messages []chatdomain.Message) []messageResponse {
	result := make([]messageResponse, 0, len(messages))
	for i := range messages {
		result = append(result, toMessageResponse(&messages[i]))
	}
	return result
}

func (h *Handlers) writeChatError(w http.ResponseWriter, err error, op string, args ...any) {
	if writeRoomError(w, err) {
		h.log.BusinessError(op+": access rejected", err, args...)
		return
	}
	h.log.InternalError(op+": failed", err, args...)
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}

func (h *Handlers) ListMessages(w http.ResponseWriter, r *http.Request) {
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

	limit, err := parseIntQuery(r.URL.Query().Get("limit"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid limit")
		return
	}

	messages, err := h.Chat.ListMessages(r.Context(), user.ID, roomID, limit)
	if err != nil {
		h.writeChatError(w, err, "chat.list", "user_id", user.ID, "room_id", roomID)
		return
	}

	writeJSON(w, http.StatusOK, toMessageList(messages))
}

func (h *Handlers) SendMessage(w http.ResponseWriter, r *http.Request) {
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

	var req sendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "content is required")
		return
	}

	message, err := h.Chat.Send(r.Context(), user.ID, roomID, req.Content)
	if err != nil {
		h.writeChatError(w, err, "chat.send", "user_id", user.ID, "room_id", roomID)
		return
	}

	writeJSON(w, http.StatusCreated, toMessageResponse(message))
}

// PollMessages holds the request open until a message with id greater
// than last_message_id appears or the wait elapses. A timeout returns
// 200 with an empty array so the client simply polls again.
func (h *Handlers) PollMessages(w http.ResponseWriter, r *http.Request) {
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

	query := r.URL.Query()
	lastMessageID, err := parseUintQuery(query.Get("last_message_id"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid last_message_id")
		return
	}
	timeoutSeconds, err := parseIntQuery(query.Get("timeout"), defaultPollTimeoutSeconds)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid timeout")
		return
	}

	wait := time.Duration(timeoutSeconds) * time.Second
	messages, err := h.Chat.Poll(r.Context(), user.ID, roomID, lastMessageID, wait)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			// client went away, nothing left to write
			return
		}
		h.writeChatError(w, err, "chat.poll", "user_id", user.ID, "room_id", roomID, "last_message_id", lastMessageID)
		return
	}

	writeJSON(w, http.StatusOK, toMessageList(messages))
}
