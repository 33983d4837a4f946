package handler

import (
	"errors"
	"net/http"
	"time"

	roomdomain "roomie-app-go/internal/domain/room"
	"roomie-app-go/internal/transport/httpserver/middleware"
)

type createRoomRequest struct {
	Name string `json:"name"`
}

type joinRoomRequest struct {
	Code string `json:"code"`
}

type roomResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	CreatedBy   uint      `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	MemberCount int64     `json:"member_count"`
}

type memberResponse struct {
	ID       uint         `json:"id"`
	User     userResponse `json:"user"`
	Role     string       `json:"role"`
	IsBanned bool         `json:"is_banned"`
	JoinedAt time.Time    `json:"joined_at"`
}

func toRoomResponse(rc *roomdomain.RoomWithCount) roomResponse {
	return roomResponse{
		ID:          rc.Room.ID,
		Name:        rc.Room.Name,
		Code:        rc.Room.Code,
		CreatedBy:   rc.Room.CreatedBy,
		CreatedAt:   rc.Room.CreatedAt,
		MemberCount: rc.MemberCount,
	}
}

func toUserInfoResponse(u roomdomain.UserInfo) userResponse {
	return userResponse{
		ID:         u.ID,
		Username:   u.Username,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		MiddleName: u.MiddleName,
		BirthDate:  u.BirthDate,
		Contact:    u.Contact,
		CreatedAt:  u.CreatedAt,
	}
}

func (h *Handlers) CreateRoom(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req createRoomRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	result, err := h.Rooms.CreateRoom(r.Context(), user.ID, req.Name)
	if err != nil {
		h.log.InternalError("rooms.create: create room failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, toRoomResponse(result))
}

func (h *Handlers) ListRooms(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	rooms, err := h.Rooms.ListRooms(r.Context(), user.ID)
	if err != nil {
		h.log.InternalError("rooms.list: list rooms failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	result := make([]roomResponse, 0, len(rooms))
	for i := range rooms {
		result = append(result, toRoomResponse(&rooms[i]))
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) JoinRoom(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req joinRoomRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.Code == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "code is required")
		return
	}

	result, err := h.Rooms.JoinRoom(r.Context(), user.ID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, roomdomain.ErrRoomNotFound):
			h.log.BusinessError("rooms.join: room not found", err, "user_id", user.ID, "code", req.Code)
			writeError(w, http.StatusNotFound, "room_not_found", "room not found")
		case errors.Is(err, roomdomain.ErrBanned):
			h.log.BusinessError("rooms.join: banned", err, "user_id", user.ID, "code", req.Code)
			writeError(w, http.StatusForbidden, "banned", "you are banned from this room")
		case errors.Is(err, roomdomain.ErrAlreadyMember):
			h.log.BusinessError("rooms.join: already a member", err, "user_id", user.ID, "code", req.Code)
			writeError(w, http.StatusBadRequest, "already_member", "already a member")
		default:
			h.log.InternalError("rooms.join: join failed", err, "user_id", user.ID, "code", req.Code)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toRoomResponse(result))
}

func (h *Handlers) DeleteRoom(w http.ResponseWriter, r *http.Request) {
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

	if err := h.Rooms.DeleteRoom(r.Context(), user.ID, roomID); err != nil {
		if writeRoomError(w, err) {
			h.log.BusinessError("rooms.delete: rejected", err, "user_id", user.ID, "room_id", roomID)
			return
		}
		h.log.InternalError("rooms.delete: delete failed", err, "user_id", user.ID, "room_id", roomID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "room deleted"})
}

func (h *Handlers) LeaveRoom(w http.ResponseWriter, r *http.Request) {
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

	if err := h.Rooms.LeaveRoom(r.Context(), user.ID, roomID); err != nil {
		if errors.Is(err, roomdomain.ErrOwnerCannotLeave) {
			h.log.BusinessError("rooms.leave: owner cannot leave", err, "user_id", user.ID, "room_id", roomID)
			writeError(w, http.StatusBadRequest, "owner_cannot_leave", "owner cannot leave the room, delete it instead")
			return
		}
		if writeRoomError(w, err) {
			h.log.BusinessError("rooms.leave: rejected", err, "user_id", user.ID, "room_id", roomID)
			return
		}
		h.log.InternalError("rooms.leave: leave failed", err, "user_id", user.ID, "room_id", roomID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "left the room"})
}

func (h *Handlers) ListRoomMembers(w http.ResponseWriter, r *http.Request) {
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

	members, err := h.Rooms.ListMembers(r.Context(), user.ID, roomID)
	if err != nil {
		if writeRoomError(w, err) {
			h.log.BusinessError("rooms.members: rejected", err, "user_id", user.ID, "room_id", roomID)
			return
		}
		h.log.InternalError("rooms.members: list failed", err, "user_id", user.ID, "room_id", roomID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	result := make([]memberResponse, 0, len(members))
	for _, member := range members {
		result = append(result, memberResponse{
			ID:       member.ID,
			User:     toUserInfoResponse(member.User),
			Role:     string(member.Role),
			IsBanned: member.IsBanned,
			JoinedAt: member.JoinedAt,
		})
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) ListRoomUsers(w http.ResponseWriter, r *http.Request) {
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

	users, err := h.Rooms.ListUsers(r.Context(), user.ID, roomID)
	if err != nil {
		if writeRoomError(w, err) {
			h.log.BusinessError("rooms.users: rejected", err, "user_id", user.ID, "room_id", roomID)
			return
		}
		h.log.InternalError("rooms.users: list failed", err, "user_id", user.ID, "room_id", roomID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	result := make([]userResponse, 0, len(users))
	for _, u := range users {
		result = append(result, toUserInfoResponse(u))
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) BanMember(w http.ResponseWriter, r *http.Request) {
	h.moderateMember(w, r, "ban")
}

func (h *Handlers) UnbanMember(w http.ResponseWriter, r *http.Request) {
	h.moderateMember(w, r, "unban")
}

func (h *Handlers) KickMember(w http.ResponseWriter, r *http.Request) {
	h.moderateMember(w, r, "kick")
}

func (h *Handlers) moderateMember(w http.ResponseWriter, r *http.Request, action string) {
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
	targetID, err := parseUintParam(r, "user_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var message string
	switch action {
	case "ban":
		err = h.Rooms.BanMember(r.Context(), user.ID, roomID, targetID)
		message = "user banned"
	case "unban":
		err = h.Rooms.UnbanMember(r.Context(), user.ID, roomID, targetID)
		message = "user unbanned"
	case "kick":
		err = h.Rooms.KickMember(r.Context(), user.ID, roomID, targetID)
		message = "user kicked"
	}
	if err != nil {
		if errors.Is(err, roomdomain.ErrCannotTargetOwner) {
			h.log.BusinessError("rooms."+action+": cannot target owner", err, "user_id", user.ID, "room_id", roomID, "target_id", targetID)
			writeError(w, http.StatusBadRequest, "cannot_target_owner", "cannot "+action+" the room owner")
			return
		}
		if writeRoomError(w, err) {
			h.log.BusinessError("rooms."+action+": rejected", err, "user_id", user.ID, "room_id", roomID, "target_id", targetID)
			return
		}
		h.log.InternalError("rooms."+action+": failed", err, "user_id", user.ID, "room_id", roomID, "target_id", targetID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}
