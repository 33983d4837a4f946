package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	roomdomain "roomie-app-go/internal/domain/room"
)

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeRoomError maps the membership and access-control failures shared
// by every room-scoped endpoint. Returns false when err is none of them,
// leaving the handler to deal with its own domain errors.
func writeRoomError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, roomdomain.ErrBanned):
		writeError(w, http.StatusForbidden, "banned", "you are banned from this room")
	case errors.Is(err, roomdomain.ErrNotAMember):
		writeError(w, http.StatusForbidden, "not_a_member", "you are not a member of this room")
	case errors.Is(err, roomdomain.ErrInsufficientRole):
		writeError(w, http.StatusForbidden, "insufficient_role", "insufficient rights")
	case errors.Is(err, roomdomain.ErrRoomNotFound):
		writeError(w, http.StatusNotFound, "room_not_found", "room not found")
	case errors.Is(err, roomdomain.ErrMemberNotFound):
		writeError(w, http.StatusNotFound, "member_not_found", "user not found in room")
	default:
		return false
	}
	return true
}
