package handler

import (
	"errors"
	"net/http"
	"time"

	"roomie-app-go/internal/auth"
	userdomain "roomie-app-go/internal/domain/user"
	"roomie-app-go/internal/transport/httpserver/middleware"
)

type registerRequest struct {
	Username   string  `json:"username"`
	Password   string  `json:"password"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	MiddleName *string `json:"middle_name"`
	BirthDate  string  `json:"birth_date"`
	Contact    string  `json:"contact"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID         uint      `json:"id"`
	Username   string    `json:"username"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	MiddleName *string   `json:"middle_name,omitempty"`
	BirthDate  string    `json:"birth_date"`
	Contact    string    `json:"contact"`
	CreatedAt  time.Time `json:"created_at"`
}

type tokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        userResponse `json:"user"`
}

func toUserResponse(u *userdomain.User) userResponse {
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

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	created, token, err := h.Users.Register(r.Context(), userdomain.RegisterInput{
		Username:   req.Username,
		Password:   req.Password,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		MiddleName: req.MiddleName,
		BirthDate:  req.BirthDate,
		Contact:    req.Contact,
	})
	if err != nil {
		switch {
		case errors.Is(err, userdomain.ErrUsernameTaken):
			h.log.BusinessError("auth.register: username taken", err, "username", req.Username)
			writeError(w, http.StatusBadRequest, "username_taken", "username already registered")
		case errors.Is(err, auth.ErrWeakPassword):
			h.log.BusinessError("auth.register: weak password", err, "username", req.Username)
			writeError(w, http.StatusBadRequest, "weak_password", err.Error())
		default:
			h.log.InternalError("auth.register: register failed", err, "username", req.Username)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        toUserResponse(created),
	})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	found, token, err := h.Users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.log.BusinessError("auth.login: invalid credentials", err, "username", req.Username)
			writeError(w, http.StatusUnauthorized, "invalid_credentials", "incorrect username or password")
			return
		}
		h.log.InternalError("auth.login: login failed", err, "username", req.Username)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        toUserResponse(found),
	})
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	found, err := h.Users.GetByID(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			h.log.BusinessError("auth.me: user no longer exists", err, "user_id", user.ID)
			writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
			return
		}
		h.log.InternalError("auth.me: get user failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(found))
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
