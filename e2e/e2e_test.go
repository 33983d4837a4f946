//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"roomie-app-go/internal/auth"
	"roomie-app-go/internal/config"
	"roomie-app-go/internal/db"
	chatdomain "roomie-app-go/internal/domain/chat"
	cleaningdomain "roomie-app-go/internal/domain/cleaning"
	roomdomain "roomie-app-go/internal/domain/room"
	shoppingdomain "roomie-app-go/internal/domain/shopping"
	tasksdomain "roomie-app-go/internal/domain/tasks"
	userdomain "roomie-app-go/internal/domain/user"
	chatrepo "roomie-app-go/internal/repository/chat"
	cleaningrepo "roomie-app-go/internal/repository/cleaning"
	roomrepo "roomie-app-go/internal/repository/room"
	shoppingrepo "roomie-app-go/internal/repository/shopping"
	tasksrepo "roomie-app-go/internal/repository/tasks"
	userrepo "roomie-app-go/internal/repository/user"
	"roomie-app-go/internal/transport/httpserver"
	"roomie-app-go/internal/transport/httpserver/handler"
	"roomie-app-go/pkg/logger"

	"gorm.io/gorm"
)

type testEnv struct {
	server *httptest.Server
	db     *gorm.DB
}

func setupE2E(t *testing.T) *testEnv {
	t.Helper()

	dsn := os.Getenv("E2E_DB_DSN")
	if dsn == "" {
		t.Skip("E2E_DB_DSN not set; skipping e2e tests")
	}

	log := logger.New(io.Discard, 0, "json")

	cfg := config.Config{
		DB: config.DBConfig{DSN: dsn},
		Auth: config.AuthConfig{
			JWTSecret: "e2e-test-secret",
			TokenTTL:  time.Hour,
		},
		Chat: config.ChatConfig{
			PollInterval:   20 * time.Millisecond,
			MaxPollTimeout: 2 * time.Second,
			FetchLimit:     100,
		},
	}

	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}

	if err := db.Migrate(dbConn); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if err := cleanDB(dbConn); err != nil {
		t.Fatalf("clean db: %v", err)
	}

	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	rooms := roomdomain.NewService(roomrepo.NewPostgres(dbConn))
	users := userdomain.NewService(userrepo.NewPostgres(dbConn), tokens)
	tasks := tasksdomain.NewService(tasksrepo.NewPostgres(dbConn), rooms)
	shopping := shoppingdomain.NewService(shoppingrepo.NewPostgres(dbConn), rooms)
	cleaning := cleaningdomain.NewService(cleaningrepo.NewPostgres(dbConn), rooms)
	chat := chatdomain.NewService(chatrepo.NewPostgres(dbConn), rooms, chatdomain.Config{
		PollInterval: cfg.Chat.PollInterval,
		MaxPollWait:  cfg.Chat.MaxPollTimeout,
		FetchLimit:   cfg.Chat.FetchLimit,
	})

	handlers := handler.New(users, rooms, tasks, shopping, cleaning, chat, log)
	router := httpserver.NewRouter(cfg, handlers, tokens, log)
	server := httptest.NewServer(router)

	return &testEnv{server: server, db: dbConn}
}

func (e *testEnv) Close() {
	e.server.Close()
	sqlDB, err := e.db.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
}

func cleanDB(dbConn *gorm.DB) error {
	return dbConn.WithContext(context.Background()).Exec(
		"TRUNCATE TABLE messages, cleaning_schedules, shopping_items, tasks, room_members, rooms, users RESTART IDENTITY CASCADE",
	).Error
}

func requestJSON(t *testing.T, client *http.Client, method, url, token string, payload interface{}) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}

	return resp, respBody
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type userResponse struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type tokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        userResponse `json:"user"`
}

type roomResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	CreatedBy   uint   `json:"created_by"`
	MemberCount int64  `json:"member_count"`
}

type memberResponse struct {
	ID       uint         `json:"id"`
	User     userResponse `json:"user"`
	Role     string       `json:"role"`
	IsBanned bool         `json:"is_banned"`
}

type messageResponse struct {
	ID       uint   `json:"id"`
	RoomID   uint   `json:"room_id"`
	SenderID uint   `json:"sender_id"`
	Content  string `json:"content"`
}

func registerUser(t *testing.T, client *http.Client, baseURL, username string) tokenResponse {
	t.Helper()

	resp, body := requestJSON(t, client, http.MethodPost, baseURL+"/api/register", "", map[string]string{
		"username":   username,
		"password":   "password123",
		"first_name": "Test",
		"last_name":  "User",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d: %s", username, resp.StatusCode, string(body))
	}
	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		t.Fatalf("decode token: %v", err)
	}
	return token
}

func TestE2EAuthFlow(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := &http.Client{Timeout: 5 * time.Second}

	resp, body := requestJSON(t, client, http.MethodGet, env.server.URL+"/api/health", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/api/me", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", resp.StatusCode, string(body))
	}
	var errResp errorEnvelope
	if err := json.Unmarshal(body, &errResp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if errResp.Error.Code != "invalid_token" {
		t.Fatalf("expected invalid_token, got %q", errResp.Error.Code)
	}

	token := registerUser(t, client, env.server.URL, "alice")

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/register", "", map[string]string{
		"username":   "alice",
		"password":   "password123",
		"first_name": "Other",
		"last_name":  "Alice",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/login", "", map[string]string{
		"username": "alice",
		"password": "wrong password",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/api/me", token.AccessToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, string(body))
	}
	var me userResponse
	if err := json.Unmarshal(body, &me); err != nil {
		t.Fatalf("decode me: %v", err)
	}
	if me.Username != "alice" {
		t.Fatalf("expected alice, got %q", me.Username)
	}
}

func TestE2ERoomLifecycle(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := &http.Client{Timeout: 5 * time.Second}

	owner := registerUser(t, client, env.server.URL, "owner")
	guest := registerUser(t, client, env.server.URL, "guest")

	resp, body := requestJSON(t, client, http.MethodPost, env.server.URL+"/api/rooms", owner.AccessToken, map[string]string{
		"name": "Flat 12",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, string(body))
	}
	var created roomResponse
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("decode room: %v", err)
	}
	if created.Code == "" || created.MemberCount != 1 {
		t.Fatalf("unexpected room: %+v", created)
	}

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/rooms/join", guest.AccessToken, map[string]string{
		"code": created.Code,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/rooms/join", guest.AccessToken, map[string]string{
		"code": created.Code,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("rejoin: expected 400, got %d: %s", resp.StatusCode, string(body))
	}

	roomURL := fmt.Sprintf("%s/api/rooms/%d", env.server.URL, created.ID)

	resp, body = requestJSON(t, client, http.MethodPost, fmt.Sprintf("%s/ban/%d", roomURL, guest.User.ID), owner.AccessToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("ban: expected 200, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodGet, fmt.Sprintf("%s/api/rooms/%d/tasks", env.server.URL, created.ID), guest.AccessToken, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("banned access: expected 403, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/rooms/join", guest.AccessToken, map[string]string{
		"code": created.Code,
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("banned rejoin: expected 403, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodPost, fmt.Sprintf("%s/unban/%d", roomURL, guest.User.ID), owner.AccessToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unban: expected 200, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodGet, fmt.Sprintf("%s/api/rooms/%d/members", env.server.URL, created.ID), guest.AccessToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("members: expected 200, got %d: %s", resp.StatusCode, string(body))
	}
	var members []memberResponse
	if err := json.Unmarshal(body, &members); err != nil {
		t.Fatalf("decode members: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}

	resp, body = requestJSON(t, client, http.MethodDelete, fmt.Sprintf("%s/kick/%d", roomURL, guest.User.ID), owner.AccessToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("kick: expected 200, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/rooms/join", guest.AccessToken, map[string]string{
		"code": created.Code,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("rejoin after kick: expected 200, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodPost, fmt.Sprintf("%s/api/rooms/%d/leave", env.server.URL, created.ID), owner.AccessToken, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("owner leave: expected 400, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodDelete, fmt.Sprintf("%s/api/rooms/%d", env.server.URL, created.ID), guest.AccessToken, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("guest delete: expected 403, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodDelete, fmt.Sprintf("%s/api/rooms/%d", env.server.URL, created.ID), owner.AccessToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("owner delete: expected 200, got %d: %s", resp.StatusCode, string(body))
	}
}

func TestE2EChatFlow(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := &http.Client{Timeout: 10 * time.Second}

	owner := registerUser(t, client, env.server.URL, "owner")
	guest := registerUser(t, client, env.server.URL, "guest")

	resp, body := requestJSON(t, client, http.MethodPost, env.server.URL+"/api/rooms", owner.AccessToken, map[string]string{
		"name": "Flat 12",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, string(body))
	}
	var created roomResponse
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("decode room: %v", err)
	}

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/rooms/join", guest.AccessToken, map[string]string{
		"code": created.Code,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("join: expected 200, got %d: %s", resp.StatusCode, string(body))
	}

	messagesURL := fmt.Sprintf("%s/api/rooms/%d/messages", env.server.URL, created.ID)

	resp, body = requestJSON(t, client, http.MethodPost, messagesURL, owner.AccessToken, map[string]string{
		"content": "hello",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("send: expected 201, got %d: %s", resp.StatusCode, string(body))
	}
	var first messageResponse
	if err := json.Unmarshal(body, &first); err != nil {
		t.Fatalf("decode message: %v", err)
	}

	resp, body = requestJSON(t, client, http.MethodGet, messagesURL, guest.AccessToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: expected 200, got %d: %s", resp.StatusCode, string(body))
	}
	var listed []messageResponse
	if err := json.Unmarshal(body, &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 1 || listed[0].Content != "hello" {
		t.Fatalf("unexpected messages: %+v", listed)
	}

	// a poll past the last id times out empty with 200
	pollURL := fmt.Sprintf("%s/poll?last_message_id=%d&timeout=1", messagesURL, first.ID)
	resp, body = requestJSON(t, client, http.MethodGet, pollURL, guest.AccessToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("poll: expected 200, got %d: %s", resp.StatusCode, string(body))
	}
	var polled []messageResponse
	if err := json.Unmarshal(body, &polled); err != nil {
		t.Fatalf("decode poll: %v", err)
	}
	if len(polled) != 0 {
		t.Fatalf("expected empty poll, got %+v", polled)
	}

	go func() {
		time.Sleep(100 * time.Millisecond)
		_, _ = requestJSON(t, client, http.MethodPost, messagesURL, owner.AccessToken, map[string]string{
			"content": "late message",
		})
	}()

	pollURL = fmt.Sprintf("%s/poll?last_message_id=%d&timeout=5", messagesURL, first.ID)
	resp, body = requestJSON(t, client, http.MethodGet, pollURL, guest.AccessToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("poll: expected 200, got %d: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, &polled); err != nil {
		t.Fatalf("decode poll: %v", err)
	}
	if len(polled) != 1 || polled[0].Content != "late message" {
		t.Fatalf("expected the late message, got %+v", polled)
	}
}

func TestE2ETasksFlow(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := &http.Client{Timeout: 5 * time.Second}

	owner := registerUser(t, client, env.server.URL, "owner")
	guest := registerUser(t, client, env.server.URL, "guest")

	resp, body := requestJSON(t, client, http.MethodPost, env.server.URL+"/api/rooms", owner.AccessToken, map[string]string{
		"name": "Flat 12",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, string(body))
	}
	var created roomResponse
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("decode room: %v", err)
	}

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/rooms/join", guest.AccessToken, map[string]string{
		"code": created.Code,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("join: expected 200, got %d: %s", resp.StatusCode, string(body))
	}

	tasksURL := fmt.Sprintf("%s/api/rooms/%d/tasks", env.server.URL, created.ID)

	resp, body = requestJSON(t, client, http.MethodPost, tasksURL, owner.AccessToken, map[string]interface{}{
		"title":       "Take out trash",
		"assignee_id": owner.User.ID,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create task: expected 201, got %d: %s", resp.StatusCode, string(body))
	}
	var task struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(body, &task); err != nil {
		t.Fatalf("decode task: %v", err)
	}

	taskURL := fmt.Sprintf("%s/%d", tasksURL, task.ID)

	// a plain member may not touch someone else's task
	resp, body = requestJSON(t, client, http.MethodPut, taskURL, guest.AccessToken, map[string]interface{}{
		"completed": true,
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("foreign update: expected 403, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodPut, taskURL, owner.AccessToken, map[string]interface{}{
		"completed": true,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("own update: expected 200, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodDelete, taskURL, owner.AccessToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodDelete, taskURL, owner.AccessToken, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("double delete: expected 404, got %d: %s", resp.StatusCode, string(body))
	}
}
