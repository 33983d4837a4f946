package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"roomie-app-go/internal/domain/room"
)

const (
	defaultPollInterval = 500 * time.Millisecond
	defaultMaxPollWait  = 30 * time.Second
	defaultFetchLimit   = 100
)

type RoomAccess interface {
	RequireMember(ctx context.Context, userID, roomID uint) (room.Role, error)
}

// Config tunes the long-poll loop. Zero values fall back to defaults;
// tests use short intervals.
type Config struct {
	PollInterval time.Duration
	MaxPollWait  time.Duration
	FetchLimit   int
}

type Service struct {
	repo         Repository
	rooms        RoomAccess
	pollInterval time.Duration
	maxPollWait  time.Duration
	fetchLimit   int
}

func NewService(repo Repository, rooms RoomAccess, cfg Config) *Service {
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	maxWait := cfg.MaxPollWait
	if maxWait <= 0 {
		maxWait = defaultMaxPollWait
	}
	limit := cfg.FetchLimit
	if limit <= 0 {
		limit = defaultFetchLimit
	}

	return &Service{
		repo:         repo,
		rooms:        rooms,
		pollInterval: interval,
		maxPollWait:  maxWait,
		fetchLimit:   limit,
	}
}

func (s *Service) Send(ctx context.Context, userID, roomID uint, content string) (*Message, error) {
	if _, err := s.rooms.RequireMember(ctx, userID, roomID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("content is required")
	}

	message := Message{
		RoomID:   roomID,
		SenderID: userID,
		Content:  content,
	}
	if err := s.repo.CreateMessage(ctx, &message); err != nil {
		return nil, err
	}
	return &message, nil
}

// ListMessages returns the most recent limit messages in chronological
// order. The query fetches newest-first and the page is reversed, so the
// caller always receives an ascending slice.
func (s *Service) ListMessages(ctx context.Context, userID, roomID uint, limit int) ([]Message, error) {
	if _, err := s.rooms.RequireMember(ctx, userID, roomID); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = s.fetchLimit
	}

	messages, err := s.repo.ListRecent(ctx, roomID, limit)
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// Poll waits for messages with id greater than lastMessageID, re-querying
// the store every interval until the wait elapses. The wait only clamps
// downward: a zero wait still runs one query and then returns. An empty
// result on timeout is a success ("no new data yet, poll again"), not an
// error. The membership guard runs once at entry, and ctx cancellation
// (client disconnect) stops the loop immediately.
func (s *Service) Poll(ctx context.Context, userID, roomID, lastMessageID uint, wait time.Duration) ([]Message, error) {
	if _, err := s.rooms.RequireMember(ctx, userID, roomID); err != nil {
		return nil, err
	}

	if wait < 0 {
		wait = 0
	}
	if wait > s.maxPollWait {
		wait = s.maxPollWait
	}

	deadline := time.NewTimer(wait)
	defer deadline.Stop()
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		messages, err := s.repo.ListAfter(ctx, roomID, lastMessageID)
		if err != nil {
			return nil, err
		}
		if len(messages) > 0 {
			return messages, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline.C:
			return []Message{}, nil
		case <-ticker.C:
		}
	}
}
