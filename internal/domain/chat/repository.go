package chat

import "context"

type Repository interface {
	CreateMessage(ctx context.Context, message *Message) error
	// ListRecent returns up to limit messages, newest first.
	ListRecent(ctx context.Context, roomID uint, limit int) ([]Message, error)
	// ListAfter returns messages with id greater than afterID in
	// chronological order. afterID zero applies no id filter. Every call
	// must hit the backing store, never a cached snapshot.
	ListAfter(ctx context.Context, roomID, afterID uint) ([]Message, error)
}
