package chat

import "time"

// Message is append-only and immutable after creation. Its id increases
// monotonically and doubles as the poll cursor.
type Message struct {
	ID        uint      `gorm:"primaryKey"`
	RoomID    uint      `gorm:"not null;index"`
	SenderID  uint      `gorm:"not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
