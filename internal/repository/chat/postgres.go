package chat

import (
	"context"

	chatdomain "roomie-app-go/internal/domain/chat"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateMessage(ctx context.Context, message *chatdomain.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *PostgresRepository) ListRecent(ctx context.Context, roomID uint, limit int) ([]chatdomain.Message, error) {
	var messages []chatdomain.Message
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at desc").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// ListAfter issues a fresh query on every call; gorm sessions do not
// cache result sets, so poll retries always observe new writes.
func (r *PostgresRepository) ListAfter(ctx context.Context, roomID, afterID uint) ([]chatdomain.Message, error) {
	query := r.db.WithContext(ctx).Where("room_id = ?", roomID)
	if afterID > 0 {
		query = query.Where("id > ?", afterID)
	}

	var messages []chatdomain.Message
	if err := query.Order("created_at asc").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
