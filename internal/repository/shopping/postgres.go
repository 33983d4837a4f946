package shopping

import (
	"context"
	"errors"

	shoppingdomain "roomie-app-go/internal/domain/shopping"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListItems(ctx context.Context, roomID uint) ([]shoppingdomain.Item, error) {
	var items []shoppingdomain.Item
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetItem(ctx context.Context, roomID, itemID uint) (*shoppingdomain.Item, error) {
	var item shoppingdomain.Item
	if err := r.db.WithContext(ctx).Where("id = ? AND room_id = ?", itemID, roomID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shoppingdomain.ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) CreateItem(ctx context.Context, item *shoppingdomain.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *PostgresRepository) UpdateItem(ctx context.Context, item *shoppingdomain.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *PostgresRepository) DeleteItem(ctx context.Context, roomID, itemID uint) error {
	return r.db.WithContext(ctx).Delete(&shoppingdomain.Item{}, "id = ? AND room_id = ?", itemID, roomID).Error
}
