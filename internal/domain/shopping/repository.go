package shopping

import "context"

type Repository interface {
	ListItems(ctx context.Context, roomID uint) ([]Item, error)
	GetItem(ctx context.Context, roomID, itemID uint) (*Item, error)
	CreateItem(ctx context.Context, item *Item) error
	UpdateItem(ctx context.Context, item *Item) error
	DeleteItem(ctx context.Context, roomID, itemID uint) error
}
