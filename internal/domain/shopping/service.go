package shopping

import (
	"context"
	"fmt"
	"strings"

	"roomie-app-go/internal/domain/room"
)

type RoomAccess interface {
	RequireMember(ctx context.Context, userID, roomID uint) (room.Role, error)
}

type Service struct {
	repo  Repository
	rooms RoomAccess
}

func NewService(repo Repository, rooms RoomAccess) *Service {
	return &Service{repo: repo, rooms: rooms}
}

func (s *Service) ListItems(ctx context.Context, userID, roomID uint) ([]Item, error) {
	if _, err := s.rooms.RequireMember(ctx, userID, roomID); err != nil {
		return nil, err
	}
	return s.repo.ListItems(ctx, roomID)
}

func (s *Service) CreateItem(ctx context.Context, userID, roomID uint, input CreateItemInput) (*Item, error) {
	if _, err := s.rooms.RequireMember(ctx, userID, roomID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	item := Item{
		RoomID:    roomID,
		Name:      name,
		Quantity:  input.Quantity,
		CreatedBy: userID,
	}
	if err := s.repo.CreateItem(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Service) UpdateItem(ctx context.Context, userID, roomID, itemID uint, input UpdateItemInput) (*Item, error) {
	if _, err := s.rooms.RequireMember(ctx, userID, roomID); err != nil {
		return nil, err
	}

	item, err := s.repo.GetItem(ctx, roomID, itemID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		if trimmed == "" {
			return nil, fmt.Errorf("name is required")
		}
		item.Name = trimmed
	}
	if input.Quantity != nil {
		item.Quantity = input.Quantity
	}
	if input.Purchased != nil {
		item.Purchased = *input.Purchased
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) DeleteItem(ctx context.Context, userID, roomID, itemID uint) error {
	if _, err := s.rooms.RequireMember(ctx, userID, roomID); err != nil {
		return err
	}
	if _, err := s.repo.GetItem(ctx, roomID, itemID); err != nil {
		return err
	}
	return s.repo.DeleteItem(ctx, roomID, itemID)
}
