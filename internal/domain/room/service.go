package room

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ResolveRole reports the caller's role in a room. A missing membership
// is a normal negative result (ok=false); a banned membership is an
// access failure (ErrBanned), never a role.
func (s *Service) ResolveRole(ctx context.Context, userID, roomID uint) (Role, bool, error) {
	member, err := s.repo.GetMember(ctx, roomID, userID)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	if member.IsBanned {
		return "", false, ErrBanned
	}
	return member.Role, true, nil
}

// RequireMember is the entry guard for every room-scoped operation.
// Ban failures from ResolveRole pass through unchanged.
func (s *Service) RequireMember(ctx context.Context, userID, roomID uint) (Role, error) {
	role, ok, err := s.ResolveRole(ctx, userID, roomID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrNotAMember
	}
	return role, nil
}

func (s *Service) RequireAdmin(ctx context.Context, userID, roomID uint) (Role, error) {
	role, err := s.RequireMember(ctx, userID, roomID)
	if err != nil {
		return "", err
	}
	switch role {
	case RoleOwner, RoleAdmin:
		return role, nil
	case RoleMember:
		return "", ErrInsufficientRole
	}
	return "", ErrInsufficientRole
}

func (s *Service) RequireOwner(ctx context.Context, userID, roomID uint) (Role, error) {
	role, err := s.RequireMember(ctx, userID, roomID)
	if err != nil {
		return "", err
	}
	if role != RoleOwner {
		return "", ErrInsufficientRole
	}
	return role, nil
}

// CreateRoom persists the room and its owner membership in one
// transaction, so the room is never visible without an owner.
func (s *Service) CreateRoom(ctx context.Context, userID uint, name string) (*RoomWithCount, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	var result Room
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		code, err := generateUniqueCode(ctx, tx)
		if err != nil {
			return err
		}

		created := Room{
			Name:      name,
			Code:      code,
			CreatedBy: userID,
		}
		if err := tx.CreateRoom(ctx, &created); err != nil {
			return err
		}

		member := Member{
			RoomID: created.ID,
			UserID: userID,
			Role:   RoleOwner,
		}
		if err := tx.AddMember(ctx, &member); err != nil {
			return err
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &RoomWithCount{Room: result, MemberCount: 1}, nil
}

func (s *Service) ListRooms(ctx context.Context, userID uint) ([]RoomWithCount, error) {
	rooms, err := s.repo.ListRoomsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]RoomWithCount, 0, len(rooms))
	for _, rm := range rooms {
		count, err := s.repo.CountActiveMembers(ctx, rm.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, RoomWithCount{Room: rm, MemberCount: count})
	}
	return result, nil
}

// JoinRoom looks up the room by its uppercase-normalized code and adds a
// member-role membership. A banned row rejects with ErrBanned, an active
// row with ErrAlreadyMember.
func (s *Service) JoinRoom(ctx context.Context, userID uint, code string) (*RoomWithCount, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, fmt.Errorf("code is required")
	}

	var result Room
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		joined, err := tx.GetRoomByCode(ctx, code)
		if err != nil {
			return err
		}

		existing, err := tx.GetMember(ctx, joined.ID, userID)
		if err != nil && !errors.Is(err, ErrMemberNotFound) {
			return err
		}
		if existing != nil {
			if existing.IsBanned {
				return ErrBanned
			}
			return ErrAlreadyMember
		}

		member := Member{
			RoomID: joined.ID,
			UserID: userID,
			Role:   RoleMember,
		}
		if err := tx.AddMember(ctx, &member); err != nil {
			return err
		}

		result = *joined
		return nil
	})
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountActiveMembers(ctx, result.ID)
	if err != nil {
		return nil, err
	}
	return &RoomWithCount{Room: result, MemberCount: count}, nil
}

func (s *Service) LeaveRoom(ctx context.Context, userID, roomID uint) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		member, err := tx.GetMember(ctx, roomID, userID)
		if err != nil {
			if errors.Is(err, ErrMemberNotFound) {
				return ErrNotAMember
			}
			return err
		}
		if member.Role == RoleOwner {
			return ErrOwnerCannotLeave
		}
		return tx.DeleteMember(ctx, roomID, userID)
	})
}

// DeleteRoom is owner-only and cascades to every dependent record.
func (s *Service) DeleteRoom(ctx context.Context, userID, roomID uint) error {
	if _, err := s.RequireOwner(ctx, userID, roomID); err != nil {
		return err
	}
	return s.repo.DeleteRoom(ctx, roomID)
}

func (s *Service) ListMembers(ctx context.Context, userID, roomID uint) ([]MemberInfo, error) {
	if _, err := s.RequireMember(ctx, userID, roomID); err != nil {
		return nil, err
	}
	return s.repo.ListMembersWithUsers(ctx, roomID)
}

func (s *Service) ListUsers(ctx context.Context, userID, roomID uint) ([]UserInfo, error) {
	if _, err := s.RequireMember(ctx, userID, roomID); err != nil {
		return nil, err
	}
	return s.repo.ListActiveUsers(ctx, roomID)
}

// BanMember marks the target banned while keeping the membership row.
// The check and the write share one transaction so concurrent role or
// ban changes cannot be lost.
func (s *Service) BanMember(ctx context.Context, ownerID, roomID, targetID uint) error {
	if _, err := s.RequireOwner(ctx, ownerID, roomID); err != nil {
		return err
	}
	return s.repo.Transaction(ctx, func(tx Repository) error {
		member, err := tx.GetMember(ctx, roomID, targetID)
		if err != nil {
			return err
		}
		if member.Role == RoleOwner {
			return ErrCannotTargetOwner
		}
		return tx.SetMemberBanned(ctx, roomID, targetID, true)
	})
}

// UnbanMember clears the ban flag unconditionally when the row exists.
func (s *Service) UnbanMember(ctx context.Context, ownerID, roomID, targetID uint) error {
	if _, err := s.RequireOwner(ctx, ownerID, roomID); err != nil {
		return err
	}
	return s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.GetMember(ctx, roomID, targetID); err != nil {
			return err
		}
		return tx.SetMemberBanned(ctx, roomID, targetID, false)
	})
}

// KickMember deletes the membership row outright; the target may rejoin
// fresh via the room code.
func (s *Service) KickMember(ctx context.Context, ownerID, roomID, targetID uint) error {
	if _, err := s.RequireOwner(ctx, ownerID, roomID); err != nil {
		return err
	}
	return s.repo.Transaction(ctx, func(tx Repository) error {
		member, err := tx.GetMember(ctx, roomID, targetID)
		if err != nil {
			return err
		}
		if member.Role == RoleOwner {
			return ErrCannotTargetOwner
		}
		return tx.DeleteMember(ctx, roomID, targetID)
	})
}
