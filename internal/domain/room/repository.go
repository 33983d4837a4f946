package room

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	CreateRoom(ctx context.Context, room *Room) error
	GetRoomByID(ctx context.Context, roomID uint) (*Room, error)
	GetRoomByCode(ctx context.Context, code string) (*Room, error)
	// DeleteRoom removes the room and every dependent record (members,
	// tasks, shopping items, cleaning schedules, messages) atomically.
	DeleteRoom(ctx context.Context, roomID uint) error
	IsCodeTaken(ctx context.Context, code string) (bool, error)

	AddMember(ctx context.Context, member *Member) error
	GetMember(ctx context.Context, roomID, userID uint) (*Member, error)
	SetMemberBanned(ctx context.Context, roomID, userID uint, banned bool) error
	DeleteMember(ctx context.Context, roomID, userID uint) error

	ListRoomsByUser(ctx context.Context, userID uint) ([]Room, error)
	CountActiveMembers(ctx context.Context, roomID uint) (int64, error)
	ListMembersWithUsers(ctx context.Context, roomID uint) ([]MemberInfo, error)
	ListActiveUsers(ctx context.Context, roomID uint) ([]UserInfo, error)
}
