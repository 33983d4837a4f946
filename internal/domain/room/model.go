package room

import "time"

// Role is the room-scoped permission tier of a membership.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

type Room struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	Code      string    `gorm:"size:6;not null;uniqueIndex"`
	CreatedBy uint      `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Member is the (room, user) join row. A banned member keeps the row so a
// previous exclusion is distinguishable from never having joined.
type Member struct {
	ID       uint      `gorm:"primaryKey"`
	RoomID   uint      `gorm:"not null;uniqueIndex:idx_room_members_room_user"`
	UserID   uint      `gorm:"not null;uniqueIndex:idx_room_members_room_user"`
	Role     Role      `gorm:"type:varchar(16);not null;default:member"`
	IsBanned bool      `gorm:"not null;default:false"`
	JoinedAt time.Time `gorm:"autoCreateTime"`
}

func (Member) TableName() string {
	return "room_members"
}

type RoomWithCount struct {
	Room        Room
	MemberCount int64
}

// UserInfo is the user projection exposed to room listings. The room
// domain keeps its own copy of the shape instead of importing the user
// package.
type UserInfo struct {
	ID         uint
	Username   string
	FirstName  string
	LastName   string
	MiddleName *string
	BirthDate  string
	Contact    string
	CreatedAt  time.Time
}

type MemberInfo struct {
	ID       uint
	Role     Role
	IsBanned bool
	JoinedAt time.Time
	User     UserInfo
}
