package room

import (
	"context"
	"errors"
	"time"

	roomdomain "roomie-app-go/internal/domain/room"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(roomdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) CreateRoom(ctx context.Context, room *roomdomain.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *PostgresRepository) GetRoomByID(ctx context.Context, roomID uint) (*roomdomain.Room, error) {
	var room roomdomain.Room
	if err := r.db.WithContext(ctx).First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, roomdomain.ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (r *PostgresRepository) GetRoomByCode(ctx context.Context, code string) (*roomdomain.Room, error) {
	var room roomdomain.Room
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, roomdomain.ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

// DeleteRoom removes the room and all dependent rows in one transaction.
// The schema also carries ON DELETE CASCADE; the explicit deletes keep
// the cascade visible and independent of FK setup.
func (r *PostgresRepository) DeleteRoom(ctx context.Context, roomID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"messages", "cleaning_schedules", "shopping_items", "tasks", "room_members"} {
			if err := tx.Exec("DELETE FROM "+table+" WHERE room_id = ?", roomID).Error; err != nil {
				return err
			}
		}
		return tx.Exec("DELETE FROM rooms WHERE id = ?", roomID).Error
	})
}

func (r *PostgresRepository) IsCodeTaken(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&roomdomain.Room{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) AddMember(ctx context.Context, member *roomdomain.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *PostgresRepository) GetMember(ctx context.Context, roomID, userID uint) (*roomdomain.Member, error) {
	var member roomdomain.Member
	if err := r.db.WithContext(ctx).Where("room_id = ? AND user_id = ?", roomID, userID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, roomdomain.ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *PostgresRepository) SetMemberBanned(ctx context.Context, roomID, userID uint, banned bool) error {
	return r.db.WithContext(ctx).Model(&roomdomain.Member{}).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Update("is_banned", banned).Error
}

func (r *PostgresRepository) DeleteMember(ctx context.Context, roomID, userID uint) error {
	return r.db.WithContext(ctx).Delete(&roomdomain.Member{}, "room_id = ? AND user_id = ?", roomID, userID).Error
}

func (r *PostgresRepository) ListRoomsByUser(ctx context.Context, userID uint) ([]roomdomain.Room, error) {
	var rooms []roomdomain.Room
	err := r.db.WithContext(ctx).
		Table("rooms").
		Joins("join room_members on room_members.room_id = rooms.id").
		Where("room_members.user_id = ? AND room_members.is_banned = false", userID).
		Order("rooms.created_at asc").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *PostgresRepository) CountActiveMembers(ctx context.Context, roomID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&roomdomain.Member{}).
		Where("room_id = ? AND is_banned = false", roomID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) ListMembersWithUsers(ctx context.Context, roomID uint) ([]roomdomain.MemberInfo, error) {
	type memberRow struct {
		ID         uint      `gorm:"column:id"`
		Role       string    `gorm:"column:role"`
		IsBanned   bool      `gorm:"column:is_banned"`
		JoinedAt   time.Time `gorm:"column:joined_at"`
		UserID     uint      `gorm:"column:user_id"`
		Username   string    `gorm:"column:username"`
		FirstName  string    `gorm:"column:first_name"`
		LastName   string    `gorm:"column:last_name"`
		MiddleName *string   `gorm:"column:middle_name"`
		BirthDate  string    `gorm:"column:birth_date"`
		Contact    string    `gorm:"column:contact"`
		UserSince  time.Time `gorm:"column:user_created_at"`
	}

	var rows []memberRow
	err := r.db.WithContext(ctx).
		Table("room_members").
		Select(`room_members.id, room_members.role, room_members.is_banned, room_members.joined_at,
			users.id as user_id, users.username, users.first_name, users.last_name,
			users.middle_name, users.birth_date, users.contact, users.created_at as user_created_at`).
		Joins("join users on users.id = room_members.user_id").
		Where("room_members.room_id = ?", roomID).
		Order("room_members.joined_at asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	members := make([]roomdomain.MemberInfo, 0, len(rows))
	for _, row := range rows {
		members = append(members, roomdomain.MemberInfo{
			ID:       row.ID,
			Role:     roomdomain.Role(row.Role),
			IsBanned: row.IsBanned,
			JoinedAt: row.JoinedAt,
			User: roomdomain.UserInfo{
				ID:         row.UserID,
				Username:   row.Username,
				FirstName:  row.FirstName,
				LastName:   row.LastName,
				MiddleName: row.MiddleName,
				BirthDate:  row.BirthDate,
				Contact:    row.Contact,
				CreatedAt:  row.UserSince,
			},
		})
	}
	return members, nil
}

func (r *PostgresRepository) ListActiveUsers(ctx context.Context, roomID uint) ([]roomdomain.UserInfo, error) {
	type userRow struct {
		ID         uint      `gorm:"column:id"`
		Username   string    `gorm:"column:username"`
		FirstName  string    `gorm:"column:first_name"`
		LastName   string    `gorm:"column:last_name"`
		MiddleName *string   `gorm:"column:middle_name"`
		BirthDate  string    `gorm:"column:birth_date"`
		Contact    string    `gorm:"column:contact"`
		CreatedAt  time.Time `gorm:"column:created_at"`
	}

	var rows []userRow
	err := r.db.WithContext(ctx).
		Table("users").
		Select("users.id, users.username, users.first_name, users.last_name, users.middle_name, users.birth_date, users.contact, users.created_at").
		Joins("join room_members on room_members.user_id = users.id").
		Where("room_members.room_id = ? AND room_members.is_banned = false", roomID).
		Order("room_members.joined_at asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	users := make([]roomdomain.UserInfo, 0, len(rows))
	for _, row := range rows {
		users = append(users, roomdomain.UserInfo(row))
	}
	return users, nil
}
