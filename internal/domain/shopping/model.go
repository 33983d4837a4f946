package shopping

import "time"

type Item struct {
	ID        uint      `gorm:"primaryKey"`
	RoomID    uint      `gorm:"not null;index"`
	Name      string    `gorm:"not null"`
	Quantity  *string
	Purchased bool      `gorm:"not null;default:false"`
	CreatedBy uint      `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Item) TableName() string {
	return "shopping_items"
}

type CreateItemInput struct {
	Name     string
	Quantity *string
}

// UpdateItemInput is an explicit patch: nil fields are left untouched.
type UpdateItemInput struct {
	Name      *string
	Quantity  *string
	Purchased *bool
}
