package user

import "time"

type User struct {
	ID             uint      `gorm:"primaryKey"`
	Username       string    `gorm:"not null;uniqueIndex"`
	HashedPassword string    `gorm:"not null"`
	FirstName      string    `gorm:"not null"`
	LastName       string    `gorm:"not null"`
	MiddleName     *string
	BirthDate      string
	Contact        string
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

type RegisterInput struct {
	Username   string
	Password   string
	FirstName  string
	LastName   string
	MiddleName *string
	BirthDate  string
	Contact    string
}
