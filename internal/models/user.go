package models

import "time"

type User struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Email           string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash    string    `gorm:"not null" json:"-"`
	FirstName       string    `gorm:"not null" json:"first_name"`
	LastName        string    `gorm:"not null" json:"last_name"`
	InviteCode      string    `gorm:"uniqueIndex;not null" json:"invite_code"`
	ProfileImageURL string    `json:"profile_image_url"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
}
