package models

import "time"

const (
	CaringStatusActive  = "active"
	CaringStatusRevoked = "revoked"
)

type Caregiver struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Email           string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash    string    `gorm:"not null" json:"-"`
	FirstName       string    `gorm:"not null" json:"first_name"`
	LastName        string    `gorm:"not null" json:"last_name"`
	ProfileImageURL string    `json:"profile_image_url"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
}

// Caring links a caregiver to the patient they act on behalf of.
type Caring struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:uidx_caring_pair" json:"user_id"`
	CaregiverID uint      `gorm:"not null;uniqueIndex:uidx_caring_pair" json:"caregiver_id"`
	Status      string    `gorm:"not null;default:active" json:"status"`
	GrantedAt   time.Time `gorm:"not null" json:"granted_at"`
}
