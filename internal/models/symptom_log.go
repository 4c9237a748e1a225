package models

import "time"

type SymptomLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	Severity    int       `gorm:"not null;default:1" json:"severity"`
	LoggedAt    time.Time `gorm:"not null" json:"logged_at"`
}
