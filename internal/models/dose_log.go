package models

import "time"

const (
	DoseStatusTaken   = "taken"
	DoseStatusSkipped = "skipped"
)

// DoseLogEntry is an immutable record of a single intake event. Entries are
// never updated; they are removed only when the owning medication is deleted.
type DoseLogEntry struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ScheduleEntryID uint      `gorm:"not null;index" json:"schedule_entry_id"`
	Status          string    `gorm:"not null" json:"status"`
	TakenAt         time.Time `gorm:"not null;index" json:"taken_at"`
}

func IsValidDoseStatus(status string) bool {
	return status == DoseStatusTaken || status == DoseStatusSkipped
}
