package models

import "time"

// EveryDay is the only day-of-week mask currently produced by the client.
const EveryDay = "everyday"

// ScheduleEntry is one daily clock time at which a medication should be taken.
// TimeToTake is an HH:MM:SS string in local device time; no two entries for the
// same medication may share a clock time.
type ScheduleEntry struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	MedicationID uint      `gorm:"not null;uniqueIndex:uidx_med_time" json:"medication_id"`
	TimeToTake   string    `gorm:"not null;uniqueIndex:uidx_med_time" json:"time_to_take"`
	DaysOfWeek   string    `gorm:"not null;default:everyday" json:"days_of_week"`
	DosageAmount int       `gorm:"not null;default:1" json:"dosage_amount"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}
