package models

import "time"

// Stock tracks the remaining countable quantity for one medication.
// Quantity never goes negative: decrements clamp at zero.
type Stock struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	MedicationID    uint      `gorm:"not null;uniqueIndex" json:"medication_id"`
	Quantity        int       `gorm:"not null;default:0" json:"quantity"`
	NotifyThreshold int       `gorm:"not null;default:0" json:"notify_threshold"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (stock Stock) IsLow() bool {
	return stock.Quantity <= stock.NotifyThreshold
}
