package models

import "time"

// MedicationRow is one row of the raw Medication × Stock × ScheduleEntry join
// used to build the aggregated schedule view. The join can fan out or carry
// duplicates saved by a buggy client; the view layer deduplicates.
type MedicationRow struct {
	MedicationID    uint   `gorm:"column:medication_id" json:"medication_id"`
	ScheduleEntryID uint   `gorm:"column:schedule_entry_id" json:"schedule_entry_id"`
	Name            string `gorm:"column:name" json:"name"`
	DiseaseGroup    string `gorm:"column:disease_group" json:"disease_group"`
	DrugType        string `gorm:"column:drug_type" json:"drug_type"`
	DosageUnit      string `gorm:"column:dosage_unit" json:"dosage_unit"`
	Instruction     string `gorm:"column:instruction" json:"instruction"`
	IntakeTiming    string `gorm:"column:intake_timing" json:"intake_timing"`
	ImageURL        string `gorm:"column:image_url" json:"image_url"`
	Active          bool   `gorm:"column:active" json:"active"`
	Quantity        int    `gorm:"column:quantity" json:"quantity"`
	NotifyThreshold int    `gorm:"column:notify_threshold" json:"notify_threshold"`
	TimeToTake      string `gorm:"column:time_to_take" json:"time_to_take"`
	DaysOfWeek      string `gorm:"column:days_of_week" json:"days_of_week"`
	DosageAmount    int    `gorm:"column:dosage_amount" json:"dosage_amount"`
}

// CaregiverSummary is a Caring row joined with the caregiver's profile fields.
type CaregiverSummary struct {
	CaringID  uint   `gorm:"column:caring_id" json:"caring_id"`
	FirstName string `gorm:"column:first_name" json:"first_name"`
	LastName  string `gorm:"column:last_name" json:"last_name"`
	Email     string `gorm:"column:email" json:"email"`
}

// LowStockEntry is a stock row at or below its notify threshold, joined with
// the owning medication's name for reminder messages.
type LowStockEntry struct {
	MedicationID    uint   `gorm:"column:medication_id" json:"medication_id"`
	MedicationName  string `gorm:"column:medication_name" json:"medication_name"`
	Quantity        int    `gorm:"column:quantity" json:"quantity"`
	NotifyThreshold int    `gorm:"column:notify_threshold" json:"notify_threshold"`
}

// HistoryRow is one dose log joined with its schedule time and medication name.
type HistoryRow struct {
	LogID          uint      `gorm:"column:log_id" json:"log_id"`
	Status         string    `gorm:"column:status" json:"status"`
	TakenAt        time.Time `gorm:"column:taken_at" json:"taken_at"`
	MedicationName string    `gorm:"column:medication_name" json:"medication_name"`
	DosageAmount   int       `gorm:"column:dosage_amount" json:"dosage_amount"`
	DosageUnit     string    `gorm:"column:dosage_unit" json:"dosage_unit"`
	TimeToTake     string    `gorm:"column:time_to_take" json:"time_to_take"`
}
