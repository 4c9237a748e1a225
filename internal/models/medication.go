package models

import "time"

const (
	IntakeBeforeMeal   = "before_meal"
	IntakeAfterMeal    = "after_meal"
	IntakeBedtime      = "bedtime"
	IntakeEmptyStomach = "empty_stomach"
	IntakeAsNeeded     = "as_needed"
)

const (
	DrugTypeTablet   = "tablet"
	DrugTypeCapsule  = "capsule"
	DrugTypeLiquid   = "liquid"
	DrugTypeInjected = "injected"
	DrugTypeTopical  = "topical"
	DrugTypeOther    = "other"
)

// DefaultDiseaseGroup is the catch-all bucket label used when a medication
// carries no disease group tag.
const DefaultDiseaseGroup = "uncategorized"

type Medication struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"not null;index" json:"user_id"`
	Name         string     `gorm:"not null" json:"name"`
	DiseaseGroup string     `json:"disease_group"`
	DrugType     string     `gorm:"not null;default:other" json:"drug_type"`
	DosageUnit   string     `json:"dosage_unit"`
	Instruction  string     `json:"instruction"`
	IntakeTiming string     `json:"intake_timing"`
	ImageURL     string     `json:"image_url"`
	StartDate    *time.Time `gorm:"type:date" json:"start_date"`
	EndDate      *time.Time `gorm:"type:date" json:"end_date"`
	Active       bool       `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
