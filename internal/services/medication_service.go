package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/dosely/internal/models"
	"gorm.io/gorm"
)

var (
	ErrMedicationNameRequired = errors.New("medication name required")
	ErrMedicationNotFound     = errors.New("medication not found")
)

const (
	ScheduleTypeSpecific = "specific"
	ScheduleTypeInterval = "interval"
)

// MedicationInput carries everything needed to create or replace a medication
// together with its stock and schedule. ScheduleType selects how the final
// time list is derived; either way the expanded HH:MM:SS list becomes the
// canonical schedule and is not re-derived afterwards.
type MedicationInput struct {
	Name            string
	DiseaseGroup    string
	DrugType        string
	DosageUnit      string
	Instruction     string
	IntakeTiming    string
	ImageURL        string
	StartDate       *time.Time
	EndDate         *time.Time
	InitialQuantity int
	NotifyThreshold int
	DosageAmount    int
	ScheduleType    string
	Times           []string
	IntervalStart   string
	IntervalHours   int
}

type MedicationStore interface {
	FindByID(medicationID uint) (models.Medication, error)
	CreateWithDependents(medication *models.Medication, stock *models.Stock, entries []models.ScheduleEntry) error
	UpdateWithDependents(medication *models.Medication, quantity int, notifyThreshold int, entries []models.ScheduleEntry) error
	DeleteCascade(medicationID uint) error
	ListDiseaseGroups(userID uint) ([]string, error)
}

type MedicationService struct {
	medications MedicationStore
}

func NewMedicationService(medications MedicationStore) *MedicationService {
	return &MedicationService{medications: medications}
}

// CreateMedication validates the input, expands the schedule times, and
// persists medication, stock, and schedule rows in one transaction. Returns
// the new medication id.
func (service *MedicationService) CreateMedication(userID uint, input MedicationInput) (uint, error) {
	if strings.TrimSpace(input.Name) == "" {
		return 0, ErrMedicationNameRequired
	}

	times, err := expandScheduleTimes(input)
	if err != nil {
		return 0, err
	}

	medication := models.Medication{
		UserID:       userID,
		Name:         strings.TrimSpace(input.Name),
		DiseaseGroup: strings.TrimSpace(input.DiseaseGroup),
		DrugType:     defaultIfEmpty(input.DrugType, models.DrugTypeOther),
		DosageUnit:   input.DosageUnit,
		Instruction:  input.Instruction,
		IntakeTiming: input.IntakeTiming,
		ImageURL:     input.ImageURL,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		Active:       true,
	}
	stock := models.Stock{
		Quantity:        clampNonNegative(input.InitialQuantity),
		NotifyThreshold: input.NotifyThreshold,
	}

	if err := service.medications.CreateWithDependents(&medication, &stock, buildScheduleEntries(times, input.DosageAmount)); err != nil {
		return 0, err
	}
	return medication.ID, nil
}

// UpdateMedication overwrites the medication fields and stock and fully
// replaces the schedule (delete-all, re-insert). Any externally registered
// reminders for the old times must be torn down and rebuilt by the caller.
func (service *MedicationService) UpdateMedication(medicationID uint, input MedicationInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrMedicationNameRequired
	}

	medication, err := service.medications.FindByID(medicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMedicationNotFound
		}
		return err
	}

	times, err := expandScheduleTimes(input)
	if err != nil {
		return err
	}

	medication.Name = strings.TrimSpace(input.Name)
	medication.DiseaseGroup = strings.TrimSpace(input.DiseaseGroup)
	medication.DrugType = defaultIfEmpty(input.DrugType, models.DrugTypeOther)
	medication.DosageUnit = input.DosageUnit
	medication.Instruction = input.Instruction
	medication.IntakeTiming = input.IntakeTiming
	medication.StartDate = input.StartDate
	medication.EndDate = input.EndDate
	if strings.TrimSpace(input.ImageURL) != "" {
		medication.ImageURL = input.ImageURL
	}

	return service.medications.UpdateWithDependents(
		&medication,
		clampNonNegative(input.InitialQuantity),
		input.NotifyThreshold,
		buildScheduleEntries(times, input.DosageAmount),
	)
}

// DeleteMedication cascades: dose logs referencing the schedule, then the
// schedule, the stock row, and the medication record, all in one transaction.
func (service *MedicationService) DeleteMedication(medicationID uint) error {
	if _, err := service.medications.FindByID(medicationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMedicationNotFound
		}
		return err
	}
	return service.medications.DeleteCascade(medicationID)
}

func (service *MedicationService) ListDiseaseGroups(userID uint) ([]string, error) {
	return service.medications.ListDiseaseGroups(userID)
}

func expandScheduleTimes(input MedicationInput) ([]string, error) {
	if input.ScheduleType == ScheduleTypeInterval {
		return GenerateIntervalTimes(input.IntervalStart, input.IntervalHours)
	}
	return GenerateSpecificTimes(input.Times)
}

func buildScheduleEntries(times []string, dosageAmount int) []models.ScheduleEntry {
	if dosageAmount < 1 {
		dosageAmount = 1
	}
	entries := make([]models.ScheduleEntry, 0, len(times))
	for _, timeToTake := range times {
		entries = append(entries, models.ScheduleEntry{
			TimeToTake:   timeToTake,
			DaysOfWeek:   models.EveryDay,
			DosageAmount: dosageAmount,
		})
	}
	return entries
}

func clampNonNegative(value int) int {
	if value < 0 {
		return 0
	}
	return value
}

func defaultIfEmpty(value string, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
