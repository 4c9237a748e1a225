package services

import (
	"errors"
	"time"

	"github.com/terraincognita07/dosely/internal/models"
	"gorm.io/gorm"
)

var (
	ErrScheduleEntryNotFound = errors.New("schedule entry not found")
	ErrInvalidDoseStatus     = errors.New("invalid dose status")
)

type DoseLogStore interface {
	CreateWithStockDecrement(logEntry *models.DoseLogEntry) error
}

type DoseService struct {
	logs DoseLogStore
	now  func() time.Time
}

func NewDoseService(logs DoseLogStore) *DoseService {
	return &DoseService{logs: logs, now: time.Now}
}

// LogDose appends an immutable intake record stamped with the current time.
// A taken dose decrements the medication's stock by the entry's per-dose
// amount inside the same transaction; a skipped dose has no stock effect.
//
// Double submission for the same entry within the same minute is accepted
// as-is; at-most-once "mark taken" is the caller's responsibility.
func (service *DoseService) LogDose(scheduleEntryID uint, status string) (models.DoseLogEntry, error) {
	if !models.IsValidDoseStatus(status) {
		return models.DoseLogEntry{}, ErrInvalidDoseStatus
	}

	logEntry := models.DoseLogEntry{
		ScheduleEntryID: scheduleEntryID,
		Status:          status,
		TakenAt:         service.now(),
	}
	if err := service.logs.CreateWithStockDecrement(&logEntry); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.DoseLogEntry{}, ErrScheduleEntryNotFound
		}
		return models.DoseLogEntry{}, err
	}
	return logEntry, nil
}
