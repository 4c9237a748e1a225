package db

import (
	"errors"
	"time"

	"github.com/terraincognita07/dosely/internal/models"
	"gorm.io/gorm"
)

// ErrStockRowMissing indicates the medication behind a schedule entry has no
// stock row; the enclosing dose-log transaction rolls back.
var ErrStockRowMissing = errors.New("stock row missing for medication")

type DoseLogRepository struct {
	database *gorm.DB
}

func NewDoseLogRepository(database *gorm.DB) *DoseLogRepository {
	return &DoseLogRepository{database: database}
}

func (repo *DoseLogRepository) FindScheduleEntry(scheduleEntryID uint) (models.ScheduleEntry, error) {
	var entry models.ScheduleEntry
	if err := repo.database.First(&entry, scheduleEntryID).Error; err != nil {
		return models.ScheduleEntry{}, err
	}
	return entry, nil
}

// CreateWithStockDecrement appends the dose log and, for a taken dose,
// decrements the medication's stock by the entry's per-dose amount, clamping
// at zero. Both writes happen in one transaction: a failed decrement rolls
// back the log insert.
func (repo *DoseLogRepository) CreateWithStockDecrement(logEntry *models.DoseLogEntry) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		var scheduleEntry models.ScheduleEntry
		if err := tx.First(&scheduleEntry, logEntry.ScheduleEntryID).Error; err != nil {
			return err
		}

		if err := tx.Create(logEntry).Error; err != nil {
			return err
		}

		if logEntry.Status != models.DoseStatusTaken {
			return nil
		}

		affected, err := NewStockRepository(tx).Decrement(scheduleEntry.MedicationID, scheduleEntry.DosageAmount)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrStockRowMissing
		}
		return nil
	})
}

// ListHistoryRows returns the patient's dose logs joined with medication
// names, newest first.
func (repo *DoseLogRepository) ListHistoryRows(userID uint) ([]models.HistoryRow, error) {
	rows := make([]models.HistoryRow, 0)
	err := repo.database.Raw(`
SELECT
  dl.id AS log_id, dl.status, dl.taken_at,
  m.name AS medication_name, m.dosage_unit,
  sch.dosage_amount, sch.time_to_take
FROM dose_log_entries dl
JOIN schedule_entries sch ON sch.id = dl.schedule_entry_id
JOIN medications m ON m.id = sch.medication_id
WHERE m.user_id = ?
ORDER BY dl.taken_at DESC, dl.id DESC`, userID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListHistoryRowsInRange returns the patient's dose logs inside [from, to).
func (repo *DoseLogRepository) ListHistoryRowsInRange(userID uint, from time.Time, to time.Time) ([]models.HistoryRow, error) {
	rows := make([]models.HistoryRow, 0)
	err := repo.database.Raw(`
SELECT
  dl.id AS log_id, dl.status, dl.taken_at,
  m.name AS medication_name, m.dosage_unit,
  sch.dosage_amount, sch.time_to_take
FROM dose_log_entries dl
JOIN schedule_entries sch ON sch.id = dl.schedule_entry_id
JOIN medications m ON m.id = sch.medication_id
WHERE m.user_id = ? AND dl.taken_at >= ? AND dl.taken_at < ?
ORDER BY dl.taken_at DESC, dl.id DESC`, userID, from, to).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
