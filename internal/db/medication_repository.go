package db

import (
	"time"

	"github.com/terraincognita07/dosely/internal/models"
	"gorm.io/gorm"
)

type MedicationRepository struct {
	database *gorm.DB
}

func NewMedicationRepository(database *gorm.DB) *MedicationRepository {
	return &MedicationRepository{database: database}
}

func (repo *MedicationRepository) FindByID(medicationID uint) (models.Medication, error) {
	var medication models.Medication
	if err := repo.database.First(&medication, medicationID).Error; err != nil {
		return models.Medication{}, err
	}
	return medication, nil
}

// CreateWithDependents inserts the medication, its stock row, and its schedule
// entries in one transaction. Partial state (medication without stock, stock
// without schedule) never becomes visible.
func (repo *MedicationRepository) CreateWithDependents(medication *models.Medication, stock *models.Stock, entries []models.ScheduleEntry) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(medication).Error; err != nil {
			return err
		}

		stock.MedicationID = medication.ID
		if err := tx.Create(stock).Error; err != nil {
			return err
		}

		for index := range entries {
			entries[index].MedicationID = medication.ID
			if err := tx.Create(&entries[index]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateWithDependents saves the medication fields, overwrites the stock row,
// and fully replaces the schedule entries (delete-all, re-insert). Callers
// supply the complete desired set of times; any externally registered
// reminders must be rebuilt by the caller afterwards.
func (repo *MedicationRepository) UpdateWithDependents(medication *models.Medication, quantity int, notifyThreshold int, entries []models.ScheduleEntry) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(medication).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Stock{}).
			Where("medication_id = ?", medication.ID).
			Updates(map[string]any{
				"quantity":         quantity,
				"notify_threshold": notifyThreshold,
				"updated_at":       time.Now(),
			}).Error; err != nil {
			return err
		}

		if err := tx.Where("medication_id = ?", medication.ID).Delete(&models.ScheduleEntry{}).Error; err != nil {
			return err
		}
		for index := range entries {
			entries[index].ID = 0
			entries[index].MedicationID = medication.ID
			if err := tx.Create(&entries[index]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteCascade removes everything hanging off the medication: dose logs
// referencing its schedule, then the schedule, the stock row, and finally the
// medication record itself.
func (repo *MedicationRepository) DeleteCascade(medicationID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`
DELETE FROM dose_log_entries
WHERE schedule_entry_id IN (SELECT id FROM schedule_entries WHERE medication_id = ?)`, medicationID).Error; err != nil {
			return err
		}
		if err := tx.Where("medication_id = ?", medicationID).Delete(&models.ScheduleEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("medication_id = ?", medicationID).Delete(&models.Stock{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Medication{}, medicationID).Error
	})
}

// ListJoinedRows returns the raw Medication × Stock × ScheduleEntry join for a
// patient, in insertion order. Rows are not deduplicated here; the view layer
// owns that.
func (repo *MedicationRepository) ListJoinedRows(userID uint, includeInactive bool) ([]models.MedicationRow, error) {
	query := `
SELECT
  m.id AS medication_id, m.name, m.disease_group, m.drug_type, m.dosage_unit,
  m.instruction, m.intake_timing, m.image_url, m.active,
  s.quantity, s.notify_threshold,
  sch.id AS schedule_entry_id, sch.time_to_take, sch.days_of_week, sch.dosage_amount
FROM medications m
JOIN stocks s ON s.medication_id = m.id
LEFT JOIN schedule_entries sch ON sch.medication_id = m.id
WHERE m.user_id = ?`
	if !includeInactive {
		query += ` AND m.active = 1`
	}
	query += ` ORDER BY m.id ASC, sch.id ASC`

	rows := make([]models.MedicationRow, 0)
	if err := repo.database.Raw(query, userID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// SetActive flips the soft visibility flag without touching stock, schedule,
// or history.
func (repo *MedicationRepository) SetActive(medicationID uint, active bool) error {
	return repo.database.Model(&models.Medication{}).
		Where("id = ?", medicationID).
		Update("active", active).Error
}

func (repo *MedicationRepository) ListDiseaseGroups(userID uint) ([]string, error) {
	groups := make([]string, 0)
	err := repo.database.Raw(`
SELECT DISTINCT disease_group
FROM medications
WHERE user_id = ? AND disease_group <> ''
ORDER BY disease_group ASC`, userID).Scan(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}
