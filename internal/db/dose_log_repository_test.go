package db

import (
	"errors"
	"testing"
	"time"

	"github.com/terraincognita07/dosely/internal/models"
	"gorm.io/gorm"
)

func TestCreateWithStockDecrementTakenDose(t *testing.T) {
	database := openTestDB(t)
	user := seedTestUser(t, database, "dose@example.com")
	medication, entries := seedTestMedication(t, database, user.ID, "Paracetamol", 30, "08:00:00")

	repo := NewDoseLogRepository(database)
	logEntry := models.DoseLogEntry{
		ScheduleEntryID: entries[0].ID,
		Status:          models.DoseStatusTaken,
		TakenAt:         time.Now(),
	}
	if err := repo.CreateWithStockDecrement(&logEntry); err != nil {
		t.Fatalf("CreateWithStockDecrement() unexpected error: %v", err)
	}
	if logEntry.ID == 0 {
		t.Fatal("expected persisted log id")
	}

	stock, err := NewStockRepository(database).FindByMedicationID(medication.ID)
	if err != nil {
		t.Fatalf("load stock: %v", err)
	}
	if stock.Quantity != 29 {
		t.Fatalf("expected stock 29 after taken dose, got %d", stock.Quantity)
	}
}

func TestCreateWithStockDecrementSkippedDoseKeepsStock(t *testing.T) {
	database := openTestDB(t)
	user := seedTestUser(t, database, "skip@example.com")
	medication, entries := seedTestMedication(t, database, user.ID, "Ibuprofen", 12, "12:00:00")

	repo := NewDoseLogRepository(database)
	logEntry := models.DoseLogEntry{
		ScheduleEntryID: entries[0].ID,
		Status:          models.DoseStatusSkipped,
		TakenAt:         time.Now(),
	}
	if err := repo.CreateWithStockDecrement(&logEntry); err != nil {
		t.Fatalf("CreateWithStockDecrement() unexpected error: %v", err)
	}

	stock, err := NewStockRepository(database).FindByMedicationID(medication.ID)
	if err != nil {
		t.Fatalf("load stock: %v", err)
	}
	if stock.Quantity != 12 {
		t.Fatalf("expected stock unchanged at 12, got %d", stock.Quantity)
	}
}

func TestStockDecrementClampsAtZero(t *testing.T) {
	database := openTestDB(t)
	user := seedTestUser(t, database, "clamp@example.com")
	medication, entries := seedTestMedication(t, database, user.ID, "Vitamin D", 1, "09:00:00")

	repo := NewDoseLogRepository(database)
	for i := 0; i < 3; i++ {
		logEntry := models.DoseLogEntry{
			ScheduleEntryID: entries[0].ID,
			Status:          models.DoseStatusTaken,
			TakenAt:         time.Now(),
		}
		if err := repo.CreateWithStockDecrement(&logEntry); err != nil {
			t.Fatalf("dose %d: %v", i, err)
		}
	}

	stock, err := NewStockRepository(database).FindByMedicationID(medication.ID)
	if err != nil {
		t.Fatalf("load stock: %v", err)
	}
	if stock.Quantity != 0 {
		t.Fatalf("expected stock clamped at 0, got %d", stock.Quantity)
	}
}

func TestCreateWithStockDecrementMissingEntry(t *testing.T) {
	database := openTestDB(t)

	repo := NewDoseLogRepository(database)
	logEntry := models.DoseLogEntry{ScheduleEntryID: 404, Status: models.DoseStatusTaken, TakenAt: time.Now()}
	if err := repo.CreateWithStockDecrement(&logEntry); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected gorm.ErrRecordNotFound, got %v", err)
	}
}

func TestCreateWithStockDecrementRollsBackWithoutStockRow(t *testing.T) {
	database := openTestDB(t)
	user := seedTestUser(t, database, "rollback@example.com")
	medication, entries := seedTestMedication(t, database, user.ID, "Orphaned", 5, "10:00:00")

	if err := database.Where("medication_id = ?", medication.ID).Delete(&models.Stock{}).Error; err != nil {
		t.Fatalf("remove stock row: %v", err)
	}

	repo := NewDoseLogRepository(database)
	logEntry := models.DoseLogEntry{
		ScheduleEntryID: entries[0].ID,
		Status:          models.DoseStatusTaken,
		TakenAt:         time.Now(),
	}
	if err := repo.CreateWithStockDecrement(&logEntry); !errors.Is(err, ErrStockRowMissing) {
		t.Fatalf("expected ErrStockRowMissing, got %v", err)
	}

	if logs := countRows(t, database, "dose_log_entries", "schedule_entry_id = ?", entries[0].ID); logs != 0 {
		t.Fatalf("expected log insert rolled back, found %d rows", logs)
	}
}
