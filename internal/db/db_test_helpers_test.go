package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/terraincognita07/dosely/internal/models"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "dosely-db-test.db")
	database, err := OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return database
}

func seedTestUser(t *testing.T, database *gorm.DB, email string) models.User {
	t.Helper()

	user := models.User{
		Email:        email,
		PasswordHash: "x",
		FirstName:    "Test",
		LastName:     "User",
		InviteCode:   "CODE" + email,
		CreatedAt:    time.Now(),
	}
	if err := database.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

// seedTestMedication creates a medication with one stock row and one schedule
// entry per given time, mirroring what the create endpoint persists.
func seedTestMedication(t *testing.T, database *gorm.DB, userID uint, name string, quantity int, times ...string) (models.Medication, []models.ScheduleEntry) {
	t.Helper()

	repo := NewMedicationRepository(database)
	medication := models.Medication{
		UserID:     userID,
		Name:       name,
		DrugType:   models.DrugTypeOther,
		DosageUnit: "tablet",
		Active:     true,
	}
	stock := models.Stock{Quantity: quantity, NotifyThreshold: 5}

	entries := make([]models.ScheduleEntry, 0, len(times))
	for _, timeToTake := range times {
		entries = append(entries, models.ScheduleEntry{
			TimeToTake:   timeToTake,
			DaysOfWeek:   models.EveryDay,
			DosageAmount: 1,
		})
	}

	if err := repo.CreateWithDependents(&medication, &stock, entries); err != nil {
		t.Fatalf("seed medication: %v", err)
	}
	return medication, entries
}

func countRows(t *testing.T, database *gorm.DB, table string, where string, args ...any) int64 {
	t.Helper()

	var count int64
	query := database.Table(table)
	if where != "" {
		query = query.Where(where, args...)
	}
	if err := query.Count(&count).Error; err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return count
}
