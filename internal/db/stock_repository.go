package db

import (
	"time"

	"github.com/terraincognita07/dosely/internal/models"
	"gorm.io/gorm"
)

type StockRepository struct {
	database *gorm.DB
}

func NewStockRepository(database *gorm.DB) *StockRepository {
	return &StockRepository{database: database}
}

func (repo *StockRepository) FindByMedicationID(medicationID uint) (models.Stock, error) {
	var stock models.Stock
	if err := repo.database.Where("medication_id = ?", medicationID).First(&stock).Error; err != nil {
		return models.Stock{}, err
	}
	return stock, nil
}

func (repo *StockRepository) SetQuantity(medicationID uint, quantity int, notifyThreshold int) error {
	return repo.database.Model(&models.Stock{}).
		Where("medication_id = ?", medicationID).
		Updates(map[string]any{
			"quantity":         quantity,
			"notify_threshold": notifyThreshold,
			"updated_at":       time.Now(),
		}).Error
}

// Decrement clamps the remaining quantity at zero rather than going negative.
// The returned count is the number of stock rows touched; zero means the
// medication has no stock row.
func (repo *StockRepository) Decrement(medicationID uint, amount int) (int64, error) {
	result := repo.database.Exec(`
UPDATE stocks
SET quantity = MAX(quantity - ?, 0), updated_at = ?
WHERE medication_id = ?`, amount, time.Now(), medicationID)
	return result.RowsAffected, result.Error
}

func (repo *StockRepository) ListLowStockForUser(userID uint) ([]models.LowStockEntry, error) {
	entries := make([]models.LowStockEntry, 0)
	err := repo.database.Raw(`
SELECT s.medication_id, m.name AS medication_name, s.quantity, s.notify_threshold
FROM stocks s
JOIN medications m ON m.id = s.medication_id
WHERE m.user_id = ? AND m.active = 1 AND s.quantity <= s.notify_threshold
ORDER BY s.quantity ASC`, userID).Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
