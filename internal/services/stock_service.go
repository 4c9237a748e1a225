package services

import (
	"errors"

	"github.com/terraincognita07/dosely/internal/models"
	"gorm.io/gorm"
)

var ErrStockNotFound = errors.New("stock not found")

type StockStore interface {
	FindByMedicationID(medicationID uint) (models.Stock, error)
	SetQuantity(medicationID uint, quantity int, notifyThreshold int) error
}

type StockService struct {
	stocks StockStore
}

func NewStockService(stocks StockStore) *StockService {
	return &StockService{stocks: stocks}
}

func (service *StockService) GetStock(medicationID uint) (models.Stock, error) {
	stock, err := service.stocks.FindByMedicationID(medicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Stock{}, ErrStockNotFound
		}
		return models.Stock{}, err
	}
	return stock, nil
}

// SetQuantity overwrites the remaining quantity and warning threshold.
// Negative quantities clamp to zero so the edit path and the decrement path
// agree on the stored invariant.
func (service *StockService) SetQuantity(medicationID uint, quantity int, notifyThreshold int) error {
	if quantity < 0 {
		quantity = 0
	}
	return service.stocks.SetQuantity(medicationID, quantity, notifyThreshold)
}
