package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/dosely/internal/models"
)

var ErrSymptomNameRequired = errors.New("symptom name is required")

const (
	symptomSeverityMin = 1
	symptomSeverityMax = 5
)

type SymptomLogStore interface {
	Create(symptom *models.SymptomLog) error
	ListByUser(userID uint) ([]models.SymptomLog, error)
}

type SymptomService struct {
	logs SymptomLogStore
	now  func() time.Time
}

func NewSymptomService(logs SymptomLogStore) *SymptomService {
	return &SymptomService{logs: logs, now: time.Now}
}

func (service *SymptomService) RecordSymptom(userID uint, name string, description string, severity int) (models.SymptomLog, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.SymptomLog{}, ErrSymptomNameRequired
	}
	if severity < symptomSeverityMin {
		severity = symptomSeverityMin
	}
	if severity > symptomSeverityMax {
		severity = symptomSeverityMax
	}

	symptom := models.SymptomLog{
		UserID:      userID,
		Name:        name,
		Description: strings.TrimSpace(description),
		Severity:    severity,
		LoggedAt:    service.now(),
	}
	if err := service.logs.Create(&symptom); err != nil {
		return models.SymptomLog{}, err
	}
	return symptom, nil
}

func (service *SymptomService) ListSymptoms(userID uint) ([]models.SymptomLog, error) {
	return service.logs.ListByUser(userID)
}
