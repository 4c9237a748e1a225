package api

import (
	"time"

	"github.com/terraincognita07/dosely/internal/db"
	"github.com/terraincognita07/dosely/internal/services"
	"gorm.io/gorm"
)

type Handler struct {
	repos     *db.Repositories
	secretKey []byte
	location  *time.Location

	auth        *services.AuthService
	medications *services.MedicationService
	views       *services.MedicationViewService
	doses       *services.DoseService
	stocks      *services.StockService
	history     *services.HistoryService
	adherence   *services.AdherenceService
	symptoms    *services.SymptomService
	caregivers  *services.CaregiverService
}

func NewHandler(database *gorm.DB, secretKey string, location *time.Location) *Handler {
	if location == nil {
		location = time.Local
	}
	repos := db.NewRepositories(database)

	return &Handler{
		repos:       repos,
		secretKey:   []byte(secretKey),
		location:    location,
		auth:        services.NewAuthService(repos.Users, repos.Caregivers),
		medications: services.NewMedicationService(repos.Medications),
		views:       services.NewMedicationViewService(repos.Medications),
		doses:       services.NewDoseService(repos.DoseLogs),
		stocks:      services.NewStockService(repos.Stocks),
		history:     services.NewHistoryService(repos.DoseLogs, location),
		adherence:   services.NewAdherenceService(repos.DoseLogs),
		symptoms:    services.NewSymptomService(repos.Symptoms),
		caregivers:  services.NewCaregiverService(repos.Caregivers, repos.DoseLogs),
	}
}
