package db

import "gorm.io/gorm"

type Repositories struct {
	Users       *UserRepository
	Caregivers  *CaregiverRepository
	Medications *MedicationRepository
	DoseLogs    *DoseLogRepository
	Stocks      *StockRepository
	Symptoms    *SymptomLogRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(database),
		Caregivers:  NewCaregiverRepository(database),
		Medications: NewMedicationRepository(database),
		DoseLogs:    NewDoseLogRepository(database),
		Stocks:      NewStockRepository(database),
		Symptoms:    NewSymptomLogRepository(database),
	}
}
