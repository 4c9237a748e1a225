package services

import (
	"errors"
	"time"

	"github.com/terraincognita07/dosely/internal/models"
	"gorm.io/gorm"
)

var (
	ErrCaregiverNotFound   = errors.New("caregiver not found")
	ErrPatientNotFound     = errors.New("patient not found")
	ErrCaringAlreadyExists = errors.New("caregiver is already linked to this patient")
	ErrCaringNotAllowed    = errors.New("caregiver is not linked to this patient")
)

type CaringStore interface {
	FindCaregiverByNormalizedEmail(email string) (models.Caregiver, error)
	FindPatientByInviteCode(code string) (models.User, error)
	CaringExists(userID uint, caregiverID uint) (bool, error)
	CreateCaring(caring *models.Caring) error
	DeleteCaring(caringID uint) error
	ListCaregiversForUser(userID uint) ([]models.CaregiverSummary, error)
	ListPatientsForCaregiver(caregiverID uint) ([]models.User, error)
}

type CaregiverService struct {
	store CaringStore
	logs  HistoryLogReader
	now   func() time.Time
}

func NewCaregiverService(store CaringStore, logs HistoryLogReader) *CaregiverService {
	return &CaregiverService{store: store, logs: logs, now: time.Now}
}

// InviteCaregiverByEmail links an already registered caregiver account to the
// patient. The caregiver must accept nothing; the patient grants access.
func (service *CaregiverService) InviteCaregiverByEmail(userID uint, email string) (models.Caring, error) {
	caregiver, err := service.store.FindCaregiverByNormalizedEmail(NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Caring{}, ErrCaregiverNotFound
		}
		return models.Caring{}, err
	}
	return service.createCaring(userID, caregiver.ID)
}

// LinkPatientByInviteCode is the caregiver-initiated path: the patient shares
// the invite code from their profile out of band.
func (service *CaregiverService) LinkPatientByInviteCode(caregiverID uint, inviteCode string) (models.Caring, error) {
	patient, err := service.store.FindPatientByInviteCode(inviteCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Caring{}, ErrPatientNotFound
		}
		return models.Caring{}, err
	}
	return service.createCaring(patient.ID, caregiverID)
}

func (service *CaregiverService) createCaring(userID uint, caregiverID uint) (models.Caring, error) {
	exists, err := service.store.CaringExists(userID, caregiverID)
	if err != nil {
		return models.Caring{}, err
	}
	if exists {
		return models.Caring{}, ErrCaringAlreadyExists
	}

	caring := models.Caring{
		UserID:      userID,
		CaregiverID: caregiverID,
		Status:      models.CaringStatusActive,
		GrantedAt:   service.now(),
	}
	if err := service.store.CreateCaring(&caring); err != nil {
		return models.Caring{}, err
	}
	return caring, nil
}

func (service *CaregiverService) ListCaregivers(userID uint) ([]models.CaregiverSummary, error) {
	return service.store.ListCaregiversForUser(userID)
}

func (service *CaregiverService) RevokeCaring(caringID uint) error {
	return service.store.DeleteCaring(caringID)
}

func (service *CaregiverService) ListPatients(caregiverID uint) ([]models.User, error) {
	return service.store.ListPatientsForCaregiver(caregiverID)
}

// PatientDashboard is what a caregiver sees for one linked patient: today's
// dose activity and the adherence percentage for the current month.
type PatientDashboard struct {
	TodayLogs           []HistoryItem `json:"today_logs"`
	TakenToday          int           `json:"taken_today"`
	TotalToday          int           `json:"total_today"`
	AdherencePercentage int           `json:"adherence_percentage"`
}

func (service *CaregiverService) BuildPatientDashboard(caregiverID uint, userID uint) (PatientDashboard, error) {
	linked, err := service.store.CaringExists(userID, caregiverID)
	if err != nil {
		return PatientDashboard{}, err
	}
	if !linked {
		return PatientDashboard{}, ErrCaringNotAllowed
	}

	now := service.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayRows, err := service.logs.ListHistoryRowsInRange(userID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return PatientDashboard{}, err
	}

	dashboard := PatientDashboard{TodayLogs: make([]HistoryItem, 0, len(todayRows))}
	for _, row := range todayRows {
		outcome := ClassifyDose(row.Status, row.TimeToTake, row.TakenAt)
		dashboard.TodayLogs = append(dashboard.TodayLogs, HistoryItem{HistoryRow: row, Outcome: outcome})
		dashboard.TotalToday++
		if row.Status == models.DoseStatusTaken {
			dashboard.TakenToday++
		}
	}

	monthStart, monthEnd := MonthRange(now.Year(), now.Month(), now.Location())
	monthRows, err := service.logs.ListHistoryRowsInRange(userID, monthStart, monthEnd)
	if err != nil {
		return PatientDashboard{}, err
	}
	taken := 0
	for _, row := range monthRows {
		if row.Status == models.DoseStatusTaken {
			taken++
		}
	}
	dashboard.AdherencePercentage = AdherencePercentage(taken, len(monthRows))

	return dashboard, nil
}
