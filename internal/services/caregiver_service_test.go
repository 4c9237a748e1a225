package services

import (
	"errors"
	"testing"
	"time"

	"github.com/terraincognita07/dosely/internal/models"
	"gorm.io/gorm"
)

type stubCaringStore struct {
	caregiversByEmail map[string]models.Caregiver
	patientsByCode    map[string]models.User
	existingPairs     map[[2]uint]bool
	created           *models.Caring
	deletedCaringID   uint
}

func (stub *stubCaringStore) FindCaregiverByNormalizedEmail(email string) (models.Caregiver, error) {
	caregiver, ok := stub.caregiversByEmail[email]
	if !ok {
		return models.Caregiver{}, gorm.ErrRecordNotFound
	}
	return caregiver, nil
}

func (stub *stubCaringStore) FindPatientByInviteCode(code string) (models.User, error) {
	patient, ok := stub.patientsByCode[code]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return patient, nil
}

func (stub *stubCaringStore) CaringExists(userID uint, caregiverID uint) (bool, error) {
	return stub.existingPairs[[2]uint{userID, caregiverID}], nil
}

func (stub *stubCaringStore) CreateCaring(caring *models.Caring) error {
	caring.ID = 11
	stub.created = caring
	return nil
}

func (stub *stubCaringStore) DeleteCaring(caringID uint) error {
	stub.deletedCaringID = caringID
	return nil
}

func (stub *stubCaringStore) ListCaregiversForUser(uint) ([]models.CaregiverSummary, error) {
	return nil, nil
}

func (stub *stubCaringStore) ListPatientsForCaregiver(uint) ([]models.User, error) {
	return nil, nil
}

type stubDashboardLogReader struct {
	rowsByRange map[string][]models.HistoryRow
}

func (stub *stubDashboardLogReader) ListHistoryRows(uint) ([]models.HistoryRow, error) {
	return nil, nil
}

func (stub *stubDashboardLogReader) ListHistoryRowsInRange(_ uint, from time.Time, to time.Time) ([]models.HistoryRow, error) {
	return stub.rowsByRange[from.Format("2006-01-02")+"/"+to.Format("2006-01-02")], nil
}

func TestInviteCaregiverByEmail(t *testing.T) {
	store := &stubCaringStore{
		caregiversByEmail: map[string]models.Caregiver{"carl@example.com": {ID: 4}},
		existingPairs:     map[[2]uint]bool{},
	}
	service := NewCaregiverService(store, &stubDashboardLogReader{})

	caring, err := service.InviteCaregiverByEmail(1, " Carl@Example.com ")
	if err != nil {
		t.Fatalf("InviteCaregiverByEmail() unexpected error: %v", err)
	}
	if caring.UserID != 1 || caring.CaregiverID != 4 {
		t.Fatalf("unexpected caring pair: %+v", caring)
	}
	if caring.Status != models.CaringStatusActive {
		t.Fatalf("expected active status, got %q", caring.Status)
	}
}

func TestInviteCaregiverUnknownEmail(t *testing.T) {
	service := NewCaregiverService(&stubCaringStore{caregiversByEmail: map[string]models.Caregiver{}}, &stubDashboardLogReader{})

	if _, err := service.InviteCaregiverByEmail(1, "nobody@example.com"); !errors.Is(err, ErrCaregiverNotFound) {
		t.Fatalf("expected ErrCaregiverNotFound, got %v", err)
	}
}

func TestLinkPatientByInviteCode(t *testing.T) {
	store := &stubCaringStore{
		patientsByCode: map[string]models.User{"XK7Q2M9P": {ID: 6}},
		existingPairs:  map[[2]uint]bool{},
	}
	service := NewCaregiverService(store, &stubDashboardLogReader{})

	caring, err := service.LinkPatientByInviteCode(4, "XK7Q2M9P")
	if err != nil {
		t.Fatalf("LinkPatientByInviteCode() unexpected error: %v", err)
	}
	if caring.UserID != 6 || caring.CaregiverID != 4 {
		t.Fatalf("unexpected caring pair: %+v", caring)
	}
}

func TestLinkPatientRejectsDuplicatePair(t *testing.T) {
	store := &stubCaringStore{
		patientsByCode: map[string]models.User{"XK7Q2M9P": {ID: 6}},
		existingPairs:  map[[2]uint]bool{{6, 4}: true},
	}
	service := NewCaregiverService(store, &stubDashboardLogReader{})

	if _, err := service.LinkPatientByInviteCode(4, "XK7Q2M9P"); !errors.Is(err, ErrCaringAlreadyExists) {
		t.Fatalf("expected ErrCaringAlreadyExists, got %v", err)
	}
}

func TestBuildPatientDashboard(t *testing.T) {
	now := time.Date(2026, 4, 15, 10, 0, 0, 0, time.UTC)
	logs := &stubDashboardLogReader{rowsByRange: map[string][]models.HistoryRow{
		"2026-04-15/2026-04-16": {
			{LogID: 1, Status: models.DoseStatusTaken, TakenAt: now, TimeToTake: "10:00:00", MedicationName: "Paracetamol"},
			{LogID: 2, Status: models.DoseStatusSkipped, TakenAt: now, TimeToTake: "08:00:00", MedicationName: "Ibuprofen"},
		},
		"2026-04-01/2026-05-01": {
			{Status: models.DoseStatusTaken}, {Status: models.DoseStatusTaken}, {Status: models.DoseStatusTaken}, {Status: models.DoseStatusSkipped},
		},
	}}
	store := &stubCaringStore{existingPairs: map[[2]uint]bool{{6, 4}: true}}
	service := NewCaregiverService(store, logs)
	service.now = func() time.Time { return now }

	dashboard, err := service.BuildPatientDashboard(4, 6)
	if err != nil {
		t.Fatalf("BuildPatientDashboard() unexpected error: %v", err)
	}
	if dashboard.TotalToday != 2 || dashboard.TakenToday != 1 {
		t.Fatalf("unexpected today counters: %+v", dashboard)
	}
	if dashboard.AdherencePercentage != 75 {
		t.Fatalf("expected 75%% adherence, got %d", dashboard.AdherencePercentage)
	}
	if dashboard.TodayLogs[0].Outcome != DoseOutcomeOnTime {
		t.Fatalf("expected on-time outcome, got %q", dashboard.TodayLogs[0].Outcome)
	}
	if dashboard.TodayLogs[1].Outcome != DoseOutcomeSkipped {
		t.Fatalf("expected skipped outcome, got %q", dashboard.TodayLogs[1].Outcome)
	}
}

func TestBuildPatientDashboardRequiresLink(t *testing.T) {
	service := NewCaregiverService(&stubCaringStore{existingPairs: map[[2]uint]bool{}}, &stubDashboardLogReader{})

	if _, err := service.BuildPatientDashboard(4, 6); !errors.Is(err, ErrCaringNotAllowed) {
		t.Fatalf("expected ErrCaringNotAllowed, got %v", err)
	}
}
