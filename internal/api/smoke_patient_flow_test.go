package api

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/dosely/internal/models"
	"github.com/terraincognita07/dosely/internal/services"
)

type medicationListResponse struct {
	Groups []struct {
		Label string                 `json:"label"`
		Items []models.MedicationRow `json:"items"`
	} `json:"groups"`
}

func TestPatientMedicationFlow(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerTestPatient(t, app, "pat@example.com")

	createTestMedication(t, app, token, fiber.Map{
		"name":             "Paracetamol",
		"disease_group":    "pain",
		"dosage_unit":      "tablet",
		"schedule_type":    "specific",
		"times":            []string{"08:00", "08:00", "20:00"},
		"initial_quantity": 30,
		"notify_threshold": 5,
		"dosage_amount":    1,
	})

	var listing medicationListResponse
	decodeJSON(t, doJSON(t, app, http.MethodGet, "/api/medications", token, nil, fiber.StatusOK), &listing)

	if len(listing.Groups) != 2 {
		t.Fatalf("expected two time groups, got %d", len(listing.Groups))
	}
	if listing.Groups[0].Label != "08:00" || listing.Groups[1].Label != "20:00" {
		t.Fatalf("unexpected group labels: %q, %q", listing.Groups[0].Label, listing.Groups[1].Label)
	}
	entryID := listing.Groups[0].Items[0].ScheduleEntryID
	medicationID := listing.Groups[0].Items[0].MedicationID
	if entryID == 0 || medicationID == 0 {
		t.Fatalf("expected join row ids, got %+v", listing.Groups[0].Items[0])
	}

	doJSON(t, app, http.MethodPost, "/api/doses", token, fiber.Map{
		"schedule_entry_id": entryID,
		"status":            models.DoseStatusTaken,
	}, fiber.StatusCreated)

	var stockResponse struct {
		Stock models.Stock `json:"stock"`
		Low   bool         `json:"low"`
	}
	decodeJSON(t, doJSON(t, app, http.MethodGet, "/api/medications/"+itoa(medicationID)+"/stock", token, nil, fiber.StatusOK), &stockResponse)
	if stockResponse.Stock.Quantity != 29 {
		t.Fatalf("expected stock 29 after taken dose, got %d", stockResponse.Stock.Quantity)
	}
	if stockResponse.Low {
		t.Fatal("stock 29 with threshold 5 must not report low")
	}

	var historyResponse struct {
		Months []services.HistoryMonthGroup `json:"months"`
	}
	decodeJSON(t, doJSON(t, app, http.MethodGet, "/api/history", token, nil, fiber.StatusOK), &historyResponse)
	if len(historyResponse.Months) != 1 {
		t.Fatalf("expected one history month, got %d", len(historyResponse.Months))
	}
	day := historyResponse.Months[0].Days[0]
	if day.Taken != 1 || day.Total != 1 {
		t.Fatalf("expected day summary 1/1, got %d/%d", day.Taken, day.Total)
	}

	var adherenceResponse struct {
		Percentage int `json:"percentage"`
	}
	decodeJSON(t, doJSON(t, app, http.MethodGet, "/api/adherence", token, nil, fiber.StatusOK), &adherenceResponse)
	if adherenceResponse.Percentage != 100 {
		t.Fatalf("expected 100%% adherence, got %d", adherenceResponse.Percentage)
	}
}

func TestMedicationViewCollapsesDuplicateReminders(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerTestPatient(t, app, "dup@example.com")

	payload := fiber.Map{
		"name":             "Aspirin",
		"schedule_type":    "specific",
		"times":            []string{"09:00"},
		"initial_quantity": 10,
		"dosage_amount":    1,
	}
	createTestMedication(t, app, token, payload)
	createTestMedication(t, app, token, payload)

	var listing medicationListResponse
	decodeJSON(t, doJSON(t, app, http.MethodGet, "/api/medications", token, nil, fiber.StatusOK), &listing)

	if len(listing.Groups) != 1 {
		t.Fatalf("expected one group, got %d", len(listing.Groups))
	}
	if len(listing.Groups[0].Items) != 1 {
		t.Fatalf("expected duplicate reminders collapsed to one item, got %d", len(listing.Groups[0].Items))
	}
}

func TestMedicationActiveToggleHidesFromDefaultView(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerTestPatient(t, app, "toggle@example.com")

	medicationID := createTestMedication(t, app, token, fiber.Map{
		"name":             "Ibuprofen",
		"schedule_type":    "specific",
		"times":            []string{"12:00"},
		"initial_quantity": 20,
		"dosage_amount":    1,
	})

	doJSON(t, app, http.MethodPatch, "/api/medications/"+itoa(medicationID)+"/active", token, fiber.Map{"active": false}, fiber.StatusOK)

	var listing medicationListResponse
	decodeJSON(t, doJSON(t, app, http.MethodGet, "/api/medications", token, nil, fiber.StatusOK), &listing)
	if len(listing.Groups) != 0 {
		t.Fatalf("expected hidden medication to vanish from default view, got %d groups", len(listing.Groups))
	}

	decodeJSON(t, doJSON(t, app, http.MethodGet, "/api/medications?include_inactive=1", token, nil, fiber.StatusOK), &listing)
	if len(listing.Groups) != 1 {
		t.Fatalf("expected hidden medication in inclusive view, got %d groups", len(listing.Groups))
	}
}

func TestDeleteMedicationCascades(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerTestPatient(t, app, "cascade@example.com")

	medicationID := createTestMedication(t, app, token, fiber.Map{
		"name":             "Metformin",
		"schedule_type":    "specific",
		"times":            []string{"07:30"},
		"initial_quantity": 60,
		"dosage_amount":    2,
	})

	var listing medicationListResponse
	decodeJSON(t, doJSON(t, app, http.MethodGet, "/api/medications", token, nil, fiber.StatusOK), &listing)
	entryID := listing.Groups[0].Items[0].ScheduleEntryID

	doJSON(t, app, http.MethodPost, "/api/doses", token, fiber.Map{
		"schedule_entry_id": entryID,
		"status":            models.DoseStatusTaken,
	}, fiber.StatusCreated)

	doJSON(t, app, http.MethodDelete, "/api/medications/"+itoa(medicationID), token, nil, fiber.StatusOK)

	decodeJSON(t, doJSON(t, app, http.MethodGet, "/api/medications?include_inactive=1", token, nil, fiber.StatusOK), &listing)
	if len(listing.Groups) != 0 {
		t.Fatalf("expected no medications after cascade delete, got %d groups", len(listing.Groups))
	}

	var historyResponse struct {
		Months []services.HistoryMonthGroup `json:"months"`
	}
	decodeJSON(t, doJSON(t, app, http.MethodGet, "/api/history", token, nil, fiber.StatusOK), &historyResponse)
	if len(historyResponse.Months) != 0 {
		t.Fatalf("expected dose logs removed by cascade, got %d months", len(historyResponse.Months))
	}
}
