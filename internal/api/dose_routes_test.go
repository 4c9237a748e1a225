package api

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/dosely/internal/models"
)

func TestLogDoseRejectsForeignScheduleEntry(t *testing.T) {
	app, _ := newTestApp(t)
	ownerToken := registerTestPatient(t, app, "owner@example.com")
	otherToken := registerTestPatient(t, app, "other@example.com")

	createTestMedication(t, app, ownerToken, fiber.Map{
		"name":             "Warfarin",
		"schedule_type":    "specific",
		"times":            []string{"18:00"},
		"initial_quantity": 14,
		"dosage_amount":    1,
	})
	var listing medicationListResponse
	decodeJSON(t, doJSON(t, app, http.MethodGet, "/api/medications", ownerToken, nil, fiber.StatusOK), &listing)
	entryID := listing.Groups[0].Items[0].ScheduleEntryID

	doJSON(t, app, http.MethodPost, "/api/doses", otherToken, fiber.Map{
		"schedule_entry_id": entryID,
		"status":            models.DoseStatusTaken,
	}, fiber.StatusNotFound)
}

func TestLogDoseValidation(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerTestPatient(t, app, "validate@example.com")

	doJSON(t, app, http.MethodPost, "/api/doses", token, fiber.Map{
		"schedule_entry_id": 9999,
		"status":            models.DoseStatusTaken,
	}, fiber.StatusNotFound)
}

func TestSymptomRoutes(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerTestPatient(t, app, "symptoms@example.com")

	doJSON(t, app, http.MethodPost, "/api/symptoms", token, fiber.Map{
		"name": "  ",
	}, fiber.StatusBadRequest)

	doJSON(t, app, http.MethodPost, "/api/symptoms", token, fiber.Map{
		"name":        "Headache",
		"description": "dull, behind the eyes",
		"severity":    3,
	}, fiber.StatusCreated)

	var response struct {
		Symptoms []models.SymptomLog `json:"symptoms"`
	}
	decodeJSON(t, doJSON(t, app, http.MethodGet, "/api/symptoms", token, nil, fiber.StatusOK), &response)
	if len(response.Symptoms) != 1 {
		t.Fatalf("expected one symptom, got %d", len(response.Symptoms))
	}
	if response.Symptoms[0].Name != "Headache" {
		t.Fatalf("unexpected symptom name %q", response.Symptoms[0].Name)
	}
}
