package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/dosely/internal/db"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "dosely-api-test.db")
	database, err := db.OpenSQLite(databasePath)
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

	handler := NewHandler(database, "test-secret-key", time.UTC)
	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, database
}

func itoa(value uint) string {
	return strconv.FormatUint(uint64(value), 10)
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, token string, payload any, expectedStatus int) []byte {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("%s %s marshal payload: %v", method, path, err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		request.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("%s %s read body: %v", method, path, err)
	}
	if response.StatusCode != expectedStatus {
		t.Fatalf("%s %s expected status %d, got %d: %s", method, path, expectedStatus, response.StatusCode, responseBody)
	}
	return responseBody
}

func decodeJSON(t *testing.T, raw []byte, target any) {
	t.Helper()
	if err := json.Unmarshal(raw, target); err != nil {
		t.Fatalf("decode response %s: %v", raw, err)
	}
}

func registerTestPatient(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	body := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"email":      email,
		"password":   "patient secret",
		"first_name": "Pat",
		"last_name":  "Doe",
	}, fiber.StatusCreated)

	var response struct {
		Token string `json:"token"`
	}
	decodeJSON(t, body, &response)
	if response.Token == "" {
		t.Fatal("expected a token from registration")
	}
	return response.Token
}

func registerTestCaregiver(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	body := doJSON(t, app, http.MethodPost, "/api/auth/caregiver/register", "", fiber.Map{
		"email":      email,
		"password":   "caregiver secret",
		"first_name": "Cara",
		"last_name":  "Giver",
	}, fiber.StatusCreated)

	var response struct {
		Token string `json:"token"`
	}
	decodeJSON(t, body, &response)
	if response.Token == "" {
		t.Fatal("expected a token from caregiver registration")
	}
	return response.Token
}

func createTestMedication(t *testing.T, app *fiber.App, token string, payload fiber.Map) uint {
	t.Helper()

	body := doJSON(t, app, http.MethodPost, "/api/medications", token, payload, fiber.StatusCreated)
	var response struct {
		ID uint `json:"id"`
	}
	decodeJSON(t, body, &response)
	if response.ID == 0 {
		t.Fatal("expected a medication id")
	}
	return response.ID
}
