package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/dosely/internal/services"
)

type symptomPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Severity    int    `json:"severity"`
}

func (handler *Handler) CreateSymptom(c *fiber.Ctx) error {
	var payload symptomPayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	symptom, err := handler.symptoms.RecordSymptom(currentUserID(c), payload.Name, payload.Description, payload.Severity)
	if err != nil {
		if errors.Is(err, services.ErrSymptomNameRequired) {
			return apiError(c, fiber.StatusBadRequest, err.Error())
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to record symptom")
	}
	return c.Status(fiber.StatusCreated).JSON(symptom)
}

func (handler *Handler) ListSymptoms(c *fiber.Ctx) error {
	symptoms, err := handler.symptoms.ListSymptoms(currentUserID(c))
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load symptoms")
	}
	return c.JSON(fiber.Map{"symptoms": symptoms})
}
