package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/dosely/internal/services"
)

type doseLogPayload struct {
	ScheduleEntryID uint   `json:"schedule_entry_id"`
	Status          string `json:"status"`
}

func (handler *Handler) LogDose(c *fiber.Ctx) error {
	var payload doseLogPayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	entry, err := handler.repos.DoseLogs.FindScheduleEntry(payload.ScheduleEntryID)
	if err != nil {
		return apiError(c, fiber.StatusNotFound, "schedule entry not found")
	}
	if _, err := handler.medicationOwnedBy(entry.MedicationID, currentUserID(c)); err != nil {
		return apiError(c, fiber.StatusNotFound, "schedule entry not found")
	}

	logEntry, err := handler.doses.LogDose(payload.ScheduleEntryID, payload.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDoseStatus):
			return apiError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrScheduleEntryNotFound):
			return apiError(c, fiber.StatusNotFound, err.Error())
		default:
			return apiError(c, fiber.StatusInternalServerError, "failed to log dose")
		}
	}
	return c.Status(fiber.StatusCreated).JSON(logEntry)
}

func (handler *Handler) GetHistory(c *fiber.Ctx) error {
	months, err := handler.history.BuildHistory(currentUserID(c))
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load history")
	}
	return c.JSON(fiber.Map{"months": months})
}

// GetAdherence reports the taken-over-logged percentage for one calendar
// month; it defaults to the current month in the server's location.
func (handler *Handler) GetAdherence(c *fiber.Ctx) error {
	now := time.Now().In(handler.location)
	year := c.QueryInt("year", now.Year())
	month := c.QueryInt("month", int(now.Month()))
	if month < 1 || month > 12 {
		return apiError(c, fiber.StatusBadRequest, "invalid month")
	}

	from, to := services.MonthRange(year, time.Month(month), handler.location)
	percentage, err := handler.adherence.ComputeAdherence(currentUserID(c), from, to)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to compute adherence")
	}
	return c.JSON(fiber.Map{
		"year":       year,
		"month":      month,
		"percentage": percentage,
	})
}
