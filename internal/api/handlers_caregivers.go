package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/dosely/internal/services"
)

type caregiverInvitePayload struct {
	Email string `json:"email"`
}

type patientLinkPayload struct {
	InviteCode string `json:"invite_code"`
}

func (handler *Handler) InviteCaregiver(c *fiber.Ctx) error {
	var payload caregiverInvitePayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	caring, err := handler.caregivers.InviteCaregiverByEmail(currentUserID(c), payload.Email)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCaregiverNotFound):
			return apiError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrCaringAlreadyExists):
			return apiError(c, fiber.StatusConflict, err.Error())
		default:
			return apiError(c, fiber.StatusInternalServerError, "failed to invite caregiver")
		}
	}
	return c.Status(fiber.StatusCreated).JSON(caring)
}

func (handler *Handler) ListCaregivers(c *fiber.Ctx) error {
	caregivers, err := handler.caregivers.ListCaregivers(currentUserID(c))
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load caregivers")
	}
	return c.JSON(fiber.Map{"caregivers": caregivers})
}

func (handler *Handler) RevokeCaring(c *fiber.Ctx) error {
	caringID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid caring id")
	}

	caring, err := handler.repos.Caregivers.FindCaringByID(caringID)
	if err != nil || caring.UserID != currentUserID(c) {
		return apiError(c, fiber.StatusNotFound, "caring link not found")
	}

	if err := handler.caregivers.RevokeCaring(caringID); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to revoke caregiver")
	}
	return c.JSON(fiber.Map{"status": "revoked"})
}

func (handler *Handler) LinkPatient(c *fiber.Ctx) error {
	var payload patientLinkPayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	caring, err := handler.caregivers.LinkPatientByInviteCode(currentCaregiverID(c), payload.InviteCode)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPatientNotFound):
			return apiError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrCaringAlreadyExists):
			return apiError(c, fiber.StatusConflict, err.Error())
		default:
			return apiError(c, fiber.StatusInternalServerError, "failed to link patient")
		}
	}
	return c.Status(fiber.StatusCreated).JSON(caring)
}

func (handler *Handler) ListPatients(c *fiber.Ctx) error {
	patients, err := handler.caregivers.ListPatients(currentCaregiverID(c))
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load patients")
	}
	return c.JSON(fiber.Map{"patients": patients})
}

func (handler *Handler) GetPatientDashboard(c *fiber.Ctx) error {
	patientID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid patient id")
	}

	dashboard, err := handler.caregivers.BuildPatientDashboard(currentCaregiverID(c), patientID)
	if err != nil {
		if errors.Is(err, services.ErrCaringNotAllowed) {
			return apiError(c, fiber.StatusForbidden, err.Error())
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to load dashboard")
	}
	return c.JSON(dashboard)
}
