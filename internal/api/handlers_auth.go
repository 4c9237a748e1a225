package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/dosely/internal/services"
)

type registerInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileInput struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Password        string `json:"password"`
	ProfileImageURL string `json:"profile_image_url"`
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) RegisterPatient(c *fiber.Ctx) error {
	var input registerInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := handler.auth.RegisterPatient(services.RegisterInput{
		Email:     input.Email,
		Password:  input.Password,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRegistrationInput):
			return apiError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrEmailAlreadyRegistered):
			return apiError(c, fiber.StatusConflict, err.Error())
		default:
			return apiError(c, fiber.StatusInternalServerError, "registration failed")
		}
	}

	token, err := handler.buildToken(user.ID, actorPatient)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "token issue failed")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"token": token, "user": user})
}

func (handler *Handler) LoginPatient(c *fiber.Ctx) error {
	var input loginInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := handler.auth.LoginPatient(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return apiError(c, fiber.StatusUnauthorized, err.Error())
		}
		return apiError(c, fiber.StatusInternalServerError, "login failed")
	}

	token, err := handler.buildToken(user.ID, actorPatient)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "token issue failed")
	}
	return c.JSON(fiber.Map{"token": token, "user": user})
}

func (handler *Handler) RegisterCaregiver(c *fiber.Ctx) error {
	var input registerInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	caregiver, err := handler.auth.RegisterCaregiver(services.RegisterInput{
		Email:     input.Email,
		Password:  input.Password,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRegistrationInput):
			return apiError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrEmailAlreadyRegistered):
			return apiError(c, fiber.StatusConflict, err.Error())
		default:
			return apiError(c, fiber.StatusInternalServerError, "registration failed")
		}
	}

	token, err := handler.buildToken(caregiver.ID, actorCaregiver)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "token issue failed")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"token": token, "caregiver": caregiver})
}

func (handler *Handler) LoginCaregiver(c *fiber.Ctx) error {
	var input loginInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	caregiver, err := handler.auth.LoginCaregiver(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return apiError(c, fiber.StatusUnauthorized, err.Error())
		}
		return apiError(c, fiber.StatusInternalServerError, "login failed")
	}

	token, err := handler.buildToken(caregiver.ID, actorCaregiver)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "token issue failed")
	}
	return c.JSON(fiber.Map{"token": token, "caregiver": caregiver})
}

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	user, err := handler.auth.GetPatient(currentUserID(c))
	if err != nil {
		return apiError(c, fiber.StatusNotFound, "account not found")
	}
	return c.JSON(user)
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	var input profileInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	userID := currentUserID(c)
	if err := handler.auth.UpdatePatientProfile(userID, services.ProfileUpdateInput{
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		Password:        input.Password,
		ProfileImageURL: input.ProfileImageURL,
	}); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "profile update failed")
	}

	user, err := handler.auth.GetPatient(userID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "profile reload failed")
	}
	return c.JSON(user)
}

func (handler *Handler) GetCaregiverProfile(c *fiber.Ctx) error {
	caregiver, err := handler.auth.GetCaregiver(currentCaregiverID(c))
	if err != nil {
		return apiError(c, fiber.StatusNotFound, "account not found")
	}
	return c.JSON(caregiver)
}

func (handler *Handler) UpdateCaregiverProfile(c *fiber.Ctx) error {
	var input profileInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	caregiverID := currentCaregiverID(c)
	if err := handler.auth.UpdateCaregiverProfile(caregiverID, services.ProfileUpdateInput{
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		Password:        input.Password,
		ProfileImageURL: input.ProfileImageURL,
	}); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "profile update failed")
	}

	caregiver, err := handler.auth.GetCaregiver(caregiverID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "profile reload failed")
	}
	return c.JSON(caregiver)
}
