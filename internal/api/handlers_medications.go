package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/dosely/internal/models"
	"github.com/terraincognita07/dosely/internal/services"
	"gorm.io/gorm"
)

type medicationPayload struct {
	Name            string   `json:"name"`
	DiseaseGroup    string   `json:"disease_group"`
	DrugType        string   `json:"drug_type"`
	DosageUnit      string   `json:"dosage_unit"`
	Instruction     string   `json:"instruction"`
	IntakeTiming    string   `json:"intake_timing"`
	ImageURL        string   `json:"image_url"`
	StartDate       string   `json:"start_date"`
	EndDate         string   `json:"end_date"`
	InitialQuantity int      `json:"initial_quantity"`
	NotifyThreshold int      `json:"notify_threshold"`
	DosageAmount    int      `json:"dosage_amount"`
	ScheduleType    string   `json:"schedule_type"`
	Times           []string `json:"times"`
	IntervalStart   string   `json:"interval_start"`
	IntervalHours   int      `json:"interval_hours"`
}

type activePayload struct {
	Active bool `json:"active"`
}

type stockPayload struct {
	Quantity        int `json:"quantity"`
	NotifyThreshold int `json:"notify_threshold"`
}

// medicationOwnedBy guards the per-medication routes: the record must exist
// and belong to the requesting patient.
func (handler *Handler) medicationOwnedBy(medicationID uint, userID uint) (models.Medication, error) {
	medication, err := handler.repos.Medications.FindByID(medicationID)
	if err != nil {
		return models.Medication{}, err
	}
	if medication.UserID != userID {
		return models.Medication{}, gorm.ErrRecordNotFound
	}
	return medication, nil
}

func (handler *Handler) payloadToInput(payload medicationPayload) (services.MedicationInput, error) {
	startDate, err := parseDateField(payload.StartDate, handler.location)
	if err != nil {
		return services.MedicationInput{}, err
	}
	endDate, err := parseDateField(payload.EndDate, handler.location)
	if err != nil {
		return services.MedicationInput{}, err
	}

	return services.MedicationInput{
		Name:            payload.Name,
		DiseaseGroup:    payload.DiseaseGroup,
		DrugType:        payload.DrugType,
		DosageUnit:      payload.DosageUnit,
		Instruction:     payload.Instruction,
		IntakeTiming:    payload.IntakeTiming,
		ImageURL:        payload.ImageURL,
		StartDate:       startDate,
		EndDate:         endDate,
		InitialQuantity: payload.InitialQuantity,
		NotifyThreshold: payload.NotifyThreshold,
		DosageAmount:    payload.DosageAmount,
		ScheduleType:    payload.ScheduleType,
		Times:           payload.Times,
		IntervalStart:   payload.IntervalStart,
		IntervalHours:   payload.IntervalHours,
	}, nil
}

func (handler *Handler) ListMedications(c *fiber.Ctx) error {
	groupBy := c.Query("group", services.GroupByTimeOfDay)
	includeInactive := c.QueryBool("include_inactive", false)

	groups, err := handler.views.BuildView(currentUserID(c), groupBy, includeInactive)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load medications")
	}
	return c.JSON(fiber.Map{"groups": groups})
}

func (handler *Handler) CreateMedication(c *fiber.Ctx) error {
	var payload medicationPayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	input, err := handler.payloadToInput(payload)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date format")
	}

	medicationID, err := handler.medications.CreateMedication(currentUserID(c), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMedicationNameRequired), errors.Is(err, services.ErrInvalidTimeOfDay):
			return apiError(c, fiber.StatusBadRequest, err.Error())
		default:
			return apiError(c, fiber.StatusInternalServerError, "failed to create medication")
		}
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": medicationID})
}

func (handler *Handler) UpdateMedication(c *fiber.Ctx) error {
	medicationID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid medication id")
	}
	if _, err := handler.medicationOwnedBy(medicationID, currentUserID(c)); err != nil {
		return apiError(c, fiber.StatusNotFound, "medication not found")
	}

	var payload medicationPayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	input, err := handler.payloadToInput(payload)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date format")
	}

	if err := handler.medications.UpdateMedication(medicationID, input); err != nil {
		switch {
		case errors.Is(err, services.ErrMedicationNameRequired), errors.Is(err, services.ErrInvalidTimeOfDay):
			return apiError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrMedicationNotFound):
			return apiError(c, fiber.StatusNotFound, err.Error())
		default:
			return apiError(c, fiber.StatusInternalServerError, "failed to update medication")
		}
	}
	return c.JSON(fiber.Map{"status": "updated"})
}

func (handler *Handler) DeleteMedication(c *fiber.Ctx) error {
	medicationID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid medication id")
	}
	if _, err := handler.medicationOwnedBy(medicationID, currentUserID(c)); err != nil {
		return apiError(c, fiber.StatusNotFound, "medication not found")
	}

	if err := handler.medications.DeleteMedication(medicationID); err != nil {
		if errors.Is(err, services.ErrMedicationNotFound) {
			return apiError(c, fiber.StatusNotFound, err.Error())
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to delete medication")
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}

// SetMedicationActive toggles the soft visibility flag. Unlike deletion this
// keeps history and stock intact.
func (handler *Handler) SetMedicationActive(c *fiber.Ctx) error {
	medicationID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid medication id")
	}
	if _, err := handler.medicationOwnedBy(medicationID, currentUserID(c)); err != nil {
		return apiError(c, fiber.StatusNotFound, "medication not found")
	}

	var payload activePayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := handler.repos.Medications.SetActive(medicationID, payload.Active); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to update medication")
	}
	return c.JSON(fiber.Map{"status": "updated", "active": payload.Active})
}

// ListLowStock returns the patient's active medications at or below their
// warning threshold, lowest quantity first.
func (handler *Handler) ListLowStock(c *fiber.Ctx) error {
	entries, err := handler.repos.Stocks.ListLowStockForUser(currentUserID(c))
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load low stock")
	}
	return c.JSON(fiber.Map{"low_stock": entries})
}

func (handler *Handler) ListDiseaseGroups(c *fiber.Ctx) error {
	groups, err := handler.medications.ListDiseaseGroups(currentUserID(c))
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load disease groups")
	}
	return c.JSON(fiber.Map{"groups": groups})
}

func (handler *Handler) GetStock(c *fiber.Ctx) error {
	medicationID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid medication id")
	}
	if _, err := handler.medicationOwnedBy(medicationID, currentUserID(c)); err != nil {
		return apiError(c, fiber.StatusNotFound, "medication not found")
	}

	stock, err := handler.stocks.GetStock(medicationID)
	if err != nil {
		if errors.Is(err, services.ErrStockNotFound) {
			return apiError(c, fiber.StatusNotFound, err.Error())
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to load stock")
	}
	return c.JSON(fiber.Map{"stock": stock, "low": stock.IsLow()})
}

func (handler *Handler) UpdateStock(c *fiber.Ctx) error {
	medicationID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid medication id")
	}
	if _, err := handler.medicationOwnedBy(medicationID, currentUserID(c)); err != nil {
		return apiError(c, fiber.StatusNotFound, "medication not found")
	}

	var payload stockPayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := handler.stocks.SetQuantity(medicationID, payload.Quantity, payload.NotifyThreshold); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to update stock")
	}

	stock, err := handler.stocks.GetStock(medicationID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to reload stock")
	}
	return c.JSON(fiber.Map{"stock": stock, "low": stock.IsLow()})
}
