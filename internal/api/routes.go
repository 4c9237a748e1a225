package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.RegisterPatient)
	auth.Post("/login", handler.LoginPatient)
	auth.Post("/caregiver/register", handler.RegisterCaregiver)
	auth.Post("/caregiver/login", handler.LoginCaregiver)
	auth.Get("/profile", handler.PatientRequired, handler.GetProfile)
	auth.Put("/profile", handler.PatientRequired, handler.UpdateProfile)
	auth.Get("/caregiver/profile", handler.CaregiverRequired, handler.GetCaregiverProfile)
	auth.Put("/caregiver/profile", handler.CaregiverRequired, handler.UpdateCaregiverProfile)

	medications := api.Group("/medications", handler.PatientRequired)
	medications.Get("", handler.ListMedications)
	medications.Get("/low-stock", handler.ListLowStock)
	medications.Post("", handler.CreateMedication)
	medications.Put("/:id", handler.UpdateMedication)
	medications.Delete("/:id", handler.DeleteMedication)
	medications.Patch("/:id/active", handler.SetMedicationActive)
	medications.Get("/:id/stock", handler.GetStock)
	medications.Put("/:id/stock", handler.UpdateStock)

	api.Get("/disease-groups", handler.PatientRequired, handler.ListDiseaseGroups)

	doses := api.Group("/doses", handler.PatientRequired)
	doses.Post("", handler.LogDose)

	api.Get("/history", handler.PatientRequired, handler.GetHistory)
	api.Get("/adherence", handler.PatientRequired, handler.GetAdherence)

	symptoms := api.Group("/symptoms", handler.PatientRequired)
	symptoms.Get("", handler.ListSymptoms)
	symptoms.Post("", handler.CreateSymptom)

	caregivers := api.Group("/caregivers", handler.PatientRequired)
	caregivers.Get("", handler.ListCaregivers)
	caregivers.Post("/invite", handler.InviteCaregiver)
	caregivers.Delete("/:id", handler.RevokeCaring)

	patients := api.Group("/caregiver/patients", handler.CaregiverRequired)
	patients.Get("", handler.ListPatients)
	patients.Post("/link", handler.LinkPatient)
	patients.Get("/:id/dashboard", handler.GetPatientDashboard)
}
