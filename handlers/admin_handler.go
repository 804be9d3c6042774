package handlers

import (
	"github.com/dquispe/tutoria_online/database"
	"github.com/dquispe/tutoria_online/services"
	"github.com/gofiber/fiber/v2"
)

func GetCalendarSettings(c *fiber.Ctx) error {
	settings, err := services.GetCalendarSettings(database.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load calendar settings"})
	}
	return c.JSON(settings)
}

type UpdateCalendarSettingsRequest struct {
	StartHour             *int `json:"start_hour" validate:"required,min=0,max=23"`
	EndHour               *int `json:"end_hour" validate:"required,min=1,max=24"`
	MaxBookingsPerStudent *int `json:"max_bookings_per_student" validate:"required,min=1"`
}

func UpdateCalendarSettings(c *fiber.Ctx) error {
	var req UpdateCalendarSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	settings, err := services.UpdateCalendarSettings(database.DB, *req.StartHour, *req.EndHour, *req.MaxBookingsPerStudent)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(settings)
}
