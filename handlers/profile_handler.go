package handlers

import (
	"github.com/dquispe/tutoria_online/database"
	"github.com/dquispe/tutoria_online/models"
	"github.com/gofiber/fiber/v2"
)

func GetMyProfile(c *fiber.Ctx) error {
	userID := requesterID(c)

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	return c.JSON(user)
}

type UpdateTimeZoneRequest struct {
	TimeZone string `json:"time_zone" validate:"required,timezone"`
}

// UpdateMyTimeZone sets the IANA zone used to convert this user's wall-clock input
// and output. Stored availability and bookings stay in UTC regardless.
func UpdateMyTimeZone(c *fiber.Ctx) error {
	userID := requesterID(c)

	var req UpdateTimeZoneRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	user.TimeZone = &req.TimeZone
	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update timezone"})
	}
	return c.JSON(user)
}
