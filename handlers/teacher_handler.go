package handlers

import (
	"errors"
	"time"

	"github.com/dquispe/tutoria_online/database"
	"github.com/dquispe/tutoria_online/models"
	"github.com/dquispe/tutoria_online/services"
	"github.com/dquispe/tutoria_online/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeacherApplicationRequest struct {
	Headline string `json:"headline" validate:"required"`
	Bio      string `json:"bio" validate:"required"`
}

func ApplyToBeATeacher(c *fiber.Ctx) error {
	userID := requesterID(c)

	var req TeacherApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var existing models.Teacher
	err := database.DB.Where("user_id = ?", userID).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You have already submitted an application."})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	application := models.Teacher{UserID: userID, Headline: &req.Headline, Bio: &req.Bio}
	if err := database.DB.Create(&application).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create application"})
	}
	return c.Status(fiber.StatusCreated).JSON(application)
}

type SetAvailabilityRequest struct {
	Day       string `json:"day" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
	Available *bool  `json:"available" validate:"required"`
}

// SetAvailability toggles a single recurring range on or off. Day and times are UTC;
// clients working in local wall-clock time use the bulk endpoint, which converts.
func SetAvailability(c *fiber.Ctx) error {
	teacherID := requesterID(c)

	var req SetAvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	err := services.SetAvailability(database.DB, teacherID, req.Day, req.StartTime, req.EndTime, *req.Available)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRange):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, services.ErrRangeNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update availability"})
	}
	return c.JSON(fiber.Map{"message": "Availability updated"})
}

type BulkAvailabilityRequest struct {
	Days []services.DaySlots `json:"days" validate:"required,min=1,dive"`
}

// BulkUpdateAvailability replaces the teacher's schedule for the submitted days. The
// incoming slots are wall-clock times in the teacher's configured timezone.
func BulkUpdateAvailability(c *fiber.Ctx) error {
	teacherID := requesterID(c)

	var req BulkAvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var teacher models.User
	if err := database.DB.First(&teacher, "id = ?", teacherID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Teacher not found"})
	}
	zone := ""
	if teacher.TimeZone != nil {
		zone = *teacher.TimeZone
	}
	loc, err := utils.LoadZone(zone)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := services.BulkReplaceAvailability(database.DB, teacherID, req.Days, loc, time.Now()); err != nil {
		if errors.Is(err, services.ErrInvalidRange) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to replace availability"})
	}
	return c.JSON(fiber.Map{"message": "Availability replaced"})
}

func GetMyAvailability(c *fiber.Ctx) error {
	teacherID := requesterID(c)
	return respondAvailability(c, teacherID)
}

func GetTeacherAvailability(c *fiber.Ctx) error {
	teacherID, err := uuid.Parse(c.Params("teacherId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid teacher id"})
	}
	return respondAvailability(c, teacherID)
}

func respondAvailability(c *fiber.Ctx, teacherID uuid.UUID) error {
	availability, err := services.GetAvailability(database.DB, teacherID, c.Query("timezone"), time.Now())
	if err != nil {
		if errors.Is(err, services.ErrInvalidRange) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load availability"})
	}
	return c.JSON(availability)
}

// GetTeacherDaySlots expands a teacher's availability for one UTC date into bookable
// slot starts, skipping slots that collide with existing bookings.
func GetTeacherDaySlots(c *fiber.Ctx) error {
	teacherID, err := uuid.Parse(c.Params("teacherId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid teacher id"})
	}
	day := c.Query("date")
	date, err := utils.ParseDate(day)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date must be YYYY-MM-DD"})
	}

	settings, err := services.GetCalendarSettings(database.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load calendar settings"})
	}

	dayKey := utils.DayKeyForWeekday(date.Weekday())
	availability, err := services.GetAvailability(database.DB, teacherID, "", time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load availability"})
	}
	var merged []services.MinuteRange
	for _, r := range availability[dayKey] {
		start, _ := utils.TimeToMinutes(r.StartTime)
		end, _ := utils.TimeToMinutes(r.EndTime)
		if end == 0 {
			end = 1440
		}
		merged = append(merged, services.MinuteRange{Start: start, End: end})
	}

	var bookings []models.ClassBooking
	if err := database.DB.Where("teacher_id = ? AND day = ? AND status <> ?",
		teacherID, day, models.BookingStatusCancelled).Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load bookings"})
	}
	var busy []services.MinuteRange
	for _, b := range bookings {
		start, end, err := utils.SlotToMinutes(b.TimeSlot)
		if err != nil {
			continue
		}
		busy = append(busy, services.MinuteRange{Start: start, End: end})
	}

	slots := services.AvailableSlotStarts(merged, busy, settings.SlotDuration, settings.StartHour, settings.EndHour)
	return c.JSON(fiber.Map{"date": day, "slots": slots})
}
