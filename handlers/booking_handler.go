package handlers

import (
	"errors"
	"time"

	"github.com/dquispe/tutoria_online/database"
	"github.com/dquispe/tutoria_online/models"
	"github.com/dquispe/tutoria_online/notifications"
	"github.com/dquispe/tutoria_online/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type BookClassRequest struct {
	TeacherID    string `json:"teacher_id" validate:"required,uuid"`
	EnrollmentID string `json:"enrollment_id" validate:"required,uuid"`
	Day          string `json:"day" validate:"required,datetime=2006-01-02"`
	TimeSlot     string `json:"time_slot" validate:"required"`
	// Optional IANA zone the day and slot are expressed in; empty means UTC.
	TimeZone string `json:"time_zone" validate:"omitempty,timezone"`
}

// bookingErrorStatus maps the allocator's business failures onto HTTP statuses so the
// client can branch on cause (offer other slots on a conflict, nudge re-enrollment on
// an inactive enrollment, and so on).
func bookingErrorStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, services.ErrInvalidSlot):
		return fiber.StatusBadRequest, true
	case errors.Is(err, services.ErrSlotNotAvailable),
		errors.Is(err, services.ErrSlotConflict),
		errors.Is(err, services.ErrQuotaExceeded),
		errors.Is(err, services.ErrEnrollmentMismatch),
		errors.Is(err, services.ErrEnrollmentInactive):
		return fiber.StatusConflict, true
	case errors.Is(err, services.ErrEnrollmentNotFound), errors.Is(err, services.ErrBookingNotFound):
		return fiber.StatusNotFound, true
	case errors.Is(err, services.ErrNotParticipant):
		return fiber.StatusForbidden, true
	}
	return 0, false
}

func BookClass(c *fiber.Ctx) error {
	studentID := requesterID(c)

	var req BookClassRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	teacherID, _ := uuid.Parse(req.TeacherID)
	enrollmentID, _ := uuid.Parse(req.EnrollmentID)

	day, slot, err := services.ResolveSlotToUTC(req.Day, req.TimeSlot, req.TimeZone)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	booking, err := services.BookClass(database.DB, services.BookClassInput{
		TeacherID:    teacherID,
		StudentID:    studentID,
		EnrollmentID: enrollmentID,
		Day:          day,
		Slot:         slot,
	})
	if err != nil {
		if status, ok := bookingErrorStatus(err); ok {
			return c.Status(status).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create booking"})
	}

	go notifications.NotifyBookingConfirmed(booking)

	return c.Status(fiber.StatusCreated).JSON(booking)
}

func CancelBooking(c *fiber.Ctx) error {
	requester := requesterID(c)
	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	booking, err := services.CancelBooking(database.DB, bookingID, requester)
	if err != nil {
		if status, ok := bookingErrorStatus(err); ok {
			return c.Status(status).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to cancel booking"})
	}

	go notifications.NotifyBookingCancelled(booking)

	return c.JSON(booking)
}

type RescheduleRequest struct {
	Day      string `json:"day" validate:"required,datetime=2006-01-02"`
	TimeSlot string `json:"time_slot" validate:"required"`
	TimeZone string `json:"time_zone" validate:"omitempty,timezone"`
}

func RescheduleBooking(c *fiber.Ctx) error {
	requester := requesterID(c)
	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	var req RescheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	day, slot, err := services.ResolveSlotToUTC(req.Day, req.TimeSlot, req.TimeZone)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	booking, err := services.RescheduleBooking(database.DB, bookingID, requester, day, slot)
	if err != nil {
		if status, ok := bookingErrorStatus(err); ok {
			return c.Status(status).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to reschedule booking"})
	}
	return c.JSON(booking)
}

func GetMyBookings(c *fiber.Ctx) error {
	studentID := requesterID(c)

	var bookings []models.ClassBooking
	database.DB.
		Preload("Teacher").
		Where("student_id = ?", studentID).
		Order("day desc, time_slot desc").
		Find(&bookings)

	return c.JSON(bookings)
}

func GetMyTeacherBookings(c *fiber.Ctx) error {
	teacherID := requesterID(c)

	var bookings []models.ClassBooking
	database.DB.
		Preload("Student").
		Where("teacher_id = ?", teacherID).
		Order("day desc, time_slot desc").
		Find(&bookings)

	return c.JSON(bookings)
}

func MarkBookingAsComplete(c *fiber.Ctx) error {
	teacherID := requesterID(c)
	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	var booking models.ClassBooking
	if err := database.DB.First(&booking, "id = ?", bookingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}
	if booking.TeacherID != teacherID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You are not the teacher for this booking"})
	}

	completed, err := services.CompleteBooking(database.DB, bookingID, time.Now())
	if err != nil {
		if status, ok := bookingErrorStatus(err); ok {
			return c.Status(status).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(completed)
}
