package handlers

import (
	"time"

	"github.com/dquispe/tutoria_online/database"
	"github.com/dquispe/tutoria_online/models"
	"github.com/dquispe/tutoria_online/services"
	ws "github.com/dquispe/tutoria_online/websocket"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CheckClassAccess is polled by the session-join UI. It evaluates the caller's access
// window for the booking right now and returns the decision with countdown figures.
func CheckClassAccess(c *fiber.Ctx) error {
	requester := requesterID(c)
	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	var booking models.ClassBooking
	if err := database.DB.First(&booking, "id = ?", bookingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}
	if booking.StudentID != requester && booking.TeacherID != requester {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You are not a participant of this booking"})
	}
	if booking.Status != models.BookingStatusConfirmed {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "This booking is not active"})
	}

	isTeacher := requester == booking.TeacherID
	decision := services.EvaluateAccess(booking.Day, booking.TimeSlot, time.Now().UTC(), isTeacher)

	return c.JSON(fiber.Map{
		"access":           decision,
		"show_end_warning": services.ShouldShowEndWarning(decision.MinutesUntilEnd),
	})
}

// ClassroomUpgrade gates the websocket upgrade for classroom connections and stashes
// the authenticated user id where the connection handler can reach it.
func ClassroomUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		c.Locals("ws_user_id", requesterID(c))
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// JoinClassroom admits a participant into the live classroom once their access window
// is open, then keeps the connection registered in the hub, which pushes countdown
// and end-warning ticks until the class ends.
var JoinClassroom = websocket.New(func(conn *websocket.Conn) {
	defer conn.Close()

	userID := conn.Locals("ws_user_id").(uuid.UUID)
	bookingID, err := uuid.Parse(conn.Params("bookingId"))
	if err != nil {
		conn.WriteJSON(fiber.Map{"error": "Invalid booking id"})
		return
	}

	var booking models.ClassBooking
	if err := database.DB.First(&booking, "id = ?", bookingID).Error; err != nil {
		conn.WriteJSON(fiber.Map{"error": "Booking not found"})
		return
	}
	if booking.StudentID != userID && booking.TeacherID != userID {
		conn.WriteJSON(fiber.Map{"error": "You are not a participant of this booking"})
		return
	}

	isTeacher := userID == booking.TeacherID
	decision := services.EvaluateAccess(booking.Day, booking.TimeSlot, time.Now().UTC(), isTeacher)
	if !decision.CanAccess {
		conn.WriteJSON(fiber.Map{"error": decision.Reason, "access": decision})
		return
	}

	client := &ws.Client{
		BookingID: booking.ID,
		UserID:    userID,
		IsTeacher: isTeacher,
		Day:       booking.Day,
		TimeSlot:  booking.TimeSlot,
		Conn:      conn,
	}
	ws.Register <- client
	defer func() { ws.Unregister <- client }()

	conn.WriteJSON(fiber.Map{"joined": true, "access": decision})

	// Reads are only used to detect disconnects; the hub does the writing.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
})
