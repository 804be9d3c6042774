package routes

import (
	"github.com/dquispe/tutoria_online/handlers"
	"github.com/dquispe/tutoria_online/middleware"
	"github.com/gofiber/fiber/v2"
)

func BookingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	booking := api.Group("/bookings", middleware.Protected())
	booking.Get("/me", handlers.GetMyBookings)
	booking.Post("", handlers.BookClass)
	booking.Post("/:bookingId/cancel", handlers.CancelBooking)
	booking.Post("/:bookingId/reschedule", handlers.RescheduleBooking)
	booking.Get("/:bookingId/access", handlers.CheckClassAccess)

	teacherBooking := api.Group("/teacher/bookings", middleware.Protected(), middleware.TeacherRequired())
	teacherBooking.Post("/:bookingId/complete", handlers.MarkBookingAsComplete)
}
