package routes

import (
	"github.com/dquispe/tutoria_online/handlers"
	"github.com/dquispe/tutoria_online/middleware"
	"github.com/gofiber/fiber/v2"
)

func TeacherRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/teachers/:teacherId/availability", handlers.GetTeacherAvailability)
	api.Get("/teachers/:teacherId/slots", handlers.GetTeacherDaySlots)

	teacher := api.Group("/teacher", middleware.Protected())
	teacher.Post("/apply", handlers.ApplyToBeATeacher)
	teacher.Get("/bookings", handlers.GetMyTeacherBookings)

	availability := teacher.Group("/availability", middleware.TeacherRequired())
	availability.Get("/me", handlers.GetMyAvailability)
	availability.Put("", handlers.SetAvailability)
	availability.Put("/bulk", handlers.BulkUpdateAvailability)
}
