package routes

import (
	"github.com/dquispe/tutoria_online/handlers"
	"github.com/dquispe/tutoria_online/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())
	admin.Get("/calendar-settings", handlers.GetCalendarSettings)
	admin.Put("/calendar-settings", handlers.UpdateCalendarSettings)
}
