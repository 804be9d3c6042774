package routes

import (
	"github.com/dquispe/tutoria_online/handlers"
	"github.com/dquispe/tutoria_online/middleware"
	"github.com/gofiber/fiber/v2"
)

func ProfileRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	profile := api.Group("/profile", middleware.Protected())
	profile.Get("/me", handlers.GetMyProfile)
	profile.Put("/timezone", handlers.UpdateMyTimeZone)
}
