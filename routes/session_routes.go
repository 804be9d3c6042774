package routes

import (
	"github.com/dquispe/tutoria_online/handlers"
	"github.com/dquispe/tutoria_online/middleware"
	"github.com/gofiber/fiber/v2"
)

func SessionRoutes(app *fiber.App) {
	classroom := app.Group("/ws/classroom", middleware.Protected(), handlers.ClassroomUpgrade)
	classroom.Get("/:bookingId", handlers.JoinClassroom)
}
