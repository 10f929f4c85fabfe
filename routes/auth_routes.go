package routes

import (
	"github.com/gatepass/api/handlers"
	"github.com/gatepass/api/middleware"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App, h *handlers.Handler) {
	app.Post("/register", h.Register)
	app.Post("/login", h.Login)
	app.Post("/logout", middleware.SessionRequired(h.Sessions), h.Logout)
	app.Get("/@me", middleware.SessionRequired(h.Sessions), h.Me)
}
