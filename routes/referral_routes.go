package routes

import (
	"github.com/gatepass/api/handlers"
	"github.com/gofiber/fiber/v2"
)

func ReferralRoutes(app *fiber.App, h *handlers.Handler) {
	app.Get("/invite/:referral_id", h.GetReferrer)
	app.Post("/invite/:referral_id", h.RegisterWithReferral)
}
