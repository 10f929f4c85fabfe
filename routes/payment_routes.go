package routes

import (
	"github.com/gatepass/api/handlers"
	"github.com/gofiber/fiber/v2"
)

func PaymentRoutes(app *fiber.App, h *handlers.Handler) {
	app.Post("/pay/:user_id", h.InitializePayment)
	app.Get("/pay/:user_id/verify", h.VerifyPayment)
	app.Post("/pay/:user_id/verify", h.VerifyPayment)

	// Legacy path kept for clients that verify without a user id.
	app.Post("/verify_payment", h.VerifyPayment)
}
