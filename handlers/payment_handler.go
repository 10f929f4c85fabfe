package handlers

import (
	"log"

	"github.com/gatepass/api/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// InitializePayment starts a Paystack charge for the configured amount and
// stores the returned reference on the user. Nothing is written when the
// gateway call fails.
func (h *Handler) InitializePayment(c *fiber.Ctx) error {
	userID := c.Params("user_id")
	if _, err := uuid.Parse(userID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var user models.User
	if err := h.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	txn, err := h.Paystack.InitializeTransaction(
		user.Email,
		h.Config.ChargeAmount,
		h.Config.CallbackURL,
		map[string]string{"user_id": user.ID.String()},
	)
	if err != nil {
		log.Printf("Payment initiation failed for user %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Payment initiation failed"})
	}

	user.PaymentReference = &txn.Reference
	if err := h.DB.Save(&user).Error; err != nil {
		log.Printf("Failed to save payment reference for user %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save payment reference"})
	}

	return c.JSON(fiber.Map{"authorization_url": txn.AuthorizationURL})
}

type verifyRequest struct {
	PaymentReference string `json:"payment_reference"`
}

// VerifyPayment confirms a charge with the gateway and flips the user's paid
// flag on a "success" status. The user is resolved by payment_reference; a
// user_id route param, when present, only cross-checks the match. Re-verifying
// an already-paid user is harmless.
func (h *Handler) VerifyPayment(c *fiber.Ctx) error {
	var req verifyRequest
	if c.Method() == fiber.MethodPost {
		// A missing body is fine, the reference may arrive as a query param.
		_ = c.BodyParser(&req)
	}
	reference := req.PaymentReference
	if reference == "" {
		reference = c.Query("reference")
	}
	if reference == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing payment reference"})
	}

	txn, err := h.Paystack.VerifyTransaction(reference)
	if err != nil {
		log.Printf("Payment verification failed for reference %s: %v", reference, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payment verification failed"})
	}

	if txn.Status != "success" {
		return c.JSON(fiber.Map{"paid": false})
	}

	var user models.User
	if err := h.DB.Where("payment_reference = ?", reference).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	if userID := c.Params("user_id"); userID != "" && userID != user.ID.String() {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	user.Paid = true
	if err := h.DB.Save(&user).Error; err != nil {
		log.Printf("Failed to mark user %s as paid: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update payment status"})
	}

	return c.JSON(fiber.Map{"paid": user.Paid, "payment_reference": reference})
}
