package handlers

import (
	"errors"
	"log"

	"github.com/gatepass/api/models"
	"github.com/gofiber/fiber/v2"
)

// GetReferrer resolves an invite link to the referring user's public profile.
func (h *Handler) GetReferrer(c *fiber.Ctx) error {
	referralID := c.Params("referral_id")

	var referrer models.User
	if err := h.DB.Where("referral_id = ?", referralID).First(&referrer).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Invalid referral code"})
	}

	return c.JSON(newUserResponse(&referrer))
}

// RegisterWithReferral registers a new user under an invite code. Unlike the
// plain register route, an unknown code here is a hard 404.
func (h *Handler) RegisterWithReferral(c *fiber.Ctx) error {
	referralID := c.Params("referral_id")

	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	req.ReferralCode = &referralID
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	user, err := h.createUser(req, true)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownReferral):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Invalid referral code"})
		case errors.Is(err, ErrEmailTaken):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A user with these credentials already exists"})
		case errors.Is(err, ErrInvalidDOB):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		log.Printf("Failed to register referred user %s: %v", req.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create user"})
	}

	return c.JSON(newUserResponse(user))
}
