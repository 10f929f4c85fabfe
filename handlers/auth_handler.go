package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gatepass/api/models"
	"github.com/gatepass/api/utils"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken      = errors.New("email already exists")
	ErrUnknownReferral = errors.New("referral code not found")
	ErrInvalidDOB      = errors.New("invalid date_of_birth, expected YYYY-MM-DD")
)

type RegisterRequest struct {
	Email        string  `json:"email" validate:"required,email"`
	Password     string  `json:"password" validate:"required,min=6"`
	FullName     string  `json:"full_name" validate:"required"`
	Phone        string  `json:"phone" validate:"required"`
	State        *string `json:"state,omitempty"`
	DateOfBirth  *string `json:"date_of_birth,omitempty"`
	LocalGovt    *string `json:"local_govt,omitempty"`
	Gender       *string `json:"gender,omitempty"`
	NextOfKin    *string `json:"next_of_kin,omitempty"`
	ReferralCode *string `json:"referral_code,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the public projection of a User. The password hash never
// leaves the model.
type UserResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	QRCode     *string   `json:"qr_code"`
	Paid       bool      `json:"paid"`
	ReferralID *string   `json:"referral_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func newUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:         user.ID.String(),
		Email:      user.Email,
		FullName:   user.FullName,
		QRCode:     user.QRCode,
		Paid:       user.Paid,
		ReferralID: user.ReferralID,
		CreatedAt:  user.CreatedAt,
	}
}

// createUser persists a new User, and the Referral row when a referrer
// resolves, inside one transaction. With strictReferral an unknown code
// fails the registration; otherwise it is logged and ignored.
func (h *Handler) createUser(req RegisterRequest, strictReferral bool) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	qrCode, err := utils.GenerateQRCode(req.Email)
	if err != nil {
		return nil, err
	}

	var dateOfBirth *time.Time
	if req.DateOfBirth != nil && *req.DateOfBirth != "" {
		parsed, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			return nil, ErrInvalidDOB
		}
		dateOfBirth = &parsed
	}

	var newUser models.User
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		if err := tx.Where("email = ?", req.Email).First(&existing).Error; err == nil {
			return ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var referrer *models.User
		if req.ReferralCode != nil && *req.ReferralCode != "" {
			var found models.User
			if err := tx.Where("referral_id = ?", *req.ReferralCode).First(&found).Error; err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				if strictReferral {
					return ErrUnknownReferral
				}
				log.Printf("Invalid referral code used: %s", *req.ReferralCode)
			} else {
				referrer = &found
			}
		}

		referralID, err := utils.GenerateUniqueReferralID(tx)
		if err != nil {
			return err
		}

		newUser = models.User{
			Email:        req.Email,
			Password:     string(hashedPassword),
			QRCode:       &qrCode,
			ReferralID:   &referralID,
			ReferralCode: req.ReferralCode,
			FullName:     req.FullName,
			Phone:        req.Phone,
			State:        req.State,
			DateOfBirth:  dateOfBirth,
			LocalGovt:    req.LocalGovt,
			Gender:       req.Gender,
			NextOfKin:    req.NextOfKin,
		}
		if err := tx.Create(&newUser).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrEmailTaken
			}
			return err
		}

		if referrer != nil {
			referral := models.Referral{
				ReferrerID:     referrer.ID,
				ReferredUserID: newUser.ID,
			}
			if err := tx.Create(&referral).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &newUser, nil
}

func (h *Handler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	user, err := h.createUser(req, false)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A user with these credentials already exists"})
		case errors.Is(err, ErrInvalidDOB):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		log.Printf("Failed to register user %s: %v", req.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create user"})
	}

	return c.JSON(newUserResponse(user))
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	sess, err := h.Sessions.Get(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create session"})
	}
	sess.Set("user_id", user.ID.String())
	if err := sess.Save(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create session"})
	}

	return c.JSON(newUserResponse(&user))
}

// Me returns the profile for the session user. The session middleware has
// already rejected requests with no live session.
func (h *Handler) Me(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var user models.User
	if err := h.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(newUserResponse(&user))
}

func (h *Handler) Logout(c *fiber.Ctx) error {
	sess, err := h.Sessions.Get(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load session"})
	}
	if err := sess.Destroy(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to end session"})
	}
	return c.JSON(fiber.Map{"message": "Logged out"})
}
