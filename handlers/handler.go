package handlers

import (
	"github.com/gatepass/api/configs"
	"github.com/gatepass/api/payments"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2/middleware/session"
	"gorm.io/gorm"
)

var validate = validator.New()

// Handler carries every dependency the request handlers need. It is built
// once in main and passed around explicitly; there is no package-level app
// or database state.
type Handler struct {
	DB       *gorm.DB
	Config   *configs.Config
	Paystack *payments.Client
	Sessions *session.Store
}

func New(db *gorm.DB, cfg *configs.Config, paystack *payments.Client, sessions *session.Store) *Handler {
	return &Handler{
		DB:       db,
		Config:   cfg,
		Paystack: paystack,
		Sessions: sessions,
	}
}
