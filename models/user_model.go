package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email    string    `gorm:"size:345;not null;unique" json:"email"`
	Password string    `gorm:"not null" json:"-"`

	// Base64-encoded PNG of the user's email, issued at registration.
	QRCode *string `gorm:"type:text" json:"qr_code"`

	Paid             bool    `gorm:"not null;default:false" json:"paid"`
	PaymentReference *string `gorm:"size:255" json:"payment_reference"`

	// ReferralID is this user's own shareable code; ReferralCode is the code
	// they registered under, kept for attribution only.
	ReferralID   *string `gorm:"size:10;unique" json:"referral_id"`
	ReferralCode *string `gorm:"size:10" json:"referral_code"`

	FullName    string     `gorm:"size:255;not null" json:"full_name"`
	Phone       string     `gorm:"size:20;not null" json:"phone"`
	State       *string    `gorm:"size:255" json:"state"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	LocalGovt   *string    `gorm:"size:255" json:"local_govt"`
	Gender      *string    `gorm:"size:10" json:"gender"`
	NextOfKin   *string    `gorm:"size:255" json:"next_of_kin"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
