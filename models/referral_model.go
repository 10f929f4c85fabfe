package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Referral links a referrer to the user they brought in. Rows are written in
// the same transaction as the referred User and never change afterwards.
type Referral struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	ReferrerID     uuid.UUID `gorm:"type:uuid;not null"`
	ReferredUserID uuid.UUID `gorm:"type:uuid;not null;unique"`

	Referrer     User `gorm:"foreignkey:ReferrerID"`
	ReferredUser User `gorm:"foreignkey:ReferredUserID"`

	CreatedAt time.Time
}

func (r *Referral) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
