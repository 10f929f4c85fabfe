package utils

import (
	"math/rand"

	"github.com/gatepass/api/models"
	"gorm.io/gorm"
)

const referralIDLength = 8
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateUniqueReferralID draws random codes until one is free. Collisions
// are vanishingly rare at 36^8 possibilities, so the loop is unbounded.
// The package-level rand source is locked internally, so concurrent
// registrations may call this safely.
func GenerateUniqueReferralID(tx *gorm.DB) (string, error) {
	for {
		b := make([]byte, referralIDLength)
		for i := range b {
			b[i] = letterBytes[rand.Intn(len(letterBytes))]
		}
		code := string(b)

		var user models.User
		err := tx.Where("referral_id = ?", code).First(&user).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return code, nil
			}
			return "", err
		}
	}
}
