package utils

import (
	"fmt"
	"regexp"
	"sync"
	"testing"

	"github.com/gatepass/api/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var referralIDRE = regexp.MustCompile(`^[A-Z0-9]{8}$`)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// TestGenerateUniqueReferralID_Format verifies the fixed-length uppercase
// alphanumeric shape of generated codes.
func TestGenerateUniqueReferralID_Format(t *testing.T) {
	db := openTestDB(t)

	code, err := GenerateUniqueReferralID(db)
	if err != nil {
		t.Fatalf("GenerateUniqueReferralID: %v", err)
	}
	if !referralIDRE.MatchString(code) {
		t.Errorf("code %q does not match [A-Z0-9]{8}", code)
	}
}

// TestGenerateUniqueReferralID_Concurrent generates codes from several
// goroutines at once, as concurrent registrations do. Run with -race; the
// shared rand source must be safe without external locking.
func TestGenerateUniqueReferralID_Concurrent(t *testing.T) {
	db := openTestDB(t)

	const workers = 8
	const perWorker = 25

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				code, err := GenerateUniqueReferralID(db)
				if err != nil {
					errs <- err
					return
				}
				if !referralIDRE.MatchString(code) {
					errs <- fmt.Errorf("malformed code %q", code)
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent generation: %v", err)
	}
}

// TestGenerateUniqueReferralID_Distinct persists each generated code on a
// user row, so a repeated draw would have to survive the collision check.
// All issued codes must be pairwise distinct.
func TestGenerateUniqueReferralID_Distinct(t *testing.T) {
	db := openTestDB(t)

	const n = 100
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		code, err := GenerateUniqueReferralID(db)
		if err != nil {
			t.Fatalf("GenerateUniqueReferralID on iteration %d: %v", i, err)
		}
		if _, dup := seen[code]; dup {
			t.Fatalf("duplicate referral id %q issued on iteration %d", code, i)
		}
		seen[code] = struct{}{}

		user := models.User{
			Email:      fmt.Sprintf("user%d@example.com", i),
			Password:   "x",
			FullName:   "Test User",
			Phone:      "0000000000",
			ReferralID: &code,
		}
		if err := db.Create(&user).Error; err != nil {
			t.Fatalf("create user %d: %v", i, err)
		}
	}
}
