package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gatepass/api/configs"
	"github.com/gatepass/api/handlers"
	"github.com/gatepass/api/models"
	"github.com/gatepass/api/payments"
	"github.com/gatepass/api/routes"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeGateway stands in for Paystack. verifyStatus controls what the verify
// endpoint reports; initFail makes initialization return a 500.
type fakeGateway struct {
	srv          *httptest.Server
	verifyStatus string
	initFail     bool
	reference    string
}

func newFakeGateway(t *testing.T) *fakeGateway {
	t.Helper()
	gw := &fakeGateway{
		verifyStatus: "success",
		reference:    "ref-test-1",
	}
	gw.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/transaction/initialize":
			if gw.initFail {
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprint(w, `{"status":false,"message":"gateway down"}`)
				return
			}
			fmt.Fprintf(w, `{"status":true,"data":{"authorization_url":"https://checkout.example.com/%s","access_code":"ac-1","reference":"%s"}}`,
				gw.reference, gw.reference)
		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/transaction/verify/"):
			ref := strings.TrimPrefix(r.URL.Path, "/transaction/verify/")
			fmt.Fprintf(w, `{"status":true,"data":{"status":"%s","amount":5000,"reference":"%s"}}`,
				gw.verifyStatus, ref)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"status":false,"message":"unknown endpoint"}`)
		}
	}))
	t.Cleanup(gw.srv.Close)
	return gw
}

func newTestApp(t *testing.T, gw *fakeGateway) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	// Mirrors database.Connect: translated errors are part of the contract
	// the handlers rely on.
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Referral{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &configs.Config{
		PaystackSecret:  "sk_test_secret",
		PaystackBaseURL: gw.srv.URL,
		ChargeAmount:    5000,
		CallbackURL:     "https://app.example.com/payment/callback",
	}
	h := handlers.New(db, cfg,
		payments.NewClient(cfg.PaystackBaseURL, cfg.PaystackSecret),
		session.New(session.Config{KeyLookup: "cookie:session_id"}),
	)

	app := fiber.New(fiber.Config{CaseSensitive: true, StrictRouting: true})
	routes.AuthRoutes(app, h)
	routes.PaymentRoutes(app, h)
	routes.ReferralRoutes(app, h)
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, cookies ...*http.Cookie) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}

	var parsed map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		t.Fatalf("%s %s: decode response: %v", method, path, err)
	}
	return resp, parsed
}

func registerBody(email string) map[string]interface{} {
	return map[string]interface{}{
		"email":     email,
		"password":  "pw123456",
		"full_name": "Alice Example",
		"phone":     "08012345678",
	}
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "session_id" {
			return cookie
		}
	}
	t.Fatal("response did not set a session_id cookie")
	return nil
}
