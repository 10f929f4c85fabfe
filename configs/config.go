package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the service reads from the environment. The
// Paystack secret is injected here and nowhere else.
type Config struct {
	Port            string
	DatabaseURL     string
	PaystackSecret  string
	PaystackBaseURL string
	ChargeAmount    int // kobo
	CallbackURL     string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, reading from system environment variables")
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		PaystackSecret:  getEnv("PAYSTACK_SECRET_KEY", ""),
		PaystackBaseURL: getEnv("PAYSTACK_BASE_URL", "https://api.paystack.co"),
		ChargeAmount:    getEnvInt("CHARGE_AMOUNT", 5000),
		CallbackURL:     getEnv("PAYMENT_CALLBACK_URL", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: %s is not a number, using default %d", key, fallback)
		return fallback
	}
	return n
}
