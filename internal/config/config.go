package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	AppPort    string
	AppEnv     string

	JWTSecret    string
	AuthProvider string // "mock" or "jwt"
	AdminKeyHash string // bcrypt hash of the admin API key

	Checkout CheckoutOptions
}

// CheckoutOptions holds the business settings the order service needs.
// They are injected explicitly instead of being read from the environment
// at call sites.
type CheckoutOptions struct {
	DeliveryFee    decimal.Decimal
	MinOrderAmount decimal.Decimal
	Currency       string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:       os.Getenv("DB_HOST"),
		DBUser:       os.Getenv("DB_USER"),
		DBPassword:   os.Getenv("DB_PASSWORD"),
		DBName:       os.Getenv("DB_NAME"),
		DBPort:       os.Getenv("DB_PORT"),
		AppPort:      os.Getenv("APP_PORT"),
		AppEnv:       os.Getenv("APP_ENV"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		AuthProvider: os.Getenv("AUTH_PROVIDER"),
		AdminKeyHash: os.Getenv("ADMIN_KEY_HASH"),
		Checkout: CheckoutOptions{
			DeliveryFee:    decimalEnv("DELIVERY_FEE", "29.00"),
			MinOrderAmount: decimalEnv("MIN_ORDER_AMOUNT", "100.00"),
			Currency:       stringEnv("CURRENCY", "DKK"),
		},
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}
	if cfg.AuthProvider == "" {
		cfg.AuthProvider = "mock"
	}

	return cfg
}

func stringEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func decimalEnv(key, fallback string) decimal.Decimal {
	raw := os.Getenv(key)
	if raw == "" {
		raw = fallback
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		log.Fatalf("invalid decimal for %s: %v", key, err)
	}
	return d
}
