package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPaybyrdAPIURL        = "https://gateway.paybyrd.com/api/v2"
	defaultPaybyrdWebhookAPIURL = "https://webhook.paybyrd.com/api/v1"
	defaultPaybyrdHostedFormURL = "https://checkout.paybyrd.com/#/payment"
	defaultPaybyrdTimeout       = 15 * time.Second
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string
	AppPort    string
	AppEnv     string

	// StoreURL is the public base URL of the storefront, used to build the
	// return-path and webhook URLs handed to Paybyrd.
	StoreURL   string
	StoreScope int

	PaybyrdAPIURL        string
	PaybyrdWebhookAPIURL string
	PaybyrdHostedFormURL string
	PaybyrdTimeout       time.Duration

	AdminJWTSecret string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:               os.Getenv("DB_HOST"),
		DBUser:               os.Getenv("DB_USER"),
		DBPassword:           os.Getenv("DB_PASSWORD"),
		DBName:               os.Getenv("DB_NAME"),
		DBPort:               os.Getenv("DB_PORT"),
		DBSSLMode:            envOrDefault("DB_SSLMODE", "disable"),
		AppPort:              envOrDefault("APP_PORT", "8080"),
		AppEnv:               os.Getenv("APP_ENV"),
		StoreURL:             strings.TrimRight(os.Getenv("STORE_URL"), "/"),
		StoreScope:           envInt("STORE_SCOPE", 0),
		PaybyrdAPIURL:        strings.TrimRight(envOrDefault("PAYBYRD_API_URL", defaultPaybyrdAPIURL), "/"),
		PaybyrdWebhookAPIURL: strings.TrimRight(envOrDefault("PAYBYRD_WEBHOOK_API_URL", defaultPaybyrdWebhookAPIURL), "/"),
		PaybyrdHostedFormURL: envOrDefault("PAYBYRD_HOSTED_FORM_URL", defaultPaybyrdHostedFormURL),
		PaybyrdTimeout:       envDuration("PAYBYRD_TIMEOUT", defaultPaybyrdTimeout),
		AdminJWTSecret:       os.Getenv("ADMIN_JWT_SECRET"),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}

// ReturnURL is where the hosted form sends the shopper back to.
func (c *Config) ReturnURL() string {
	return c.StoreURL + "/payment/return"
}

// WebhookURL is the endpoint registered with Paybyrd for async notifications.
func (c *Config) WebhookURL() string {
	return c.StoreURL + "/webhook"
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
