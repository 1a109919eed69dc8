package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// TrackingBaseURL is the public site the QR payload and email links point
	// at; AdminPanelURL is where admin notifications send operators.
	TrackingBaseURL string
	AdminPanelURL   string

	BrevoAPIKey      string
	BrevoSenderEmail string
	BrevoSenderName  string
	MailTimeout      time.Duration

	JWTSecret string
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		Port: getEnvOrDefault("PORT", "8080"),

		DBHost:     getEnvOrDefault("DB_HOST", "localhost"),
		DBPort:     getEnvOrDefault("DB_PORT", "5432"),
		DBUser:     getEnvOrDefault("DB_USER", "postgres"),
		DBPassword: getEnvOrDefault("DB_PASSWORD", "postgres"),
		DBName:     getEnvOrDefault("DB_NAME", "tracking_db"),

		TrackingBaseURL: getEnvOrDefault("CLIENT_TRACKING_URL", "https://cargorealmandlogistics.com"),
		AdminPanelURL:   getEnvOrDefault("ADMIN_PANEL_URL", "https://cargorealmandlogistics.com/app/dashboard"),

		BrevoAPIKey:      os.Getenv("BREVO_API_KEY"),
		BrevoSenderEmail: getEnvOrDefault("BREVO_SENDER_EMAIL", "no-reply@cargorealmandlogistics.com"),
		BrevoSenderName:  getEnvOrDefault("BREVO_SENDER_NAME", "Tofar Logistics Agency"),
		MailTimeout:      getEnvDuration("MAIL_TIMEOUT", 10*time.Second),

		JWTSecret: getEnvOrDefault("JWT_SECRET", "dev-secret"),
	}
}

func (c *Config) DatabaseURL() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}
