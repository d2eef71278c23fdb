package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/Badalsingh25/CraftConnect/utils"
	"github.com/joho/godotenv"
)

// RazorpayConfig holds payment gateway credentials
type RazorpayConfig struct {
	KeyID         string
	KeySecret     string
	WebhookSecret string
}

// Enabled reports whether payment intents can be created
func (r RazorpayConfig) Enabled() bool {
	return r.KeyID != "" && r.KeySecret != ""
}

// Config holds all configuration for the application
type Config struct {
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	JWTSecret      string
	Port           string
	Env            string
	FrontendOrigin string
	AdminEmail     string
	Razorpay       RazorpayConfig
	Mail           utils.EmailConfig
}

// LoadConfig loads configuration from the environment. A .env file is read
// when present.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %v", err)
	}

	smtpPort := utils.DefaultSMTPPort
	if raw := os.Getenv("SMTP_PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP_PORT %q: %v", raw, err)
		}
		smtpPort = port
	}

	config := &Config{
		DBHost:         getEnv("DB_HOST", utils.DefaultDBHost),
		DBPort:         getEnv("DB_PORT", utils.DefaultDBPort),
		DBUser:         getEnv("DB_USER", utils.DefaultDBUser),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         getEnv("DB_NAME", utils.DefaultDBName),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		Port:           getEnv("PORT", utils.DefaultPort),
		Env:            getEnv("ENV", "development"),
		FrontendOrigin: getEnv("FRONTEND_ORIGIN", "*"),
		AdminEmail:     os.Getenv("ADMIN_EMAIL"),
		Razorpay: RazorpayConfig{
			KeyID:         os.Getenv("RAZORPAY_KEY_ID"),
			KeySecret:     os.Getenv("RAZORPAY_KEY_SECRET"),
			WebhookSecret: os.Getenv("RAZORPAY_WEBHOOK_SECRET"),
		},
		Mail: utils.EmailConfig{
			Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     smtpPort,
			Username: getEnv("SMTP_USERNAME", os.Getenv("ADMIN_EMAIL")),
			Password: getEnv("SMTP_PASSWORD", os.Getenv("ADMIN_EMAIL_APP_PASSWORD")),
			From:     getEnv("SMTP_FROM", os.Getenv("ADMIN_EMAIL")),
		},
	}

	if config.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return config, nil
}

// DSN builds the PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
