package config

import (
	"os"
	"strconv"
)

// Config holds everything the process reads from the environment. It is
// built once in main and passed down; nothing else reads env vars.
type Config struct {
	Port  string
	DBURL string

	JWTSecret      string
	JWTExpiryHours int

	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioPhoneNumber string

	UploadDir string
}

func Load() *Config {
	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		DBURL:             os.Getenv("DB_URL"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		JWTExpiryHours:    24,
		TwilioAccountSID:  os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:   os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioPhoneNumber: os.Getenv("TWILIO_PHONE_NUMBER"),
		UploadDir:         getEnv("UPLOAD_DIR", "./uploads"),
	}

	if env := os.Getenv("JWT_EXPIRY_HOURS"); env != "" {
		if h, err := strconv.Atoi(env); err == nil {
			cfg.JWTExpiryHours = h
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
