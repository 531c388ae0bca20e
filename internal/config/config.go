// Package config loads the application configuration from environment
// variables with sensible defaults.
package config

import (
	"os"
	"strconv"

	"github.com/isufellowship/attendance-bot/internal/model"
)

// Config holds the application configuration.
type Config struct {
	Port          int
	DBPath        string
	VerifyToken   string // webhook handshake secret
	WhatsAppToken string // Cloud API bearer token
	PhoneNumberID string // sending phone number id
	GroupID       string // digest broadcast recipient
	DigestTime    string // daily digest fire time, HH:MM local
	GraphAPIURL   string // Cloud API base URL, overridable for tests
}

// Load reads configuration from environment variables or defaults.
func Load() *Config {
	return &Config{
		Port:          getEnvInt("PORT", 8080),
		DBPath:        getEnv("DB_PATH", "data/attendance.db"),
		VerifyToken:   getEnv("VERIFY_TOKEN", ""),
		WhatsAppToken: getEnv("WHATSAPP_TOKEN", ""),
		PhoneNumberID: getEnv("PHONE_NUMBER_ID", ""),
		GroupID:       getEnv("GROUP_ID", ""),
		DigestTime:    getEnv("DIGEST_TIME", "21:00"),
		GraphAPIURL:   getEnv("GRAPH_API_URL", "https://graph.facebook.com/v20.0"),
	}
}

// DayChoices returns the fixed attendance day option set, in prompt order.
func (c *Config) DayChoices() []model.ButtonOption {
	return []model.ButtonOption{
		{ID: "sat", Label: "Saturday"},
		{ID: "mon", Label: "Monday"},
		{ID: "wed", Label: "Wednesday"},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
