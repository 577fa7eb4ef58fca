package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	AllowedOrigin string
	LogLevel      string
	// Conversational backend the relay forwards user messages to.
	APIEndpoint string
	APITimeout  time.Duration
	// Local product catalog JSON file.
	CatalogFile string
	// Optional Twilio credentials, only needed for proactive sends.
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
}

// Load reads configuration from the environment. A missing API_ENDPOINT is
// the only fatal condition; everything else has a default or is optional.
func Load() (Config, error) {
	_ = godotenv.Load()
	cfg := Config{
		Port:             getEnvDefault("PORT", "8080"),
		AllowedOrigin:    getEnvDefault("ALLOWED_ORIGIN", "*"),
		LogLevel:         getEnvDefault("LOG_LEVEL", "info"),
		APIEndpoint:      os.Getenv("API_ENDPOINT"),
		APITimeout:       time.Duration(getEnvIntDefault("API_TIMEOUT_SECONDS", 15)) * time.Second,
		CatalogFile:      getEnvDefault("CATALOG_FILE", "company-information.json"),
		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber: os.Getenv("TWILIO_FROM_NUMBER"),
	}
	if cfg.APIEndpoint == "" {
		return Config{}, errors.New("API_ENDPOINT environment variable not set")
	}
	return cfg, nil
}

// ProactiveEnabled reports whether the optional Twilio REST credentials are
// present.
func (c Config) ProactiveEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioFromNumber != ""
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvIntDefault(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
