package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config contains runtime configuration values.
type Config struct {
	Environment        string
	HTTPPort           string
	ServiceName        string
	DatabaseURL        string
	SessionJWTSecret   string
	DefaultCountryCode string

	VoiceAPIBaseURL  string
	VoiceAPIKey      string
	VoiceAssistantID string
	VoiceCallerID    string

	SMSAPIBaseURL string
	SMSAPIKey     string
	SMSFromNumber string

	PushWebhookSecret string

	RateLimitRPM         int
	TelemetryEndpoint    string
	TelemetryInsecure    bool
	CORSAllowedOrigins   []string
	CORSAllowedMethods   []string
	CORSAllowedHeaders   []string
	CORSAllowCredentials bool
}

// Load reads configuration from environment variables with sane defaults.
// Provider credentials are optional; the owning services degrade when they
// are absent. The database and session secret are structurally required.
func Load() (Config, error) {
	cfg := Config{
		Environment:        getEnv("APP_ENV", "development"),
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		ServiceName:        getEnv("SERVICE_NAME", "leadline-portal"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		SessionJWTSecret:   os.Getenv("SESSION_JWT_SECRET"),
		DefaultCountryCode: getEnv("DEFAULT_COUNTRY_CODE", "1"),

		VoiceAPIBaseURL:  getEnv("VOICE_API_BASE_URL", "https://api.vapi.ai"),
		VoiceAPIKey:      os.Getenv("VOICE_API_KEY"),
		VoiceAssistantID: os.Getenv("VOICE_ASSISTANT_ID"),
		VoiceCallerID:    os.Getenv("VOICE_CALLER_ID"),

		SMSAPIBaseURL: getEnv("SMS_API_BASE_URL", "https://api.telnyx.com/v2"),
		SMSAPIKey:     os.Getenv("SMS_API_KEY"),
		SMSFromNumber: os.Getenv("SMS_FROM_NUMBER"),

		PushWebhookSecret: os.Getenv("PUSH_WEBHOOK_SECRET"),

		RateLimitRPM:         getInt("RATE_LIMIT_RPM", 600),
		TelemetryEndpoint:    os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		TelemetryInsecure:    getBool("OTEL_EXPORTER_OTLP_INSECURE", true),
		CORSAllowedOrigins:   getList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		CORSAllowedMethods:   getList("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}),
		CORSAllowedHeaders:   getList("CORS_ALLOWED_HEADERS", []string{"Authorization", "Content-Type"}),
		CORSAllowCredentials: getBool("CORS_ALLOW_CREDENTIALS", false),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.SessionJWTSecret == "" {
		return Config{}, fmt.Errorf("SESSION_JWT_SECRET is required")
	}

	return cfg, nil
}

// VoiceConfigured reports whether outbound calling credentials are present.
func (c Config) VoiceConfigured() bool {
	return c.VoiceAPIKey != "" && c.VoiceAssistantID != ""
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		switch strings.ToLower(v) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}

func getList(key string, def []string) []string {
	if v, ok := os.LookupEnv(key); ok {
		parts := strings.Split(v, ",")
		var cleaned []string
		for _, p := range parts {
			trimmed := strings.TrimSpace(p)
			if trimmed != "" {
				cleaned = append(cleaned, trimmed)
			}
		}
		if len(cleaned) > 0 {
			return cleaned
		}
	}
	return def
}
