package infra

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv             string
	Port               string
	RedisURL           string
	AdminPassword      string
	GeoIPDBPath        string
	GeminiAPIKey       string
	GeminiModel        string
	GeminiBaseURL      string
	CORSAllowedOrigins []string
	HTTPReadTimeout    time.Duration
	HTTPWriteTimeout   time.Duration
	HTTPIdleTimeout    time.Duration
	StoreTimeout       time.Duration
	SessionTTL         time.Duration
}

// DefaultAdminPassword is the fallback admin secret. Any real deployment must
// override it via ADMIN_PASSWORD; main logs a warning when it is left in place.
const DefaultAdminPassword = "admin123"

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		Port:               getEnv("PORT", "8080"),
		RedisURL:           os.Getenv("REDIS_URL"),
		AdminPassword:      getEnv("ADMIN_PASSWORD", DefaultAdminPassword),
		GeoIPDBPath:        os.Getenv("GEOIP_DB_PATH"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GeminiModel:        getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiBaseURL:      getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		CORSAllowedOrigins: splitCSV(os.Getenv("CORS_ALLOWED_ORIGINS")),
		HTTPReadTimeout:    time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:   time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:    time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		StoreTimeout:       time.Second * time.Duration(getEnvInt("STORE_TIMEOUT_SECONDS", 5)),
		SessionTTL:         time.Second * time.Duration(getEnvInt("SESSION_TTL_SECONDS", 86400)),
	}

	return cfg, nil
}

// UsesDefaultAdminPassword reports whether the admin secret was left at its
// built-in fallback value.
func (c *Config) UsesDefaultAdminPassword() bool {
	return c.AdminPassword == DefaultAdminPassword
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
