package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	App     AppConfig
	Mail    MailConfig
	Catalog CatalogConfig
	Admin   AdminConfig
}

// AppConfig holds HTTP server configuration
type AppConfig struct {
	Port string
}

// MailConfig holds SMTP configuration for outbound notifications
type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string // From address; required for any notification send
}

// CatalogConfig holds validation limits and cache settings for the storefront
type CatalogConfig struct {
	ForbiddenWords    []string
	AllowedImageTypes []string
	MaxImageSize      int64
	ListingCacheTTL   time.Duration
}

// AdminConfig holds the bootstrap admin credentials
type AdminConfig struct {
	Email    string
	Password string
}

// DefaultForbiddenWords is used when FORBIDDEN_WORDS is not set
var DefaultForbiddenWords = []string{
	"casino", "cryptocurrency", "crypto", "exchange",
	"cheap", "free", "scam", "police", "radar",
}

// Load loads configuration from environment variables
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env")
	}

	return &Config{
		App: AppConfig{
			Port: getEnv("PORT", "3000"),
		},
		Mail: MailConfig{
			Host:     getEnv("MAIL_HOST", "localhost"),
			Port:     getEnvInt("MAIL_PORT", 587),
			Username: getEnv("MAIL_USERNAME", ""),
			Password: getEnv("MAIL_PASSWORD", ""),
			Sender:   getEnv("MAIL_SENDER", ""),
		},
		Catalog: CatalogConfig{
			ForbiddenWords:    getEnvList("FORBIDDEN_WORDS", DefaultForbiddenWords),
			AllowedImageTypes: getEnvList("ALLOWED_IMAGE_TYPES", []string{"image/jpeg", "image/png"}),
			MaxImageSize:      getEnvInt64("MAX_IMAGE_SIZE", 5*1024*1024),
			ListingCacheTTL:   getEnvDuration("LISTING_CACHE_TTL", 15*time.Minute),
		},
		Admin: AdminConfig{
			Email:    getEnv("ADMIN_EMAIL", "admin@example.com"),
			Password: getEnv("ADMIN_PASSWORD", "admin123"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
