package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	DBUrl       string
	// JWT Configuration (self-issued HS256 tokens)
	JWTSecret   string
	JWTTTLHours int
	// Allowed CORS origins (comma separated)
	AllowedOrigins []string
	// Redis Configuration
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitLoginThreshold  int
	RateLimitGlobalThreshold int
	// Migrations
	RunMigrations bool
	MigrationsDir string
	// Bootstrap admin (used by cmd/bootstrap only)
	BootstrapAdminName     string
	BootstrapAdminEmail    string
	BootstrapAdminPassword string
	// Audit Configuration
	AuditLogToDB bool // Whether to persist audit events to database
}

func LoadConfig() (*Config, error) {
	// Load .env file (effective locally, ignored in production when absent)
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("APP_ENV", "development"),
		DBUrl:          getEnv("DATABASE_URL", ""),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		JWTTTLHours:    getEnvInt("JWT_TTL_HOURS", 24),
		AllowedOrigins: splitOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")),
		RedisURL:       getEnv("REDIS_URL", ""),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		// Rate Limiting Configuration (with sensible defaults)
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitLoginThreshold:  getEnvInt("RATE_LIMIT_LOGIN_THRESHOLD", 5),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		RunMigrations:            getEnvBool("MIGRATIONS", false),
		MigrationsDir:            getEnv("MIGRATIONS_DIR", "migrations"),
		BootstrapAdminName:       getEnv("BOOTSTRAP_ADMIN_NAME", "Administrator"),
		BootstrapAdminEmail:      getEnv("BOOTSTRAP_ADMIN_EMAIL", "admin@silapor.com"),
		BootstrapAdminPassword:   getEnv("BOOTSTRAP_ADMIN_PASSWORD", "admin123"),
		AuditLogToDB:             getEnvBool("AUDIT_LOG_TO_DB", true),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.JWTSecret == "" {
		log.Println("WARNING: JWT_SECRET is missing. Issued tokens will not survive restarts.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

// splitOrigins parses a comma separated origin list, trimming whitespace and
// trailing slashes so origin comparison never sees double slashes.
func splitOrigins(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimRight(strings.TrimSpace(p), "/"); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
