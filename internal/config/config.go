package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
// It is built once at startup and injected into components as an immutable value.
type Config struct {
	ServerPort string
	MySQLDSN   string

	RedisAddr string
	RedisDB   int
	RedisPass string

	// JWTSecret signs session and confirmation tokens. An empty secret is a
	// fatal configuration error, checked by auth.NewJWTService.
	JWTSecret        string
	SessionTTL       time.Duration
	SessionCookieTTL time.Duration
	ConfirmTokenTTL  time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string

	// AppBaseURL is the frontend origin used to build confirmation and
	// password reset links sent by email.
	AppBaseURL string
}

// Load builds Config from environment with sensible defaults. A .env file is
// loaded when present (local dev) and silently skipped otherwise.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		MySQLDSN:   getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/chronotask?charset=utf8mb4&parseTime=True&loc=Local"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		RedisPass: os.Getenv("REDIS_PASSWORD"),

		JWTSecret:        os.Getenv("JWT_SECRET"),
		SessionTTL:       getEnvDuration("JWT_EXPIRES_IN", 72*time.Hour),
		SessionCookieTTL: time.Duration(getEnvInt("JWT_COOKIE_EXPIRES_IN", 3)) * 24 * time.Hour,
		ConfirmTokenTTL:  getEnvDuration("CONFIRM_TOKEN_EXPIRES_IN", 24*time.Hour),

		SMTPHost:     getEnv("EMAIL_HOST", "smtp.mailtrap.io"),
		SMTPPort:     getEnvInt("EMAIL_PORT", 2525),
		SMTPUsername: os.Getenv("EMAIL_USERNAME"),
		SMTPPassword: os.Getenv("EMAIL_PASSWORD"),
		EmailFrom:    getEnv("EMAIL_FROM", "Chronotask Team <no-reply@chronotask.io>"),

		AppBaseURL: getEnv("APP_BASE_URL", "http://localhost:3000"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
