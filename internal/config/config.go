package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Environment string
	ServerPort  string

	DBDriver    string
	DatabaseDSN string

	JWTSecret     string
	PublicBaseURL string

	RedisAddr string
	RedisDB   int
	RedisPass string

	LoginMaxAttempts   int
	LoginAttemptWindow time.Duration

	MailHost     string
	MailPort     int
	MailUsername string
	MailPassword string
	MailFrom     string
	MailFromName string
}

// Load builds Config from environment with sensible defaults. A .env file in the
// working directory is read first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Environment: getEnv("APP_ENV", "production"),
		ServerPort:  getEnv("SERVER_PORT", "8080"),

		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		DatabaseDSN: getEnv("DATABASE_DSN", "user:password@tcp(localhost:3306)/expenses?charset=utf8mb4&parseTime=True&loc=UTC"),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		PublicBaseURL: strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),

		RedisAddr: os.Getenv("REDIS_ADDR"),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		RedisPass: os.Getenv("REDIS_PASSWORD"),

		LoginMaxAttempts:   getEnvInt("LOGIN_MAX_ATTEMPTS", 5),
		LoginAttemptWindow: getEnvDuration("LOGIN_ATTEMPT_WINDOW", 15*time.Minute),

		MailHost:     os.Getenv("MAIL_HOST"),
		MailPort:     getEnvInt("MAIL_PORT", 587),
		MailUsername: os.Getenv("MAIL_USERNAME"),
		MailPassword: os.Getenv("MAIL_PASSWORD"),
		MailFrom:     os.Getenv("MAIL_FROM"),
		MailFromName: getEnv("MAIL_FROM_NAME", "Expense Tracker"),
	}
}

// IsDevelopment reports whether the process runs with APP_ENV=development.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Validate returns an error listing every invalid setting.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.ServerPort); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.ServerPort))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		problems = append(problems, fmt.Sprintf("invalid DB_DRIVER '%s': must be one of mysql, postgres, sqlite", c.DBDriver))
	}

	if c.DatabaseDSN == "" {
		problems = append(problems, "DATABASE_DSN is required")
	}

	if c.JWTSecret == "" {
		if c.IsDevelopment() {
			c.JWTSecret = "change-me"
		} else {
			problems = append(problems, "JWT_SECRET is required outside development")
		}
	}

	if c.LoginMaxAttempts < 1 {
		problems = append(problems, "LOGIN_MAX_ATTEMPTS must be at least 1")
	}

	if c.MailHost != "" && c.MailFrom == "" {
		problems = append(problems, "MAIL_FROM is required when MAIL_HOST is set")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
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
