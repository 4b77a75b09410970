package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	LogLevel        string
	LogFormat       string
	DatabaseURL     string
	JWTSecret       string
	TokenTTL        time.Duration
	Timezone        string
	ChartWindowDays int
	MigrateOnStart  bool
	ShutdownTimeout time.Duration
}

// New loads an optional .env file and reads the configuration from the
// environment. Values already set in the environment win over .env.
func New() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("PORT", "8080"),
		LogLevel:        os.Getenv("LOGLEVEL"),
		LogFormat:       getEnv("LOGFORMAT", "json"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		JWTSecret:       os.Getenv("JWTSECRET"),
		TokenTTL:        getEnvDuration("TOKENTTL", 7*24*time.Hour),
		Timezone:        getEnv("TIMEZONE", "UTC"),
		ChartWindowDays: getEnvInt("CHARTWINDOWDAYS", 90),
		MigrateOnStart:  getEnvBool("MIGRATEONSTART", true),
		ShutdownTimeout: getEnvDuration("SHUTDOWNTIMEOUT", 10*time.Second),
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid PORT %q", c.Port))
	}
	if c.DatabaseURL == "" {
		problems = append(problems, "DATABASE_URL is required")
	}
	if len(c.JWTSecret) < 16 {
		problems = append(problems, "JWTSECRET must be at least 16 characters")
	}
	if c.TokenTTL <= 0 {
		problems = append(problems, "TOKENTTL must be positive")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		problems = append(problems, fmt.Sprintf("invalid TIMEZONE %q", c.Timezone))
	}
	if c.ChartWindowDays < 1 {
		problems = append(problems, "CHARTWINDOWDAYS must be at least 1")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Location returns the time zone used to decide what "today" is.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ---- Helpers ----

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}
