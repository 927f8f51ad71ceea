package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string
	Port     string
	Backend  BackendConfig
	Database DatabaseConfig
	Session  SessionConfig
	Cookie   CookieConfig
}

// BackendConfig holds the upstream food-business API configuration
type BackendConfig struct {
	BaseURL string        // e.g. http://localhost:8080/api
	Timeout time.Duration // per-request timeout
}

// DatabaseConfig holds database configuration (session store)
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// SessionConfig holds session lifetime configuration
type SessionConfig struct {
	TTLDays int // also the credential cookie expiry
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Name     string
	Secure   bool
	SameSite string
	Domain   string
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "3000"),
		Backend:  loadBackendConfig(),
		Database: loadDatabaseConfig(appMode),
		Session:  loadSessionConfig(),
		Cookie:   loadCookieConfig(appMode),
	}

	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// loadBackendConfig loads the upstream API config
func loadBackendConfig() BackendConfig {
	timeoutSecs := getEnvInt("BACKEND_TIMEOUT_SECS", 30)

	return BackendConfig{
		BaseURL: strings.TrimRight(getEnv("BACKEND_BASE_URL", "http://localhost:8080/api"), "/"),
		Timeout: time.Duration(timeoutSecs) * time.Second,
	}
}

// loadDatabaseConfig loads session-store database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "foodlink_admin"),
	}
}

// loadSessionConfig loads session lifetime config
func loadSessionConfig() SessionConfig {
	return SessionConfig{
		TTLDays: getEnvInt("SESSION_TTL_DAYS", 7),
	}
}

// loadCookieConfig loads credential cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	secure := mode == "prod"
	if v := os.Getenv("COOKIE_SECURE"); v != "" {
		secure = v == "true"
	}

	return CookieConfig{
		Name:     getEnv("COOKIE_NAME", "token"),
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "Lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// SessionTTL returns the session lifetime as a duration
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTLDays) * 24 * time.Hour
}

// getEnv gets environment variable with fallback
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvInt gets environment variable as int with fallback
func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
