package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingSecret is returned when no JWT secret is configured. Serving
// traffic without a signing secret is a configuration error, not a
// per-request one.
var ErrMissingSecret = errors.New("JWT_SECRET is not set")

// Config holds all configuration for the application
type Config struct {
	AppMode        string
	Port           string
	MasterPassword string
	Database       DatabaseConfig
	JWT            JWTConfig
	Cookie         CookieConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds token configuration
type JWTConfig struct {
	Secret     string
	SessionTTL time.Duration
	SignupTTL  time.Duration
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
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

	// Get APP_MODE (default to "dev") - trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	jwtConfig, err := loadJWTConfig(appMode)
	if err != nil {
		return nil, err
	}

	config := &Config{
		AppMode:        appMode,
		Port:           getEnv("PORT", "5000"),
		MasterPassword: getEnv("MASTER_PASSWORD", ""),
		Database:       loadDatabaseConfig(appMode),
		JWT:            jwtConfig,
		Cookie:         loadCookieConfig(appMode),
	}

	// Set global config
	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// loadDatabaseConfig loads database config based on mode
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
		DBName:   getEnv(prefix+"DB_NAME", "staffhub"),
	}
}

// loadJWTConfig loads token config based on mode. A missing signing
// secret is fatal: tokens could neither be issued nor verified.
func loadJWTConfig(mode string) (JWTConfig, error) {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	secret := strings.TrimSpace(getEnv(prefix+"JWT_SECRET", getEnv("JWT_SECRET", "")))
	if secret == "" {
		return JWTConfig{}, ErrMissingSecret
	}

	sessionHours, _ := strconv.Atoi(getEnv("SESSION_TOKEN_HOURS", "24"))
	signupMins, _ := strconv.Atoi(getEnv("SIGNUP_TOKEN_MINUTES", "5"))

	return JWTConfig{
		Secret:     secret,
		SessionTTL: time.Duration(sessionHours) * time.Hour,
		SignupTTL:  time.Duration(signupMins) * time.Minute,
	}, nil
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	secure, _ := strconv.ParseBool(getEnv(prefix+"COOKIE_SECURE", "false"))

	sameSite := getEnv("COOKIE_SAMESITE", "lax")
	if mode == "prod" {
		sameSite = getEnv("COOKIE_SAMESITE", "none")
	}

	return CookieConfig{
		Secure:   secure,
		SameSite: sameSite,
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "http://localhost:5174"
		}
		return "https://staffhub.example.com"
	}
	return origins
}
