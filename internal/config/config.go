package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	CORS     CORSConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Port string
	Host string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type AuthConfig struct {
	// Strategy selects the session resolution strategy: delegated, local,
	// header, or static (dev builds only).
	Strategy string

	// Shared secret and expected issuer for locally verified session tokens.
	JWTSecret string
	JWTIssuer string

	// Exact session cookie name. When empty the resolver falls back to the
	// provider's naming convention (sb-<ref>-auth-token).
	CookieName string

	ProviderURL     string
	ProviderKey     string
	ProviderTimeout time.Duration

	// StaticUserID is only consulted by the static strategy, which is
	// compiled out of production binaries.
	StaticUserID string
}

type CORSConfig struct {
	AllowedOrigins string
	AllowedMethods string
	AllowedHeaders string
}

type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	godotenv.Load()

	providerTimeout, err := time.ParseDuration(getEnv("IDENTITY_PROVIDER_TIMEOUT", "3s"))
	if err != nil {
		return nil, fmt.Errorf("invalid IDENTITY_PROVIDER_TIMEOUT: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Host: getEnv("HOST", "0.0.0.0"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "notes"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Auth: AuthConfig{
			Strategy:        getEnv("AUTH_STRATEGY", "delegated"),
			JWTSecret:       getEnv("JWT_SECRET", ""),
			JWTIssuer:       getEnv("JWT_ISSUER", ""),
			CookieName:      getEnv("SESSION_COOKIE_NAME", ""),
			ProviderURL:     getEnv("IDENTITY_PROVIDER_URL", ""),
			ProviderKey:     getEnv("IDENTITY_PROVIDER_KEY", ""),
			ProviderTimeout: providerTimeout,
			StaticUserID:    getEnv("DEV_USER_ID", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			AllowedMethods: getEnv("CORS_ALLOWED_METHODS", "GET,POST,PUT,DELETE,OPTIONS"),
			AllowedHeaders: getEnv("CORS_ALLOWED_HEADERS", "Content-Type,Authorization"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func (c DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
