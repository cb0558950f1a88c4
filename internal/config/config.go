package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config contains runtime configuration values.
type Config struct {
	Env                string
	Port               string
	DBDriver           string
	DatabaseDSN        string
	AccessTokenSecret  string
	AccessTokenTTL     time.Duration
	BcryptCost         int
	RabbitMQURL        string
	RabbitMQExchange   string
	RabbitMQQueue      string
	CORSAllowedOrigins []string
	LoginRateLimit     int
	AdminEmail         string
	AdminPassword      string
}

// Load reads configuration from an optional config.yaml in the working
// directory, overridden by environment variables.
func Load() (Config, error) {
	v := viper.New()
	v.SetDefault("APP_ENV", EnvDevelopment)
	v.SetDefault("APP_PORT", ":3500")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "file:building.db?cache=shared")
	v.SetDefault("ACCESS_TOKEN_SECRET", "")
	v.SetDefault("ACCESS_TOKEN_TTL", 15*time.Minute)
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_EXCHANGE", "building.events")
	v.SetDefault("RABBITMQ_QUEUE", "building_events")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.SetDefault("LOGIN_RATE_LIMIT", 5)
	v.SetDefault("ADMIN_EMAIL", "")
	v.SetDefault("ADMIN_PASSWORD", "")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	v.AutomaticEnv()

	cfg := Config{
		Env:               v.GetString("APP_ENV"),
		Port:              v.GetString("APP_PORT"),
		DBDriver:          v.GetString("DB_DRIVER"),
		DatabaseDSN:       v.GetString("DATABASE_DSN"),
		AccessTokenSecret: v.GetString("ACCESS_TOKEN_SECRET"),
		AccessTokenTTL:    v.GetDuration("ACCESS_TOKEN_TTL"),
		BcryptCost:        v.GetInt("BCRYPT_COST"),
		RabbitMQURL:       v.GetString("RABBITMQ_URL"),
		RabbitMQExchange:  v.GetString("RABBITMQ_EXCHANGE"),
		RabbitMQQueue:     v.GetString("RABBITMQ_QUEUE"),
		LoginRateLimit:    v.GetInt("LOGIN_RATE_LIMIT"),
		AdminEmail:        v.GetString("ADMIN_EMAIL"),
		AdminPassword:     v.GetString("ADMIN_PASSWORD"),
	}
	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = defaultOrigins(cfg.Env)
	}

	if cfg.AccessTokenSecret == "" {
		if cfg.Env != EnvDevelopment {
			return Config{}, fmt.Errorf("ACCESS_TOKEN_SECRET is required in %s", cfg.Env)
		}
		cfg.AccessTokenSecret = "development-access-token-secret"
	}
	if cfg.LoginRateLimit <= 0 {
		return Config{}, fmt.Errorf("LOGIN_RATE_LIMIT must be positive")
	}
	return cfg, nil
}

func defaultOrigins(env string) []string {
	if env == EnvProduction {
		return []string{"https://building-management.onrender.com"}
	}
	return []string{"http://localhost:3000"}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
