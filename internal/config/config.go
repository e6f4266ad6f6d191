package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	ServerPort    int
	DatabasePath  string
	JWTSecret     string
	TokenTTL      time.Duration
	SweepSchedule string // standard cron expression
	CORSOrigin    string
	AppEnv        string // "production" turns on Secure cookies
}

// fileConfig mirrors Config for the yaml file; durations are Go duration
// strings like "1h" or "30m".
type fileConfig struct {
	Port          int    `yaml:"port"`
	DatabasePath  string `yaml:"database_path"`
	JWTSecret     string `yaml:"jwt_secret"`
	TokenTTL      string `yaml:"token_ttl"`
	SweepSchedule string `yaml:"sweep_schedule"`
	CORSOrigin    string `yaml:"cors_origin"`
	AppEnv        string `yaml:"app_env"`
}

// Load reads an optional config.yaml, overlays environment variables on top,
// and validates the result. The JWT secret and database path have no safe
// defaults; missing either is a fatal configuration error.
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:    8080,
		TokenTTL:      time.Hour,
		SweepSchedule: "*/15 * * * *",
		CORSOrigin:    "http://localhost:3000",
	}

	if f, err := os.Open("config.yaml"); err == nil {
		defer f.Close()
		var fc fileConfig
		if err := yaml.NewDecoder(f).Decode(&fc); err != nil {
			return nil, err
		}
		if fc.Port != 0 {
			cfg.ServerPort = fc.Port
		}
		if fc.DatabasePath != "" {
			cfg.DatabasePath = fc.DatabasePath
		}
		if fc.JWTSecret != "" {
			cfg.JWTSecret = fc.JWTSecret
		}
		if fc.TokenTTL != "" {
			ttl, err := time.ParseDuration(fc.TokenTTL)
			if err != nil {
				return nil, err
			}
			cfg.TokenTTL = ttl
		}
		if fc.SweepSchedule != "" {
			cfg.SweepSchedule = fc.SweepSchedule
		}
		if fc.CORSOrigin != "" {
			cfg.CORSOrigin = fc.CORSOrigin
		}
		if fc.AppEnv != "" {
			cfg.AppEnv = fc.AppEnv
		}
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, err
		}
		cfg.ServerPort = port
	}
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, err
		}
		cfg.TokenTTL = ttl
	}
	if v := os.Getenv("SWEEP_SCHEDULE"); v != "" {
		cfg.SweepSchedule = v
	}
	if v := os.Getenv("CORS_ORIGIN"); v != "" {
		cfg.CORSOrigin = v
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.AppEnv = v
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("config: JWT_SECRET is required")
	}
	if cfg.DatabasePath == "" {
		return nil, errors.New("config: DATABASE_PATH is required")
	}
	if cfg.TokenTTL <= 0 {
		return nil, errors.New("config: token TTL must be positive")
	}

	return cfg, nil
}

// IsProduction reports whether the service runs with production hardening.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
