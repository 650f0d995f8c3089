// Package config resolves runtime configuration from the environment.
// The process expects its database coordinates to be supplied by the
// deployment (env vars or a .env file loaded by the command layer).
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"tariffmcp/logger"
)

// Config is the resolved runtime configuration.
type Config struct {
	DB  DBConfig
	Log logger.Config
}

// DBConfig holds the connection parameters for the tariff database.
type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string

	MaxConns       int
	MaxIdleConns   int
	ConnLifetime   time.Duration
	AcquireTimeout time.Duration
}

// DSN renders the keyword-form connection string for the pgx driver.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.Database)
}

// Load reads configuration from the environment, applying defaults for
// anything unset.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "electricity")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_LIFETIME", "1h")
	v.SetDefault("DB_ACQUIRE_TIMEOUT", "5s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("LOG_OUTPUT", "stderr")

	cfg := &Config{
		DB: DBConfig{
			Host:           v.GetString("DB_HOST"),
			Port:           v.GetInt("DB_PORT"),
			User:           v.GetString("DB_USER"),
			Password:       v.GetString("DB_PASSWORD"),
			Database:       v.GetString("DB_NAME"),
			MaxConns:       v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:   v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnLifetime:   v.GetDuration("DB_CONN_LIFETIME"),
			AcquireTimeout: v.GetDuration("DB_ACQUIRE_TIMEOUT"),
		},
		Log: logger.Config{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
			Output: v.GetString("LOG_OUTPUT"),
		},
	}

	if cfg.DB.Port <= 0 || cfg.DB.Port > 65535 {
		return nil, fmt.Errorf("config: invalid DB_PORT %d", cfg.DB.Port)
	}
	if cfg.DB.MaxConns <= 0 {
		return nil, fmt.Errorf("config: DB_MAX_CONNS must be positive, got %d", cfg.DB.MaxConns)
	}

	return cfg, nil
}
