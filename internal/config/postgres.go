package config

import (
	"errors"
	"fmt"
)

// ErrPostgresNotConfigured is returned when no POSTGRES_HOSTNAME is set.
// The result store is optional, so callers usually treat it as "skip".
var ErrPostgresNotConfigured = errors.New("postgres result store is not configured")

// PostgresConfig holds configuration for the result store connection
type PostgresConfig struct {
	User     string
	Password string
	Database string
	Host     string
	SSLMode  string

	// SearchPath pins the session to one schema when set
	SearchPath string
}

// LoadPostgresConfig loads PostgreSQL configuration from getenv
func LoadPostgresConfig(getenv func(string) string) (*PostgresConfig, error) {
	config := &PostgresConfig{
		User:     getenv("POSTGRES_USER"),
		Password: getenv("POSTGRES_PASSWORD"),
		Database: getenv("POSTGRES_DB"),
		Host:     getenv("POSTGRES_HOSTNAME"),
		SSLMode:  getenv("POSTGRES_SSLMODE"),
	}

	if config.Host == "" {
		return nil, ErrPostgresNotConfigured
	}
	if config.User == "" {
		return nil, fmt.Errorf("POSTGRES_USER is required")
	}
	if config.Database == "" {
		return nil, fmt.Errorf("POSTGRES_DB is required")
	}
	if config.SSLMode == "" {
		config.SSLMode = "disable"
	}

	return config, nil
}

// ConnectionString returns a lib/pq keyword/value connection string
func (c *PostgresConfig) ConnectionString() string {
	conn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Database, c.SSLMode)
	if c.SearchPath != "" {
		conn += " search_path=" + c.SearchPath
	}
	return conn
}
