// Package config loads server configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// ServerConfig holds settings for the HTTP server and its backing store.
type ServerConfig struct {
	Port        int
	DatabaseURL string
	MemoryStore bool // run against the in-process store, no database
	LogLevel    string
	LogFormat   string // "json" or "console"
}

// NewServerConfig builds the server configuration from environment
// variables: PORT (default 8080), DATABASE_URL, MEMORY_STORE, LOG_LEVEL
// (default "info") and LOG_FORMAT (default "json").
func NewServerConfig() (*ServerConfig, error) {
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %v", err)
	}

	cfg := &ServerConfig{
		Port:        port,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		MemoryStore: os.Getenv("MEMORY_STORE") == "true",
		LogLevel:    os.Getenv("LOG_LEVEL"),
		LogFormat:   os.Getenv("LOG_FORMAT"),
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "json"
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalize validates the configuration.
func (c *ServerConfig) normalize() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if !c.MemoryStore && c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required unless MEMORY_STORE=true")
	}
	if c.LogFormat != "json" && c.LogFormat != "console" {
		return fmt.Errorf("invalid LOG_FORMAT: %s (must be json or console)", c.LogFormat)
	}
	return nil
}
