package config

import (
	"fmt"
	"time"

	"github.com/rezkam/todo/internal/env"
)

// ServerConfig holds all configuration for the server binary.
type ServerConfig struct {
	Database        DatabaseConfig
	HTTP            HTTPConfig
	Observability   ObservabilityConfig
	ShutdownTimeout time.Duration `env:"TODO_SHUTDOWN_TIMEOUT" default:"10s"`
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Host              string        `env:"TODO_HTTP_HOST" default:"0.0.0.0"`
	Port              string        `env:"TODO_HTTP_PORT" default:"3000"`
	ReadTimeout       time.Duration `env:"TODO_HTTP_READ_TIMEOUT"`
	WriteTimeout      time.Duration `env:"TODO_HTTP_WRITE_TIMEOUT"`
	IdleTimeout       time.Duration `env:"TODO_HTTP_IDLE_TIMEOUT"`
	ReadHeaderTimeout time.Duration `env:"TODO_HTTP_READ_HEADER_TIMEOUT"`
	MaxHeaderBytes    int           `env:"TODO_HTTP_MAX_HEADER_BYTES"`
	MaxBodyBytes      int64         `env:"TODO_HTTP_MAX_BODY_BYTES"`
	CORSOrigins       []string      `env:"TODO_HTTP_CORS_ORIGINS" default:"*"`
}

// Addr returns the listen address in host:port form.
func (c HTTPConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// LoadServerConfig loads and validates server configuration from environment.
func LoadServerConfig() (*ServerConfig, error) {
	cfg := &ServerConfig{}

	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}

	return cfg, nil
}
