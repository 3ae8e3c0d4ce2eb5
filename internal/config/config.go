// Package config загружает настройки клиента и сервера из переменных окружения.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Ошибки валидации конфигурации
var (
	ErrInvalidDebounce  = errors.New("debounce must be positive")
	ErrInvalidThreshold = errors.New("threshold must be positive")
	ErrEmptyServerURL   = errors.New("server url is required")
	ErrEmptyDBPath      = errors.New("db path is required")
	ErrWeakJWTSecret    = errors.New("jwt secret must be at least 32 bytes")
	ErrInvalidTokenTTL  = errors.New("access token ttl must be positive")
	ErrInvalidLogLevel  = errors.New("unknown log level")
)

// Client настройки клиента.
type Client struct {
	ServerURL     string        `env:"PROGRESSKEEPER_SERVER_URL"     envDefault:"http://localhost:8080"`
	DBPath        string        `env:"PROGRESSKEEPER_DB"             envDefault:"progresskeeper-client.db"`
	LogLevel      string        `env:"PROGRESSKEEPER_LOG_LEVEL"      envDefault:"warn"`
	Debounce      time.Duration `env:"PROGRESSKEEPER_DEBOUNCE"       envDefault:"1s"`
	CommitTimeout time.Duration `env:"PROGRESSKEEPER_COMMIT_TIMEOUT" envDefault:"30s"`
	Threshold     int           `env:"PROGRESSKEEPER_THRESHOLD"      envDefault:"5"`
}

// Server настройки сервера.
type Server struct {
	Addr           string        `env:"PROGRESSKEEPER_ADDR"             envDefault:":8080"`
	DBPath         string        `env:"PROGRESSKEEPER_SERVER_DB"        envDefault:"progresskeeper-server.db"`
	JWTSecret      string        `env:"PROGRESSKEEPER_JWT_SECRET"`
	LogLevel       string        `env:"PROGRESSKEEPER_LOG_LEVEL"        envDefault:"info"`
	AccessTokenTTL time.Duration `env:"PROGRESSKEEPER_ACCESS_TOKEN_TTL" envDefault:"15m"`
	ShutdownGrace  time.Duration `env:"PROGRESSKEEPER_SHUTDOWN_GRACE"   envDefault:"10s"`
	RateLimit      int           `env:"PROGRESSKEEPER_RATE_LIMIT"       envDefault:"100"` // запросов в окно на IP
	RateWindow     time.Duration `env:"PROGRESSKEEPER_RATE_WINDOW"      envDefault:"1m"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadClient читает настройки клиента из окружения.
func LoadClient() (Client, error) {
	var cfg Client
	if err := ParseEnv(&cfg); err != nil {
		return Client{}, err
	}
	return cfg, nil
}

// LoadServer читает настройки сервера из окружения.
func LoadServer() (Server, error) {
	var cfg Server
	if err := ParseEnv(&cfg); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate проверяет настройки клиента.
func (c Client) Validate() error {
	if strings.TrimSpace(c.ServerURL) == "" {
		return ErrEmptyServerURL
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return ErrEmptyDBPath
	}
	if c.Debounce <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidDebounce, c.Debounce)
	}
	if c.Threshold <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidThreshold, c.Threshold)
	}
	if c.CommitTimeout <= 0 {
		return fmt.Errorf("commit timeout must be positive: %s", c.CommitTimeout)
	}
	return validateLogLevel(c.LogLevel)
}

// Validate проверяет настройки сервера.
func (s Server) Validate() error {
	if strings.TrimSpace(s.DBPath) == "" {
		return ErrEmptyDBPath
	}
	if len(s.JWTSecret) < 32 {
		return ErrWeakJWTSecret
	}
	if s.AccessTokenTTL <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTokenTTL, s.AccessTokenTTL)
	}
	if s.RateLimit <= 0 || s.RateWindow <= 0 {
		return fmt.Errorf("rate limit must be positive: %d per %s", s.RateLimit, s.RateWindow)
	}
	return validateLogLevel(s.LogLevel)
}

func validateLogLevel(level string) error {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, level)
	}
}
