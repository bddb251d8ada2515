// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	fakeapp "github.com/Flagsmith/fakeapp-go"
)

const (
	// Number of seconds to wait for a request to
	// complete before terminating the request.
	DefaultTimeout = 10 * time.Second

	// Default base URL for the API.
	DefaultBaseURL = "https://edge.api.flagsmith.com/api/v1/"

	EnvironmentKeyVar = "FLAGSMITH_ENVIRONMENT_KEY"
)

// ErrMissingEnvironmentKey is wrapped by the ConfigurationError returned when
// neither an environment key nor an offline environment is configured.
var ErrMissingEnvironmentKey = errors.New(EnvironmentKeyVar + " environment variable not set")

type Flagsmith struct {
	EnvironmentKey string        `env:"FLAGSMITH_ENVIRONMENT_KEY"`
	BaseURL        string        `env:"FLAGSMITH_API_URL" envDefault:"https://edge.api.flagsmith.com/api/v1/"`
	Timeout        time.Duration `env:"FLAGSMITH_REQUEST_TIMEOUT" envDefault:"10s"`
	Retries        int           `env:"FLAGSMITH_RETRIES" envDefault:"3"`
	RetryWait      time.Duration `env:"FLAGSMITH_RETRY_WAIT" envDefault:"1s"`
	// OfflineEnvironment is a path to an environment document; when set no
	// network calls are made.
	OfflineEnvironment string `env:"FLAGSMITH_OFFLINE_ENVIRONMENT"`
}

type Breaker struct {
	Failures uint32        `env:"FLAGSMITH_BREAKER_FAILURES" envDefault:"5"`
	Timeout  time.Duration `env:"FLAGSMITH_BREAKER_TIMEOUT" envDefault:"30s"`
}

type HTTP struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

type Config struct {
	Flagsmith Flagsmith
	Breaker   Breaker
	HTTP      HTTP
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	// the .env file is optional
	_ = godotenv.Load()
	return parse(env.Options{})
}

// LoadFrom reads configuration from environ only.
func LoadFrom(environ map[string]string) (Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fakeapp.NewConfigurationError("invalid configuration: %v", err)
	}
	if cfg.Flagsmith.EnvironmentKey == "" && cfg.Flagsmith.OfflineEnvironment == "" {
		return Config{}, fakeapp.WrapConfigurationError(ErrMissingEnvironmentKey)
	}
	return cfg, nil
}

// Level maps LogLevel onto a slog level, defaulting to info.
func (c Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
