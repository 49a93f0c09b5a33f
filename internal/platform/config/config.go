// Package config loads server settings from HIPSTER_TRAIL_* environment
// variables, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr         string `env:"ADDR" envDefault:":8080"`
	ObserverAddr string `env:"OBSERVER_ADDR"`
	CORSOrigin   string `env:"CORS_ORIGIN"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`

	ChatURL   string `env:"CHAT_URL"`
	ChatKey   string `env:"CHAT_KEY"`
	ChatModel string `env:"CHAT_MODEL" envDefault:"gpt-4o-mini"`

	ProxyURL   string `env:"PROXY_URL"`
	ProxyKey   string `env:"PROXY_KEY"`
	ProxyModel string `env:"PROXY_MODEL"`

	DiffusionURL string `env:"DIFFUSION_URL"`

	GeminiKey   string `env:"GEMINI_KEY"`
	GeminiModel string `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`

	TextTimeout  time.Duration `env:"TEXT_TIMEOUT" envDefault:"20s"`
	ImageTimeout time.Duration `env:"IMAGE_TIMEOUT" envDefault:"60s"`

	EventBuffer     int    `env:"EVENT_BUFFER" envDefault:"200"`
	EventArchiveDir string `env:"EVENT_ARCHIVE_DIR"`

	DBDSN         string `env:"DB_DSN"`
	MigrationsDir string `env:"MIGRATIONS_DIR" envDefault:"./migrations"`

	OTelEndpoint string `env:"OTEL_ENDPOINT"`
}

const envPrefix = "HIPSTER_TRAIL_"

// Load reads the optional dotenv files first; variables already present in
// the process environment win over file values.
func Load(dotenvFiles ...string) (Config, error) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return Parse()
}

func Parse() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.EventBuffer <= 0 {
		return Config{}, fmt.Errorf("parse env: %sEVENT_BUFFER must be positive, got %d", envPrefix, cfg.EventBuffer)
	}
	return cfg, nil
}

func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
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
