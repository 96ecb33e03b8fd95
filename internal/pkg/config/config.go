package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all runtime settings for the admin console and, when the demo
// backend is enabled, for the demo server as well.
type Config struct {
	// APIBaseURL is the root of the booking REST API the console talks to.
	APIBaseURL string `env:"API_BASE_URL, default=http://localhost:8080"`
	Env        string `env:"ENV,          default=development"`
	LogLevel   string `env:"LOG_LEVEL,    default=info"`

	// CredentialsDir is where the durable credential file lives. Empty means
	// <user config dir>/barberctl.
	CredentialsDir string `env:"CREDENTIALS_DIR"`

	Demo DemoConfig
}

// DemoConfig configures the feature-flagged demo backend. Mongo and Redis are
// optional; when their addresses are empty the demo server runs fully
// in-memory.
type DemoConfig struct {
	Port           string `env:"DEMO_PORT,            default=8080"`
	JWTSecret      string `env:"DEMO_JWT_SECRET,      default=demo-secret"`
	TokenTTLMin    int    `env:"DEMO_TOKEN_TTL_MIN,   default=60"`
	RefreshTTLHour int    `env:"DEMO_REFRESH_TTL_HR,  default=168"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"DEMO_MONGO_URI"`
	Database string `env:"DEMO_MONGO_DB, default=barberbook_demo"`
}

type RedisConfig struct {
	Addr string `env:"DEMO_REDIS_ADDR"`
	DB   int    `env:"DEMO_REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// ResolveCredentialsDir returns the directory for the durable credential
// file, creating it if needed.
func (c *Config) ResolveCredentialsDir() (string, error) {
	dir := c.CredentialsDir
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("config: resolve user config dir: %w", err)
		}
		dir = filepath.Join(base, "barberctl")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("config: create credentials dir: %w", err)
	}
	return dir, nil
}
