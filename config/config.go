// Package config loads process configuration for the auth server.
//
// Sources, later overriding earlier: built-in defaults, an optional YAML
// file, then environment variables with the SCHOOLWARD__ prefix
// (SCHOOLWARD__AUTH__SECRET → auth.secret).
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "SCHOOLWARD__"

// Config is the process configuration for the auth server.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Auth      AuthConfig      `koanf:"auth"`
	Database  DatabaseConfig  `koanf:"database"`
	RateLimit RateLimitConfig `koanf:"ratelimit"`
	Health    HealthConfig    `koanf:"health"`
}

type ServerConfig struct {
	Addr string `koanf:"addr"`
}

type AuthConfig struct {
	// Secret signs every session token. Injected, never hard-coded;
	// must be at least 32 bytes.
	Secret string `koanf:"secret"`

	TokenTTL   time.Duration `koanf:"tokenttl"`
	ClockSkew  time.Duration `koanf:"clockskew"`
	CookieName string        `koanf:"cookiename"`

	// ExposePasswordClaim restores the legacy profile shape that included
	// the password hash. Keep off unless a downstream consumer still
	// needs it.
	ExposePasswordClaim bool `koanf:"exposepasswordclaim"`
}

type DatabaseConfig struct {
	Driver string `koanf:"driver"`
	DSN    string `koanf:"dsn"`
}

type RateLimitConfig struct {
	LoginAttempts int           `koanf:"loginattempts"`
	Window        time.Duration `koanf:"window"`
}

type HealthConfig struct {
	// CronSpec schedules the periodic store ping.
	CronSpec string `koanf:"cronspec"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"server.addr":              ":8080",
		"auth.tokenttl":            time.Hour,
		"auth.clockskew":           60 * time.Second,
		"auth.cookiename":          "token",
		"auth.exposepasswordclaim": false,
		"database.driver":          "sqlite3",
		"database.dsn":             "schoolward.db",
		"ratelimit.loginattempts":  10,
		"ratelimit.window":         time.Minute,
		"health.cronspec":          "@every 1m",
	}
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, then validates it. An empty path skips the file source; a
// named file that does not exist is an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("config: defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", transformEnv), nil); err != nil {
		return nil, fmt.Errorf("config: env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// transformEnv maps SCHOOLWARD__AUTH__SECRET to auth.secret
func transformEnv(key string) string {
	key = strings.TrimPrefix(key, EnvPrefix)
	key = strings.ToLower(key)
	return strings.ReplaceAll(key, "__", ".")
}

func (c *Config) validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("config: server.addr cannot be empty")
	}
	if len(c.Auth.Secret) < 32 {
		return fmt.Errorf("config: auth.secret must be at least 32 bytes, got %d", len(c.Auth.Secret))
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("config: auth.tokenttl must be positive")
	}
	if c.Database.Driver != "sqlite3" && c.Database.Driver != "postgres" {
		return fmt.Errorf("config: database.driver must be sqlite3 or postgres, got %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("config: database.dsn cannot be empty")
	}
	if c.RateLimit.LoginAttempts < 0 {
		return fmt.Errorf("config: ratelimit.loginattempts cannot be negative")
	}
	return nil
}
