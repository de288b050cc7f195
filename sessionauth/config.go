package sessionauth

import (
	"fmt"
	"log/slog"
	"time"
)

const (
	// DefaultCookieName is the cookie the session token travels in.
	DefaultCookieName = "token"

	// DefaultTokenTTL is the fixed lifetime of a freshly minted token.
	DefaultTokenTTL = time.Hour
)

// Config holds immutable configuration shared by the issuer, refresher and
// guards. The signing secret is injected once at construction and never
// mutated afterwards.
type Config struct {
	secret              []byte
	tokenTTL            time.Duration
	clockSkewLeeway     time.Duration
	cookieName          string
	logger              *slog.Logger
	exposePasswordClaim bool
}

// Option is a functional option for configuring the session core
type Option func(*Config) error

// NewConfig creates a new immutable configuration with the given options
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		tokenTTL:        DefaultTokenTTL,
		clockSkewLeeway: 60 * time.Second,
		cookieName:      DefaultCookieName,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, NewAuthError(ErrConfigError, fmt.Sprintf("configuration error: %v", err), err)
		}
	}

	if len(cfg.secret) == 0 {
		return nil, NewAuthError(ErrConfigError, "a signing secret is required (use WithSecret)", nil)
	}

	return cfg, nil
}

// WithSecret sets the HMAC-SHA256 signing secret shared by issuance and
// verification
func WithSecret(secret []byte) Option {
	return func(c *Config) error {
		if len(secret) < 32 {
			return fmt.Errorf("signing secret must be at least 32 bytes (256 bits), got %d bytes", len(secret))
		}
		c.secret = secret
		return nil
	}
}

// WithTokenTTL sets the lifetime of freshly issued tokens
func WithTokenTTL(ttl time.Duration) Option {
	return func(c *Config) error {
		if ttl <= 0 {
			return fmt.Errorf("token TTL must be positive, got %v", ttl)
		}
		c.tokenTTL = ttl
		return nil
	}
}

// WithClockSkew sets the clock skew tolerance for exp/nbf validation
func WithClockSkew(skew time.Duration) Option {
	return func(c *Config) error {
		if skew < 0 {
			return fmt.Errorf("clock skew must be non-negative, got %v", skew)
		}
		c.clockSkewLeeway = skew
		return nil
	}
}

// WithCookie overrides the name of the session cookie
func WithCookie(cookieName string) Option {
	return func(c *Config) error {
		if cookieName == "" {
			return fmt.Errorf("cookie name cannot be empty")
		}
		c.cookieName = cookieName
		return nil
	}
}

// WithLogger sets a structured logger for security events
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) error {
		c.logger = logger
		return nil
	}
}

// WithExposePasswordClaim keeps the legacy "password" claim visible in
// profile responses. Off by default; only enable for clients that still
// depend on the original wire shape.
func WithExposePasswordClaim() Option {
	return func(c *Config) error {
		c.exposePasswordClaim = true
		return nil
	}
}

// Getter methods for internal use

func (c *Config) TokenTTL() time.Duration {
	return c.tokenTTL
}

func (c *Config) ClockSkewLeeway() time.Duration {
	return c.clockSkewLeeway
}

func (c *Config) CookieName() string {
	return c.cookieName
}

func (c *Config) Logger() *slog.Logger {
	return c.logger
}

func (c *Config) ExposePasswordClaim() bool {
	return c.exposePasswordClaim
}
