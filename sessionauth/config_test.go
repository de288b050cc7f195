package sessionauth

import (
	"log/slog"
	"os"
	"testing"
	"time"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig(WithSecret(testSecret))
	if err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}

	if cfg.TokenTTL() != DefaultTokenTTL {
		t.Errorf("Expected default TTL %v, got %v", DefaultTokenTTL, cfg.TokenTTL())
	}
	if cfg.ClockSkewLeeway() != 60*time.Second {
		t.Errorf("Expected default clock skew 60s, got %v", cfg.ClockSkewLeeway())
	}
	if cfg.CookieName() != DefaultCookieName {
		t.Errorf("Expected default cookie name %q, got %q", DefaultCookieName, cfg.CookieName())
	}
	if cfg.ExposePasswordClaim() {
		t.Error("Expected password claim exposure to default off")
	}
	if cfg.Logger() != nil {
		t.Error("Expected logging to default off")
	}
}

func TestNewConfigRequiresSecret(t *testing.T) {
	_, err := NewConfig()
	assertAuthError(t, err, ErrConfigError)
}

func TestConfigOptionValidation(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		wantErr bool
	}{
		{
			name:    "valid full configuration",
			opts:    []Option{WithSecret(testSecret), WithTokenTTL(30 * time.Minute), WithClockSkew(10 * time.Second), WithCookie("session"), WithExposePasswordClaim()},
			wantErr: false,
		},
		{
			name:    "secret shorter than 32 bytes",
			opts:    []Option{WithSecret([]byte("too-short"))},
			wantErr: true,
		},
		{
			name:    "secret exactly 32 bytes",
			opts:    []Option{WithSecret([]byte("exactly-32-bytes-secret-key-....."))},
			wantErr: false,
		},
		{
			name:    "zero token TTL",
			opts:    []Option{WithSecret(testSecret), WithTokenTTL(0)},
			wantErr: true,
		},
		{
			name:    "negative token TTL",
			opts:    []Option{WithSecret(testSecret), WithTokenTTL(-time.Hour)},
			wantErr: true,
		},
		{
			name:    "negative clock skew",
			opts:    []Option{WithSecret(testSecret), WithClockSkew(-time.Second)},
			wantErr: true,
		},
		{
			name:    "empty cookie name",
			opts:    []Option{WithSecret(testSecret), WithCookie("")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConfig(tt.opts...)
			if tt.wantErr && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestConfigOptionsApply(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := NewConfig(
		WithSecret(testSecret),
		WithTokenTTL(15*time.Minute),
		WithClockSkew(5*time.Second),
		WithCookie("session"),
		WithLogger(logger),
		WithExposePasswordClaim(),
	)
	if err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}

	if cfg.TokenTTL() != 15*time.Minute {
		t.Errorf("Expected TTL 15m, got %v", cfg.TokenTTL())
	}
	if cfg.ClockSkewLeeway() != 5*time.Second {
		t.Errorf("Expected clock skew 5s, got %v", cfg.ClockSkewLeeway())
	}
	if cfg.CookieName() != "session" {
		t.Errorf("Expected cookie name %q, got %q", "session", cfg.CookieName())
	}
	if cfg.Logger() != logger {
		t.Error("Expected configured logger to be returned")
	}
	if !cfg.ExposePasswordClaim() {
		t.Error("Expected password claim exposure to be enabled")
	}
}
