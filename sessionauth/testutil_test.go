package sessionauth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret-key-at-least-32-bytes-long!!")

func newTestConfig(t *testing.T, opts ...Option) *Config {
	t.Helper()
	cfg, err := NewConfig(append([]Option{
		WithSecret(testSecret),
		WithClockSkew(0),
	}, opts...)...)
	if err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}
	return cfg
}

func testIdentity() Identity {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return Identity{
		ID:           "user123",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "a@x.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         RoleUser,
		CreatedAt:    created,
		UpdatedAt:    created.Add(time.Hour),
	}
}

// signRaw signs a claim set directly with the library, bypassing Issue, so
// tests can mint tokens with arbitrary timestamps or missing fields.
func signRaw(t testing.TB, claims jwt.Claims, secret []byte) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return token
}

// signExpired mints a token for the identity whose exp is already in the
// past but whose signature is valid for testSecret.
func signExpired(t testing.TB, identity Identity) string {
	t.Helper()
	now := time.Now()
	return signRaw(t, Claims{
		Identity: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
			ID:        "expired-token-id",
		},
	}, testSecret)
}

// tamperSignature flips a byte in the signature segment of a JWT.
func tamperSignature(t testing.TB, token string) string {
	t.Helper()
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("Token does not have 3 segments: %q", token)
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	parts[2] = string(sig)
	return strings.Join(parts, ".")
}

// assertSameIdentity compares identities field by field, using time.Equal
// for the timestamps since JSON round trips drop monotonic clock readings.
func assertSameIdentity(t *testing.T, got, want Identity) {
	t.Helper()
	if got.ID != want.ID || got.FirstName != want.FirstName || got.LastName != want.LastName ||
		got.Email != want.Email || got.PasswordHash != want.PasswordHash || got.Role != want.Role {
		t.Errorf("Decoded identity does not match input:\n got  %+v\n want %+v", got, want)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("Expected createdAt %v, got %v", want.CreatedAt, got.CreatedAt)
	}
	if !got.UpdatedAt.Equal(want.UpdatedAt) {
		t.Errorf("Expected updatedAt %v, got %v", want.UpdatedAt, got.UpdatedAt)
	}
}

// assertAuthError fails the test unless err is an AuthError with the code.
func assertAuthError(t *testing.T, err error, code ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected error with code %s, got nil", code)
	}
	authErr, ok := err.(*AuthError)
	if !ok {
		t.Fatalf("Expected *AuthError, got %T: %v", err, err)
	}
	if authErr.Code != code {
		t.Fatalf("Expected error code %s, got %s (%v)", code, authErr.Code, err)
	}
}
