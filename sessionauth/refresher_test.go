package sessionauth

import (
	"testing"
	"time"
)

func TestRefreshValidTokenIsNoOp(t *testing.T) {
	cfg := newTestConfig(t)

	token, err := Issue(testIdentity(), cfg)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	refreshed, err := Refresh(token, cfg)
	if err != nil {
		t.Fatalf("Refresh of a valid token failed: %v", err)
	}
	if refreshed != token {
		t.Error("Expected refresh of a still-valid token to return it unchanged")
	}
}

func TestRefreshExpiredTokenReissues(t *testing.T) {
	cfg := newTestConfig(t)
	identity := testIdentity()

	expired := signExpired(t, identity)

	refreshed, err := Refresh(expired, cfg)
	if err != nil {
		t.Fatalf("Refresh of an expired token failed: %v", err)
	}
	if refreshed == expired {
		t.Fatal("Expected a fresh token, got the expired one back")
	}

	claims, err := Verify(refreshed, cfg)
	if err != nil {
		t.Fatalf("Refreshed token does not verify: %v", err)
	}

	// Same identity, new expiry window.
	assertSameIdentity(t, claims.Identity, identity)

	stale, err := decodeExpired(expired, cfg)
	if err != nil {
		t.Fatalf("Failed to decode the expired input: %v", err)
	}
	if !claims.ExpiresAt.Time.After(stale.ExpiresAt.Time) {
		t.Errorf("Expected new exp (%v) strictly after old exp (%v)", claims.ExpiresAt.Time, stale.ExpiresAt.Time)
	}
	if !claims.ExpiresAt.Time.After(time.Now()) {
		t.Error("Expected refreshed token to expire in the future")
	}
}

func TestRefreshRejectsNonExpiryFailures(t *testing.T) {
	cfg := newTestConfig(t)
	identity := testIdentity()

	valid, err := Issue(identity, cfg)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "tampered valid token",
			token: tamperSignature(t, valid),
		},
		{
			name:  "tampered expired token",
			token: tamperSignature(t, signExpired(t, identity)),
		},
		{
			name:  "malformed token",
			token: "definitely.not.ajwt",
		},
		{
			name:  "empty token",
			token: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Refresh(tt.token, cfg)
			assertAuthError(t, err, ErrInvalidSignature)
			if err.Error() != "[INVALID_SIGNATURE] Invalid old token" {
				t.Errorf("Expected the literal rejection message, got %q", err.Error())
			}
		})
	}
}
