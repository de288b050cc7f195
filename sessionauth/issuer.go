package sessionauth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Issue mints a signed session token carrying the given identity.
//
// The token is signed with HMAC-SHA256 and expires after the configured TTL
// (one hour by default), so exp is always strictly greater than iat. Cookie
// handling is the session boundary's job; Issue only computes the token.
func Issue(identity Identity, cfg *Config) (string, error) {
	now := time.Now()

	claims := Claims{
		Identity: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TokenTTL())),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(cfg.secret)
	if err != nil {
		return "", NewAuthError(ErrInternal, "failed to sign token", err)
	}
	return signed, nil
}
