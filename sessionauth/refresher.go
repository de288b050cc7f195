package sessionauth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Refresh extends a session without re-authenticating credentials.
//
// A token that still verifies is returned unchanged. A token that failed
// verification purely because it expired (signature otherwise valid) is
// decoded without time validation and re-signed with a fresh iat/exp
// window, carrying the same identity. Every other failure, bad signature
// or malformed input, is terminal.
func Refresh(oldToken string, cfg *Config) (string, error) {
	_, err := parseAndValidate(oldToken, cfg)
	if err == nil {
		// Still valid, no-op refresh.
		return oldToken, nil
	}

	var authErr *AuthError
	if !errors.As(err, &authErr) || authErr.Code != ErrExpired {
		return "", NewAuthError(ErrInvalidSignature, "Invalid old token", err)
	}

	stale, err := decodeExpired(oldToken, cfg)
	if err != nil {
		return "", NewAuthError(ErrInvalidSignature, "Invalid old token", err)
	}

	return Issue(stale.Identity, cfg)
}

// decodeExpired re-parses a token with signature verification but without
// time-claim validation. Only reached after the full parse failed with an
// expiry classification, so the signature has already checked out once.
func decodeExpired(tokenString string, cfg *Config) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, hmacKeyfunc(cfg), jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, classifyParseError(err)
	}
	if !token.Valid {
		return nil, NewAuthError(ErrInvalidSignature, "token is invalid", nil)
	}
	if err := validateIdentityClaims(claims); err != nil {
		return nil, err
	}
	return claims, nil
}
