package sessionauth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Verify parses a session token, checks its signature and time claims
// against the configured secret and clock skew, and returns the decoded
// claims.
func Verify(tokenString string, cfg *Config) (*Claims, error) {
	return parseAndValidate(tokenString, cfg)
}

// parseAndValidate parses and validates a session token string
func parseAndValidate(tokenString string, cfg *Config) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, hmacKeyfunc(cfg), jwt.WithLeeway(cfg.ClockSkewLeeway()))
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

// hmacKeyfunc returns the signing secret after confirming the token is
// signed with an HMAC method. Anything else, including the "none"
// algorithm, is rejected before signature verification to prevent
// algorithm confusion attacks.
func hmacKeyfunc(cfg *Config) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		alg, ok := token.Header["alg"].(string)
		if !ok {
			if _, exists := token.Header["alg"]; exists {
				return nil, NewAuthError(ErrMalformed, "algorithm header must be a string", nil)
			}
			return nil, NewAuthError(ErrMalformed, "missing algorithm in token header", nil)
		}

		if alg == "none" || alg == "None" || alg == "NONE" {
			return nil, NewAuthError(ErrInvalidSignature, "none algorithm not allowed", nil)
		}

		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, NewAuthError(ErrInvalidSignature, fmt.Sprintf("unexpected signing method %s", alg), nil)
		}

		return cfg.secret, nil
	}
}

// classifyParseError translates golang-jwt parse failures into the local
// error taxonomy. Expiry is distinguished from tampering by inspecting the
// library's error classification, never by string matching: the refresher
// depends on the distinction. A token that is both expired and tampered
// surfaces as a signature failure.
func classifyParseError(err error) *AuthError {
	// Keyfunc failures already carry an AuthError, possibly wrapped.
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr
	}

	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid) || errors.Is(err, jwt.ErrSignatureInvalid):
		return NewAuthError(ErrInvalidSignature, "signature verification failed", err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return NewAuthError(ErrExpired, "token has expired", err)
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return NewAuthError(ErrExpired, "token not valid yet", err)
	default:
		return NewAuthError(ErrMalformed, "malformed token", err)
	}
}

// validateIdentityClaims enforces the claims the platform requires beyond
// the registered timestamp set.
func validateIdentityClaims(claims *Claims) error {
	if claims.Identity.ID == "" {
		return NewAuthError(ErrMalformed, "required claim missing: id", nil)
	}
	if claims.Identity.Email == "" {
		return NewAuthError(ErrMalformed, "required claim missing: email", nil)
	}
	if !claims.Identity.Role.Valid() {
		return NewAuthError(ErrMalformed, fmt.Sprintf("role %q is not in the allowed set", string(claims.Identity.Role)), nil)
	}
	return nil
}
