package sessionauth

import (
	"net/http"
	"strings"

	"google.golang.org/grpc/metadata"
)

// TokenFromCookie extracts the session token from the configured cookie.
// The cookie is the only transport for browser sessions; bearer headers are
// reserved for internal gRPC traffic.
func TokenFromCookie(r *http.Request, cookieName string) (string, error) {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return "", NewAuthError(ErrMissingToken, "cookie not found", err)
	}

	token := strings.TrimSpace(cookie.Value)
	if token == "" {
		return "", NewAuthError(ErrMissingToken, "cookie value is empty", nil)
	}

	return token, nil
}

// tokenFromMetadata extracts a bearer token from gRPC metadata
func tokenFromMetadata(md metadata.MD) (string, error) {
	values := md.Get("authorization")
	if len(values) == 0 {
		return "", NewAuthError(ErrMissingToken, "authorization metadata not found", nil)
	}

	parts := strings.SplitN(values[0], " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", NewAuthError(ErrMalformed, "invalid authorization format, expected 'Bearer <token>'", nil)
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", NewAuthError(ErrMissingToken, "token is empty", nil)
	}

	return token, nil
}
