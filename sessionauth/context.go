package sessionauth

import "context"

// contextKey is an unexported type for context keys to prevent collisions
type contextKey string

const (
	identityContextKey  contextKey = "github.com/schoolward/authkit/sessionauth:identity"
	requestIDContextKey contextKey = "github.com/schoolward/authkit/sessionauth:request_id"
)

// WithIdentity stores a verified identity in the request context.
// The identity is immutable and should not be modified by downstream handlers.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

// IdentityFrom retrieves the verified identity from the request context.
// Returns nil, false if no identity is present or it has the wrong type.
// Always check the ok return value before using the identity.
func IdentityFrom(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(*Identity)
	return identity, ok
}

// MustIdentityFrom retrieves the identity from context and panics if absent.
// Use only on routes the access guard is known to protect.
func MustIdentityFrom(ctx context.Context) *Identity {
	identity, ok := IdentityFrom(ctx)
	if !ok {
		panic("sessionauth: identity not found in context")
	}
	return identity
}

// WithRequestID stores a request ID in context for correlation
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, requestID)
}

// RequestIDFrom retrieves the request ID from the context
func RequestIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDContextKey).(string)
	return id, ok
}
