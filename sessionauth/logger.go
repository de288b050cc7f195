package sessionauth

import (
	"log/slog"
	"time"
)

// SecurityEvent represents a structured security log entry
type SecurityEvent struct {
	EventType     string        // "success", "failure" or "denied"
	Timestamp     time.Time     // Event timestamp
	RequestID     string        // Correlation ID
	UserID        string        // Identity id (empty on failure)
	Email         string        // Identity email (empty on failure)
	Role          Role          // Identity role (empty on failure)
	Route         string        // Method and route pattern
	FailureReason string        // Error code (on failure)
	TokenPreview  string        // Redacted token preview
	Latency       time.Duration // Guard latency
}

// LogValue implements slog.LogValuer for structured logging with redaction
func (e SecurityEvent) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("event", e.EventType),
		slog.Time("timestamp", e.Timestamp),
		slog.String("request_id", e.RequestID),
		slog.String("user_id", e.UserID),
		slog.String("email", e.Email),
		slog.String("role", string(e.Role)),
		slog.String("route", e.Route),
		slog.String("failure_reason", e.FailureReason),
		slog.String("token", redactToken(e.TokenPreview)),
		slog.Duration("latency", e.Latency),
	)
}

// redactToken redacts sensitive token data
func redactToken(token string) string {
	if len(token) == 0 {
		return ""
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:8] + "..."
}

// logSecurityEvent emits a security event via the configured logger
func logSecurityEvent(logger *slog.Logger, event SecurityEvent) {
	if logger == nil {
		return // Logging disabled
	}

	switch event.EventType {
	case "failure":
		logger.Warn("authentication failed", "auth_event", event)
	case "denied":
		logger.Warn("authorization denied", "auth_event", event)
	default:
		logger.Info("authentication succeeded", "auth_event", event)
	}
}
