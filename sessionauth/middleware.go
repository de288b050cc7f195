package sessionauth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Guard enforces the registered route policies on inbound requests.
//
// Per request it walks a small state machine: public routes pass through
// untouched; everything else needs a session cookie whose token verifies
// against the server secret. On success the decoded identity is attached to
// the request context before the handler runs, so role checks downstream
// see an authenticated request by construction.
type Guard struct {
	cfg      *Config
	policies *PolicyTable
}

// NewGuard creates an access guard over the given policy table
func NewGuard(cfg *Config, policies *PolicyTable) *Guard {
	return &Guard{cfg: cfg, policies: policies}
}

// Middleware returns the Gin handler implementing the access and role checks
func (g *Guard) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		route := c.Request.Method + " " + c.FullPath()

		// Generate or extract request ID for correlation
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		policy := g.policies.Lookup(c.Request.Method, c.FullPath())
		if policy.Public {
			c.Next()
			return
		}

		token, err := TokenFromCookie(c.Request, g.cfg.CookieName())
		if err != nil {
			g.logFailure(requestID, route, token, err, time.Since(startTime))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Token not found in cookie. Please log in",
			})
			return
		}

		claims, err := parseAndValidate(token, g.cfg)
		if err != nil {
			g.logFailure(requestID, route, token, err, time.Since(startTime))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Invalid token",
			})
			return
		}

		if !policy.AllowsRole(claims.Identity.Role) {
			g.logDenied(requestID, route, &claims.Identity, token, time.Since(startTime))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "Forbidden resource",
			})
			return
		}

		ctx := WithIdentity(c.Request.Context(), &claims.Identity)
		ctx = WithRequestID(ctx, requestID)
		c.Request = c.Request.WithContext(ctx)

		g.logSuccess(requestID, route, &claims.Identity, token, time.Since(startTime))

		c.Next()
	}
}

// RequireRoles returns a per-route handler restricting access to the listed
// roles. It is layered after Middleware and reads the identity the access
// guard attached; constructing it from the guard keeps the ordering a
// structural fact rather than a runtime assumption. A request with no
// identity is denied, never a panic.
func (g *Guard) RequireRoles(roles ...Role) gin.HandlerFunc {
	policy := RoutePolicy{Roles: roles}
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c.Request.Context())
		if !ok || !policy.AllowsRole(identity.Role) {
			requestID, _ := RequestIDFrom(c.Request.Context())
			route := c.Request.Method + " " + c.FullPath()
			g.logDenied(requestID, route, identity, "", 0)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "Forbidden resource",
			})
			return
		}
		c.Next()
	}
}

func (g *Guard) logSuccess(requestID, route string, identity *Identity, token string, latency time.Duration) {
	if g.cfg.Logger() == nil {
		return
	}
	logSecurityEvent(g.cfg.Logger(), SecurityEvent{
		EventType:    "success",
		Timestamp:    time.Now(),
		RequestID:    requestID,
		UserID:       identity.ID,
		Email:        identity.Email,
		Role:         identity.Role,
		Route:        route,
		TokenPreview: token,
		Latency:      latency,
	})
}

func (g *Guard) logFailure(requestID, route, token string, err error, latency time.Duration) {
	if g.cfg.Logger() == nil {
		return
	}
	logSecurityEvent(g.cfg.Logger(), SecurityEvent{
		EventType:     "failure",
		Timestamp:     time.Now(),
		RequestID:     requestID,
		Route:         route,
		FailureReason: errorCode(err),
		TokenPreview:  token,
		Latency:       latency,
	})
}

func (g *Guard) logDenied(requestID, route string, identity *Identity, token string, latency time.Duration) {
	if g.cfg.Logger() == nil {
		return
	}
	event := SecurityEvent{
		EventType:     "denied",
		Timestamp:     time.Now(),
		RequestID:     requestID,
		Route:         route,
		FailureReason: string(ErrForbidden),
		TokenPreview:  token,
		Latency:       latency,
	}
	if identity != nil {
		event.UserID = identity.ID
		event.Email = identity.Email
		event.Role = identity.Role
	}
	logSecurityEvent(g.cfg.Logger(), event)
}

// errorCode extracts the taxonomy code from an authentication error
func errorCode(err error) string {
	if authErr, ok := err.(*AuthError); ok {
		return string(authErr.Code)
	}
	return "UNKNOWN"
}
