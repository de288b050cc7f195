// Package authapi is the externally observable session boundary: the
// login, profile, logout and refresh endpoints composing the credential
// store, password hasher, token issuer/refresher and access guard.
package authapi

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolward/authkit/credentials"
	"github.com/schoolward/authkit/sessionauth"
)

// Server wires the session endpoints onto a Gin engine.
type Server struct {
	cfg     *sessionauth.Config
	store   credentials.Store
	hasher  credentials.Hasher
	logger  *slog.Logger
	limiter *LoginLimiter
}

// ServerOption customizes the session boundary.
type ServerOption func(*Server)

// WithHasher overrides the password hasher (tests use credentials.TestHasher).
func WithHasher(h credentials.Hasher) ServerOption {
	return func(s *Server) { s.hasher = h }
}

// WithLoginLimiter enables rate limiting on the login endpoint.
func WithLoginLimiter(l *LoginLimiter) ServerOption {
	return func(s *Server) { s.limiter = l }
}

// New creates the session boundary over the given store and session config.
func New(cfg *sessionauth.Config, store credentials.Store, opts ...ServerOption) *Server {
	s := &Server{
		cfg:    cfg,
		store:  store,
		hasher: credentials.DefaultHasher,
		logger: cfg.Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register declares the route policies and mounts the endpoints. Login and
// refresh are public by declaration: login precedes any session, and
// refresh must be reachable with an expired token. Everything else under
// /auth inherits the protected group default.
func (s *Server) Register(r *gin.Engine) {
	policies := sessionauth.NewPolicyTable()
	policies.GroupDefault("/auth", sessionauth.RoutePolicy{})
	policies.Public(http.MethodPost, "/auth/login")
	policies.Public(http.MethodGet, "/auth/refresh")
	policies.Public(http.MethodGet, "/health")

	guard := sessionauth.NewGuard(s.cfg, policies)
	r.Use(guard.Middleware())

	auth := r.Group("/auth")
	auth.POST("/login", s.handleLogin)
	auth.GET("/profile", s.handleProfile)
	auth.GET("/logout", s.handleLogout)
	auth.GET("/refresh", s.handleRefresh)

	r.GET("/health", s.handleHealth)
}

// setSessionCookie writes the token cookie with the contract attributes:
// HttpOnly, SameSite=None, Secure.
func (s *Server) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(s.cfg.CookieName(), token, int(s.cfg.TokenTTL().Seconds()), "/", "", true, true)
}

// clearSessionCookie expires the token cookie with matching attributes.
func (s *Server) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(s.cfg.CookieName(), "", -1, "/", "", true, true)
}
