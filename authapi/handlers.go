package authapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/schoolward/authkit/credentials"
	"github.com/schoolward/authkit/sessionauth"
)

// LoginRequest is the login body. Shape failures are rejected with 400
// before any credential work happens.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries the signed token for non-browser clients; browsers
// get the same value in the session cookie.
type TokenResponse struct {
	Token string `json:"token"`
}

// ProfileResponse mirrors the identity claim set. Password carries the
// bcrypt hash only when the server opts into the legacy wire shape.
type ProfileResponse struct {
	ID        string           `json:"id"`
	FirstName string           `json:"firstName"`
	LastName  string           `json:"lastName"`
	Email     string           `json:"email"`
	Password  string           `json:"password,omitempty"`
	Role      sessionauth.Role `json:"role"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// handleLogin verifies credentials and opens a session.
//
// Missing users and wrong passwords are deliberately distinct: 404 for an
// unregistered email, 401 for a bad password. The verifier never runs when
// the lookup misses.
func (s *Server) handleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": "Invalid login payload"})
		return
	}

	if s.limiter != nil && !s.limiter.Allow(c.ClientIP()) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too_many_requests", "message": "Too many login attempts"})
		return
	}

	user, err := s.store.LookupByEmail(c.Request.Context(), req.Email)
	if errors.Is(err, credentials.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "User not found"})
		return
	}
	if err != nil {
		s.logInternal("login lookup failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "Internal server error"})
		return
	}

	if err := s.hasher.Compare([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "Incorrect password"})
		return
	}

	token, err := sessionauth.Issue(user.Identity(), s.cfg)
	if err != nil {
		s.logInternal("token issuance failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "Internal server error"})
		return
	}

	s.setSessionCookie(c, token)
	c.JSON(http.StatusOK, TokenResponse{Token: token})
}

// handleProfile returns the identity the access guard decoded from the
// session cookie.
func (s *Server) handleProfile(c *gin.Context) {
	identity, ok := sessionauth.IdentityFrom(c.Request.Context())
	if !ok {
		// The guard protects this route; reaching here without an
		// identity means the route was wired outside the policy table.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "Invalid token"})
		return
	}

	resp := ProfileResponse{
		ID:        identity.ID,
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
		Email:     identity.Email,
		Role:      identity.Role,
		CreatedAt: identity.CreatedAt,
		UpdatedAt: identity.UpdatedAt,
	}
	if s.cfg.ExposePasswordClaim() {
		resp.Password = identity.PasswordHash
	}
	c.JSON(http.StatusOK, resp)
}

// handleLogout clears the session cookie. Stateless design: the token
// itself stays valid until it expires, there is no server-side revocation.
func (s *Server) handleLogout(c *gin.Context) {
	s.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// handleRefresh re-signs an expired-but-untampered token from the cookie
// and re-sets it. The route is public: its whole purpose is to be reachable
// once the token no longer passes the guard.
func (s *Server) handleRefresh(c *gin.Context) {
	oldToken, err := sessionauth.TokenFromCookie(c.Request, s.cfg.CookieName())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "Token not found in cookie. Please log in"})
		return
	}

	token, err := sessionauth.Refresh(oldToken, s.cfg)
	if err != nil {
		var authErr *sessionauth.AuthError
		if errors.As(err, &authErr) && authErr.Code == sessionauth.ErrInternal {
			s.logInternal("token refresh failed", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "Internal server error"})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "Invalid old token"})
		return
	}

	s.setSessionCookie(c, token)
	c.JSON(http.StatusOK, TokenResponse{Token: token})
}

// handleHealth reports liveness of the service and its credential store.
func (s *Server) handleHealth(c *gin.Context) {
	if err := s.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "down"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
}

func (s *Server) logInternal(msg string, err error) {
	if s.logger == nil {
		return
	}
	s.logger.Error(msg, "error", err)
}
