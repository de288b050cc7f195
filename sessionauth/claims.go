package sessionauth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role is one of the closed set of account roles known to the platform.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether the role belongs to the closed role set.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// ParseRole converts a string into a Role, rejecting values outside the
// closed set.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Identity is the decoded claim set describing an authenticated principal.
//
// The wire field names are fixed for interop with the rest of the platform:
// collaborating services decode the same token. PasswordHash travels in the
// legacy "password" claim; it always carries the bcrypt hash, never a
// plaintext password, and is redacted from profile responses unless the
// server is explicitly configured otherwise.
type Identity struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password,omitempty"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Claims is the session token payload: the identity plus the registered
// iat/exp/jti claims added by the signer.
type Claims struct {
	Identity
	jwt.RegisteredClaims
}
