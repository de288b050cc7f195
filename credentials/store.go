// Package credentials owns user account records and password hashing for
// the session core. Persistence lives in an external relational database;
// this package only reads and writes account rows, it is not the CRUD
// resource layer.
package credentials

import (
	"context"
	"errors"
	"time"

	"github.com/schoolward/authkit/sessionauth"
)

var (
	// ErrNotFound signals that no account matched the lookup.
	ErrNotFound = errors.New("credentials: user not found")

	// ErrDuplicateEmail signals a registration against an email that is
	// already taken. Email is unique across the system.
	ErrDuplicateEmail = errors.New("credentials: email already registered")
)

// User is a stored account record
type User struct {
	ID             string
	FirstName      string
	LastName       string
	Email          string
	PasswordHash   string
	Role           sessionauth.Role
	ProfilePicture string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Identity projects the account record into the claim set the token issuer
// signs. The bcrypt hash rides along in the legacy password claim.
func (u *User) Identity() sessionauth.Identity {
	return sessionauth.Identity{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// Store reads and writes account records. Implementations must be safe for
// concurrent use; every method honors context cancellation.
type Store interface {
	// LookupByEmail returns the account registered under the given email,
	// or ErrNotFound.
	LookupByEmail(ctx context.Context, email string) (*User, error)

	// Create registers a new account. The password must already be hashed.
	// Returns ErrDuplicateEmail when the email is taken.
	Create(ctx context.Context, user *User) error

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
