package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"github.com/schoolward/authkit/sessionauth"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// SQLStore is a Store backed by a relational database. It speaks both
// SQLite (development, tests) and PostgreSQL (production) through
// database/sql, rewriting placeholders per driver.
type SQLStore struct {
	db     *sql.DB
	driver string
}

// OpenSQL opens a database handle for the given driver and DSN and wraps it
// in a SQLStore. The caller owns Close.
func OpenSQL(driver, dsn string) (*SQLStore, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("credentials: unsupported driver %q", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("credentials: open %s: %w", driver, err)
	}
	return NewSQLStore(db, driver), nil
}

// NewSQLStore wraps an existing database handle
func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

// Close closes the underlying database handle
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Migrate creates the users table if it does not exist
func (s *SQLStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id              TEXT PRIMARY KEY,
			first_name      TEXT NOT NULL,
			last_name       TEXT NOT NULL,
			email           TEXT NOT NULL UNIQUE,
			password        TEXT NOT NULL,
			role            TEXT NOT NULL,
			profile_picture TEXT NOT NULL DEFAULT '',
			created_at      TIMESTAMP NOT NULL,
			updated_at      TIMESTAMP NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("credentials: migrate: %w", err)
	}
	return nil
}

func (s *SQLStore) LookupByEmail(ctx context.Context, email string) (*User, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT id, first_name, last_name, email, password, role, profile_picture, created_at, updated_at
		FROM users WHERE email = ?`), normalizeEmail(email))

	var (
		user User
		role string
	)
	err := row.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email,
		&user.PasswordHash, &role, &user.ProfilePicture, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("credentials: lookup %s: %w", email, err)
	}

	user.Role, err = sessionauth.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("credentials: corrupt role for %s: %w", email, err)
	}
	return &user, nil
}

func (s *SQLStore) Create(ctx context.Context, user *User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}

	_, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO users (id, first_name, last_name, email, password, role, profile_picture, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		user.ID, user.FirstName, user.LastName, normalizeEmail(user.Email),
		user.PasswordHash, string(user.Role), user.ProfilePicture, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("credentials: create %s: %w", user.Email, err)
	}
	return nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// rebind rewrites ? placeholders to $1..$n for PostgreSQL
func (s *SQLStore) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// isUniqueViolation inspects driver-specific error types for a unique
// constraint failure on the email column
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505" // unique_violation
	}
	return false
}
