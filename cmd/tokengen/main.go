package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/schoolward/authkit/sessionauth"
)

func main() {
	var (
		secret    = flag.String("secret", "your-256-bit-secret-key-min-32-bytes-here-for-demo!", "Signing secret (minimum 32 bytes)")
		id        = flag.String("id", "user123", "User id")
		firstName = flag.String("first", "Ada", "First name")
		lastName  = flag.String("last", "Lovelace", "Last name")
		email     = flag.String("email", "user@example.com", "Email address")
		role      = flag.String("role", "USER", "Role (USER or ADMIN)")
		hours     = flag.Int("hours", 1, "Token validity in hours")
		hash      = flag.String("hash", "", "Print a bcrypt hash for this password and exit")
	)

	flag.Parse()

	if *hash != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(*hash), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		fmt.Printf("\nBcrypt hash: %s\n\n", h)
		return
	}

	parsedRole, err := sessionauth.ParseRole(*role)
	if err != nil {
		log.Fatalf("Invalid role: %v", err)
	}

	cfg, err := sessionauth.NewConfig(
		sessionauth.WithSecret([]byte(*secret)),
		sessionauth.WithTokenTTL(time.Duration(*hours)*time.Hour),
	)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	now := time.Now()
	token, err := sessionauth.Issue(sessionauth.Identity{
		ID:        *id,
		FirstName: *firstName,
		LastName:  *lastName,
		Email:     *email,
		Role:      parsedRole,
		CreatedAt: now,
		UpdatedAt: now,
	}, cfg)
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}

	fmt.Println("\n=== Session Token Generated ===")
	fmt.Printf("\nToken: %s\n\n", token)
	fmt.Println("Claims:")
	fmt.Printf("  Id:      %s\n", *id)
	fmt.Printf("  Email:   %s\n", *email)
	fmt.Printf("  Role:    %s\n", parsedRole)
	fmt.Printf("  Expires: %s\n\n", now.Add(time.Duration(*hours)*time.Hour).Format(time.RFC3339))
	fmt.Println("Usage:")
	fmt.Printf("  curl --cookie 'token=%s' http://localhost:8080/auth/profile\n\n", token)
}
