// Command gen-token prints an admin bearer token for local development.
//
//	JWT_SECRET=dev go run ./cmd/gen-token -sub admin@example.com -ttl 8h
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/pkordes/tourvisto/backend/internal/auth"
	"github.com/pkordes/tourvisto/backend/internal/domain"
)

func main() {
	sub := flag.String("sub", "admin@example.com", "token subject")
	role := flag.String("role", domain.RoleAdmin, "role claim")
	ttl := flag.Duration("ttl", 8*time.Hour, "token lifetime")
	flag.Parse()

	_ = godotenv.Load()
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET is not set")
		os.Exit(1)
	}

	token, err := auth.Issue([]byte(secret), *sub, *role, *ttl, time.Now())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(token)
}
