package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"codeberg.org/lendora/server/internal/auth"
	"codeberg.org/lendora/server/internal/database"
	"codeberg.org/lendora/server/lendora/users"
	"github.com/joho/godotenv"
)

// mints a session cookie value for a local test user, for curl and the portal
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET not set")
	}

	ctx := context.Background()

	pool, err := database.NewPool(ctx, databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	directory := users.NewRepository(pool)

	user, created, err := directory.FindOrCreate(ctx, users.Identity{
		SubjectID:   "test-user-123",
		Email:       "test@lendora.dev",
		DisplayName: "Test User",
	})
	if err != nil {
		log.Fatalf("Failed to find or create test user: %v", err)
	}

	if created {
		fmt.Printf("Created test user: %s (ID: %s)\n", user.Email, user.ID)
	} else {
		fmt.Printf("Using existing test user (ID: %s, profile: %s)\n", user.ID, user.ProfileStatus)
	}

	tokens, err := auth.NewTokenManager(secret, 24*time.Hour)
	if err != nil {
		log.Fatalf("Failed to create token manager: %v", err)
	}

	token, _, err := tokens.Generate(user.ID, user.Email)
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}

	fmt.Printf("\nSession token:\n%s\n\n", token)
	fmt.Printf("Use it as a cookie:\ncurl -b \"token=%s\" http://localhost:8080/api/auth/status\n", token)
}
