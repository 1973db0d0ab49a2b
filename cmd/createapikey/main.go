package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mindthevirt/binge-master-api/internal/domain/apikey"
	"github.com/mindthevirt/binge-master-api/internal/storage/postgres"
	"github.com/mindthevirt/binge-master-api/internal/util"
	"go.uber.org/zap"
)

func main() {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	rawKey, keyHash, err := util.GenerateAPIKey()
	if err != nil {
		log.Fatalf("Failed to generate API key: %v", err)
	}

	fmt.Printf("Generated API Key (SAVE THIS securely, it is not retrievable again!):\n%s\n\n", rawKey)
	fmt.Printf("Key Hash: %s\n", keyHash)

	logger, _ := zap.NewDevelopment()
	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(context.Background(), pool, logger); err != nil {
		log.Fatalf("Failed to ensure database schema: %v", err)
	}

	repo := postgres.NewAPIKeyRepository(pool, logger)

	keyID, err := repo.Create(context.Background(), &apikey.APIKey{KeyHash: keyHash})
	if err != nil {
		log.Fatalf("Failed to save API key to database: %v", err)
	}

	fmt.Printf("\nAPI Key saved to database with ID: %s\n", keyID)
}
