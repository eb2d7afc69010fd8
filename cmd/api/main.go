package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/ghinaaj20-lang/luna-project/internal/auth"
	"github.com/ghinaaj20-lang/luna-project/internal/blob"
	"github.com/ghinaaj20-lang/luna-project/internal/config"
	"github.com/ghinaaj20-lang/luna-project/internal/database"
	"github.com/ghinaaj20-lang/luna-project/internal/handlers"
	"github.com/ghinaaj20-lang/luna-project/internal/verify"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading configuration: ", err)
	}

	// Database connection and schema
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.Migrate(); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}

	// Session store
	store := auth.NewStore(cfg.SessionSecret, cfg.Production)

	// Media storage (S3-compatible R2 bucket)
	client, err := blob.NewS3Client(context.Background(), cfg.StorageAccountID, cfg.StorageAccessKey, cfg.StorageAccessSecret)
	if err != nil {
		log.Fatal("Failed to configure object storage: ", err)
	}
	blobs := blob.NewS3Store(client, cfg.StorageBucket, cfg.PublicURL)

	verifier := verify.NewMockVerifier(time.Now().UnixNano())

	server := handlers.NewServer(db, store, blobs, verifier)
	server.AllowedOrigins = cfg.AllowedOrigins

	log.Println("Starting API server on", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, server.Routes()))
}
