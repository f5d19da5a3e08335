package main

import (
	"log"
	"os"

	"github.com/mbernahr/simple-eri-test-server/internal/model"
	"github.com/mbernahr/simple-eri-test-server/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM Migration...")

	// 3. Pre-Migration: Extensions (Things GORM AutoMigrate doesn't do)
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate the collection table
	if err := db.AutoMigrate(&model.DocumentChunk{}); err != nil {
		log.Fatal("Error: AutoMigrate failed:", err)
	}

	// 5. ANN index for cosine searches
	annIndex := `CREATE INDEX IF NOT EXISTS idx_document_chunks_embedding
		ON document_chunks USING hnsw (embedding_value vector_cosine_ops);`
	if err := db.Exec(annIndex).Error; err != nil {
		log.Printf("Warn: Failed to create HNSW index: %v. Continuing with sequential scans...", err)
	}

	log.Println("Migration completed successfully.")
}
