package main

import (
	"os"

	"tapmine/internal/db"
	"tapmine/internal/logger"
	"tapmine/internal/migrations"

	"github.com/joho/godotenv"
)

// Applies all embedded migrations and exits. The server does the same on
// startup; this tool exists for CI and for running migrations separately.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	if err := migrations.Up(pool); err != nil {
		logger.Fatal("migrations failed", "error", err)
	}
	logger.Info("migrations applied")
}
