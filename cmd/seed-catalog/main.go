package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/solevibe/solevibe-backend/internal/catalog"
	"github.com/solevibe/solevibe-backend/pkg/config"
	"github.com/solevibe/solevibe-backend/pkg/db"
	"github.com/solevibe/solevibe-backend/pkg/db/models"
	"github.com/solevibe/solevibe-backend/pkg/logger"
)

// Seeds the catalog database with the embedded product fixture. Safe to
// run repeatedly; a non-empty catalog is left untouched.
func main() {
	logg := logger.New(logger.Options{ServiceName: "seed-catalog"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	dbClient, err := db.New(context.Background(), cfg.Catalog, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to open catalog database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing catalog database", err)
		}
	}()

	if err := dbClient.DB().AutoMigrate(&models.Product{}); err != nil {
		logg.Error(context.Background(), "failed to migrate catalog schema", err)
		os.Exit(1)
	}

	if err := catalog.Seed(context.Background(), catalog.NewRepository(dbClient.DB()), logg); err != nil {
		logg.Error(context.Background(), "failed to seed catalog", err)
		os.Exit(1)
	}

	logg.Info(context.Background(), "catalog seed complete")
}
