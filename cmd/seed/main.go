package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"food-delivery-backend/internal/config"
	"food-delivery-backend/internal/infrastructure/database/postgres"
	"food-delivery-backend/internal/logger"
	"food-delivery-backend/internal/seed"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.Options{
		Environment: cfg.Server.Environment,
		Level:       cfg.Server.LogLevel,
		Service:     "seed",
	}); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		logger.Error("Seeding failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

func run(cfg *config.Config) error {
	db, err := postgres.NewDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	seeder := seed.NewSeeder(
		postgres.NewUserRepository(db),
		postgres.NewRestaurantRepository(db),
		postgres.NewMenuRepository(db),
	)
	if _, err := seeder.SeedAdmin(ctx, cfg.App.AdminEmail, cfg.App.AdminPassword); err != nil {
		return err
	}

	created, err := seeder.Run(ctx)
	if err != nil {
		return err
	}

	logger.Info("Seeding finished", zap.Int("restaurants_created", created))
	return nil
}
