package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cubemart/backend/internal/infrastructure/config"
	"github.com/cubemart/backend/internal/infrastructure/logger"
	"github.com/cubemart/backend/internal/infrastructure/persistence"
	"github.com/cubemart/backend/internal/infrastructure/seed"
)

func main() {
	var (
		file     string
		logLevel string
		timeout  time.Duration
	)

	flag.StringVar(&file, "file", "", "Path to the product catalog CSV file")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.DurationVar(&timeout, "timeout", 5*time.Minute, "Overall timeout for the seed run")
	flag.Parse()

	if file == "" {
		fmt.Fprintln(os.Stderr, "Usage: seed -file products.csv")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Required columns: name, price, category")
		fmt.Fprintln(os.Stderr, "Optional columns: description, compare_price, sku, inventory,")
		fmt.Fprintln(os.Stderr, "  images (pipe separated), featured, status, attributes (name=value;...)")
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	f, err := os.Open(file)
	if err != nil {
		log.Fatal("Failed to open CSV file", zap.String("file", file), zap.Error(err))
	}
	defer f.Close()

	seeder := seed.NewSeeder(
		persistence.NewGormProductRepository(db.DB),
		persistence.NewGormCategoryRepository(db.DB),
		log,
	)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	result, err := seeder.Run(ctx, f)
	if err != nil {
		log.Fatal("Seed run failed", zap.Error(err))
	}

	if result.Errors.HasErrors() {
		log.Warn("Some rows were rejected", zap.String("report", result.Errors.Summary()))
	}

	log.Info("Catalog seeded",
		zap.Int("products_created", result.Created),
		zap.Int("categories_created", result.CategoriesCreated),
		zap.Int("skipped", result.Skipped))
}
