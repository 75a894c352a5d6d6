package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/pageza/recipe-catalog/backend/config"
	"github.com/pageza/recipe-catalog/backend/internal/database"
	"github.com/pageza/recipe-catalog/backend/internal/logging"
)

func main() {
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	dir := flag.String("dir", "migrations", "Directory holding VERSION_NAME.sql migrations")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	db, err := database.New(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx := context.Background()

	if *rollback {
		name, err := db.Rollback(ctx, *dir)
		if errors.Is(err, database.ErrNoMigrations) {
			logging.Info().Msg("no migrations to rollback")
			return
		}
		if err != nil {
			logging.Fatal().Err(err).Msg("rollback failed")
		}
		logging.Info().Str("migration", name).Msg("successfully rolled back")
		return
	}

	applied, err := db.Migrate(ctx, *dir)
	if err != nil {
		logging.Fatal().Err(err).Strs("applied", applied).Msg("migration failed")
	}
	logging.Info().Int("applied", len(applied)).Msg("all migrations applied successfully")
}
