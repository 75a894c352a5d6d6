package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/pageza/recipe-catalog/backend/config"
	"github.com/pageza/recipe-catalog/backend/internal/database"
	"github.com/pageza/recipe-catalog/backend/internal/logging"
	"github.com/pageza/recipe-catalog/backend/internal/model"
	"github.com/pageza/recipe-catalog/backend/internal/service"
)

func main() {
	path := flag.String("file", "cmd/seed_recipes/testdata/recipes.json", "JSON file of recipes to insert")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	f, err := os.Open(*path)
	if err != nil {
		logging.Fatal().Err(err).Str("file", *path).Msg("failed to open seed file")
	}
	defer f.Close()

	recipes, err := LoadRecipes(f)
	if err != nil {
		logging.Fatal().Err(err).Msg("invalid seed file")
	}

	db, err := database.Open(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to open database")
	}
	if err := database.RunMigrations(db); err != nil {
		logging.Fatal().Err(err).Msg("failed to run migrations")
	}

	inserted, skipped, err := Seed(context.Background(), db, recipes)
	if err != nil {
		logging.Fatal().Err(err).Msg("seeding failed")
	}
	logging.Info().Int("inserted", inserted).Int("skipped", skipped).Msg("seeding complete")
}

// Seed inserts recipes whose name is not already in the catalog
func Seed(ctx context.Context, db *gorm.DB, recipes []*model.Recipe) (inserted, skipped int, err error) {
	svc := service.NewRecipeService(db, service.RecommendSettings{}, nil, nil)

	for _, recipe := range recipes {
		var existing model.Recipe
		err := db.WithContext(ctx).Where("name = ?", recipe.Name).First(&existing).Error
		if err == nil {
			skipped++
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return inserted, skipped, err
		}

		if _, err := svc.CreateRecipe(ctx, recipe); err != nil {
			return inserted, skipped, err
		}
		logging.Debug().Str("name", recipe.Name).Msg("recipe inserted")
		inserted++
	}
	return inserted, skipped, nil
}
