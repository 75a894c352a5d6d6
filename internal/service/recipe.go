package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipe-catalog/backend/internal/logging"
	"github.com/pageza/recipe-catalog/backend/internal/model"
	"github.com/pageza/recipe-catalog/backend/internal/recommend"
	"github.com/pageza/recipe-catalog/backend/internal/types"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// RecommendSettings tunes similar-recipe lookups
type RecommendSettings struct {
	// MaxCandidates bounds the pool loaded for one lookup.
	MaxCandidates int
	// Workers is the engine's scoring parallelism; below 2 scores sequentially.
	Workers int
}

// DefaultRecommendSettings is used when a zero RecommendSettings is supplied.
var DefaultRecommendSettings = RecommendSettings{MaxCandidates: 1000}

// RecipeService handles recipe operations
type RecipeService struct {
	db       *gorm.DB
	engine   recommend.Engine
	settings RecommendSettings
	cache    RecommendationCache
	signer   ImageURLSigner
}

// NewRecipeService creates a new RecipeService instance.
// cache and signer may be nil.
func NewRecipeService(db *gorm.DB, settings RecommendSettings, cache RecommendationCache, signer ImageURLSigner) *RecipeService {
	if settings.MaxCandidates <= 0 {
		settings.MaxCandidates = DefaultRecommendSettings.MaxCandidates
	}
	return &RecipeService{
		db:       db,
		engine:   recommend.NewEngine(recommend.WithWorkers(settings.Workers), recommend.WithTieBreakByID()),
		settings: settings,
		cache:    cache,
		signer:   signer,
	}
}

// CreateRecipe creates a new recipe
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}
	s.invalidate(ctx)
	return s.present(ctx, recipe)[0], nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	recipe, err := s.findRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.present(ctx, recipe)[0], nil
}

// UpdateRecipe applies the non-nil fields of req to a recipe
func (s *RecipeService) UpdateRecipe(ctx context.Context, id uuid.UUID, req *types.UpdateRecipeRequest) (*model.Recipe, error) {
	recipe, err := s.findRecipe(ctx, id)
	if err != nil {
		return nil, err
	}

	applyUpdate(recipe, req)

	if err := s.db.WithContext(ctx).Save(recipe).Error; err != nil {
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}
	s.invalidate(ctx)
	return s.present(ctx, recipe)[0], nil
}

// DeleteRecipe deletes a recipe
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	// First check if the recipe exists
	if _, err := s.findRecipe(ctx, id); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&model.RecipeFavorite{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Recipe{}, "id = ?", id).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

// ListRecipes lists recipes matching filters, oldest first
func (s *RecipeService) ListRecipes(ctx context.Context, filters types.RecipeFilters) ([]*model.Recipe, error) {
	query := s.db.WithContext(ctx).Model(&model.Recipe{})

	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Cuisine != "" {
		query = query.Where("cuisine = ?", filters.Cuisine)
	}
	if filters.Tag != "" {
		query = s.whereHasTag(query, filters.Tag)
	}
	if len(filters.Exclude) > 0 {
		query = query.Where("id NOT IN ?", filters.Exclude)
	}

	var recipes []*model.Recipe
	err := query.
		Order("created_at, id").
		Limit(pageSize(filters.Limit)).
		Offset(max(filters.Offset, 0)).
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return s.present(ctx, recipes...), nil
}

// SearchRecipes searches for recipes by name, description and ingredients.
// PostgreSQL results are ordered by embedding distance to the query.
func (s *RecipeService) SearchRecipes(ctx context.Context, query string, limit int) ([]*model.Recipe, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.ListRecipes(ctx, types.RecipeFilters{Limit: limit})
	}

	like := "%" + strings.ToLower(query) + "%"
	dbQuery := s.db.WithContext(ctx).Model(&model.Recipe{})

	if s.db.Dialector.Name() == "postgres" {
		vec := model.Embed(query)
		subQuery := s.db.Model(&model.Recipe{}).
			Select("id, embedding <-> ? as similarity", vec).
			Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(ingredients::text) LIKE ?",
				like, like, like)

		dbQuery = dbQuery.Joins("JOIN (?) as search ON recipes.id = search.id", subQuery).
			Order("search.similarity ASC")
	} else {
		// Fallback to keyword search for non-PostgreSQL databases
		dbQuery = dbQuery.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(ingredients) LIKE ?",
			like, like, like).
			Order("created_at, id")
	}

	var recipes []*model.Recipe
	if err := dbQuery.Limit(pageSize(limit)).Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to search recipes: %w", err)
	}
	return s.present(ctx, recipes...), nil
}

// FavoriteRecipe marks a recipe as a favorite of the user. Repeating it is a no-op.
func (s *RecipeService) FavoriteRecipe(ctx context.Context, userID, recipeID uuid.UUID) error {
	if _, err := s.findRecipe(ctx, recipeID); err != nil {
		return err
	}

	favorite := model.RecipeFavorite{RecipeID: recipeID, UserID: userID}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&favorite).Error
	if err != nil {
		return fmt.Errorf("failed to favorite recipe: %w", err)
	}
	return nil
}

// UnfavoriteRecipe removes a favorite. Removing a missing favorite is a no-op.
func (s *RecipeService) UnfavoriteRecipe(ctx context.Context, userID, recipeID uuid.UUID) error {
	err := s.db.WithContext(ctx).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		Delete(&model.RecipeFavorite{}).Error
	if err != nil {
		return fmt.Errorf("failed to unfavorite recipe: %w", err)
	}
	return nil
}

// GetFavoriteRecipes returns the user's favorites, most recently added first
func (s *RecipeService) GetFavoriteRecipes(ctx context.Context, userID uuid.UUID) ([]*model.Recipe, error) {
	var recipes []*model.Recipe
	err := s.db.WithContext(ctx).
		Joins("JOIN recipe_favorites ON recipe_favorites.recipe_id = recipes.id").
		Where("recipe_favorites.user_id = ?", userID).
		Order("recipe_favorites.created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get favorite recipes: %w", err)
	}
	return s.present(ctx, recipes...), nil
}

func (s *RecipeService) findRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return &recipe, nil
}

func (s *RecipeService) whereHasTag(query *gorm.DB, tag string) *gorm.DB {
	tag = strings.ToLower(tag)
	if s.db.Dialector.Name() == "postgres" {
		return query.Where("EXISTS (SELECT 1 FROM jsonb_array_elements_text(recipes.tags) AS t WHERE LOWER(t) = ?)", tag)
	}
	return query.Where("EXISTS (SELECT 1 FROM json_each(recipes.tags) WHERE LOWER(json_each.value) = ?)", tag)
}

// invalidate drops cached recommendations after a catalog change.
func (s *RecipeService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		logging.Warn().Err(err).Msg("failed to invalidate recommendation cache")
	}
}

// present signs image URLs in place for delivery to clients.
func (s *RecipeService) present(ctx context.Context, recipes ...*model.Recipe) []*model.Recipe {
	if s.signer == nil {
		return recipes
	}
	for _, r := range recipes {
		if r.ImageURL == "" {
			continue
		}
		signed, err := s.signer.SignImageURL(ctx, r.ImageURL)
		if err != nil {
			logging.Warn().Err(err).Str("recipe_id", r.ID.String()).Msg("failed to sign image url")
			continue
		}
		r.ImageURL = signed
	}
	return recipes
}

func applyUpdate(recipe *model.Recipe, req *types.UpdateRecipeRequest) {
	if req.Name != nil {
		recipe.Name = *req.Name
	}
	if req.Description != nil {
		recipe.Description = *req.Description
	}
	if req.Category != nil {
		recipe.Category = *req.Category
	}
	if req.Cuisine != nil {
		recipe.Cuisine = *req.Cuisine
	}
	if req.ImageURL != nil {
		recipe.ImageURL = *req.ImageURL
	}
	if req.Ingredients != nil {
		recipe.Ingredients = model.JSONBStringArray(req.Ingredients)
	}
	if req.Instructions != nil {
		recipe.Instructions = model.JSONBStringArray(req.Instructions)
	}
	if req.Tags != nil {
		recipe.Tags = model.JSONBStringArray(req.Tags)
	}
	if req.Calories != nil {
		recipe.Calories = *req.Calories
	}
	if req.Protein != nil {
		recipe.Protein = *req.Protein
	}
	if req.Carbs != nil {
		recipe.Carbs = *req.Carbs
	}
	if req.Fat != nil {
		recipe.Fat = *req.Fat
	}
}

func pageSize(limit int) int {
	switch {
	case limit <= 0:
		return defaultPageSize
	case limit > maxPageSize:
		return maxPageSize
	default:
		return limit
	}
}
