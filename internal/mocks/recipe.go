package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipe-catalog/backend/internal/model"
	"github.com/pageza/recipe-catalog/backend/internal/service"
	"github.com/pageza/recipe-catalog/backend/internal/types"
)

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

func recipeResult(args mock.Arguments) (*model.Recipe, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func recipesResult(args mock.Arguments) ([]*model.Recipe, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Recipe), args.Error(1)
}

// CreateRecipe mocks the CreateRecipe method
func (m *MockRecipeService) CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	return recipeResult(m.Called(ctx, recipe))
}

// GetRecipe mocks the GetRecipe method
func (m *MockRecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	return recipeResult(m.Called(ctx, id))
}

// UpdateRecipe mocks the UpdateRecipe method
func (m *MockRecipeService) UpdateRecipe(ctx context.Context, id uuid.UUID, req *types.UpdateRecipeRequest) (*model.Recipe, error) {
	return recipeResult(m.Called(ctx, id, req))
}

// DeleteRecipe mocks the DeleteRecipe method
func (m *MockRecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// ListRecipes mocks the ListRecipes method
func (m *MockRecipeService) ListRecipes(ctx context.Context, filters types.RecipeFilters) ([]*model.Recipe, error) {
	return recipesResult(m.Called(ctx, filters))
}

// SearchRecipes mocks the SearchRecipes method
func (m *MockRecipeService) SearchRecipes(ctx context.Context, query string, limit int) ([]*model.Recipe, error) {
	return recipesResult(m.Called(ctx, query, limit))
}

func (m *MockRecipeService) FavoriteRecipe(ctx context.Context, userID, recipeID uuid.UUID) error {
	return m.Called(ctx, userID, recipeID).Error(0)
}

func (m *MockRecipeService) UnfavoriteRecipe(ctx context.Context, userID, recipeID uuid.UUID) error {
	return m.Called(ctx, userID, recipeID).Error(0)
}

func (m *MockRecipeService) GetFavoriteRecipes(ctx context.Context, userID uuid.UUID) ([]*model.Recipe, error) {
	return recipesResult(m.Called(ctx, userID))
}

// SimilarRecipes mocks the SimilarRecipes method
func (m *MockRecipeService) SimilarRecipes(ctx context.Context, id uuid.UUID, limit int) ([]service.RecipeRecommendation, error) {
	args := m.Called(ctx, id, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.RecipeRecommendation), args.Error(1)
}

var (
	_ service.IRecipeService = (*MockRecipeService)(nil)
	_ service.IAuthService   = (*MockAuthService)(nil)
)
