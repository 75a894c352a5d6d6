package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/recipe-catalog/backend/internal/model"
	"github.com/pageza/recipe-catalog/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, email, password, username string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GenerateToken(claims *types.TokenClaims) (string, error)
	TokenFor(user *model.User) (string, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*model.User, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error)
	UpdateRecipe(ctx context.Context, id uuid.UUID, req *types.UpdateRecipeRequest) (*model.Recipe, error)
	DeleteRecipe(ctx context.Context, id uuid.UUID) error
	ListRecipes(ctx context.Context, filters types.RecipeFilters) ([]*model.Recipe, error)
	SearchRecipes(ctx context.Context, query string, limit int) ([]*model.Recipe, error)
	FavoriteRecipe(ctx context.Context, userID, recipeID uuid.UUID) error
	UnfavoriteRecipe(ctx context.Context, userID, recipeID uuid.UUID) error
	GetFavoriteRecipes(ctx context.Context, userID uuid.UUID) ([]*model.Recipe, error)
	SimilarRecipes(ctx context.Context, id uuid.UUID, limit int) ([]RecipeRecommendation, error)
}

// ImageURLSigner turns stored image references into URLs a client can fetch.
// config.S3Config implements it.
type ImageURLSigner interface {
	SignImageURL(ctx context.Context, raw string) (string, error)
}
