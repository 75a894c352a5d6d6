package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/recipe-catalog/backend/internal/logging"
	"github.com/pageza/recipe-catalog/backend/internal/middleware"
	"github.com/pageza/recipe-catalog/backend/internal/model"
	"github.com/pageza/recipe-catalog/backend/internal/recommend"
	"github.com/pageza/recipe-catalog/backend/internal/service"
	"github.com/pageza/recipe-catalog/backend/internal/types"
)

// SimilarLimits bounds the limit query parameter of the similar endpoint
type SimilarLimits struct {
	Default int
	Max     int
}

// DefaultSimilarLimits are used when none are configured
var DefaultSimilarLimits = SimilarLimits{Default: recommend.DefaultLimit, Max: 50}

type RecipeHandler struct {
	recipes service.IRecipeService
	auth    service.IAuthService
	limits  SimilarLimits
	// writeLimiter guards catalog writes; nil disables rate limiting.
	writeLimiter *middleware.RateLimiter
}

func NewRecipeHandler(recipes service.IRecipeService, auth service.IAuthService, limits SimilarLimits, writeLimiter *middleware.RateLimiter) *RecipeHandler {
	if limits.Default <= 0 {
		limits.Default = DefaultSimilarLimits.Default
	}
	if limits.Max < limits.Default {
		limits.Max = max(DefaultSimilarLimits.Max, limits.Default)
	}
	return &RecipeHandler{
		recipes:      recipes,
		auth:         auth,
		limits:       limits,
		writeLimiter: writeLimiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	authenticated := middleware.AuthMiddleware(h.auth)

	writes := []gin.HandlerFunc{authenticated, middleware.RequireAdmin(h.auth)}
	if h.writeLimiter != nil {
		writes = append(writes, h.writeLimiter.RateLimitMiddleware())
	}
	with := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, writes...), handler)
	}

	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.GET("/:id/similar", h.SimilarRecipes)
		recipes.POST("", with(h.CreateRecipe)...)
		recipes.PUT("/:id", with(h.UpdateRecipe)...)
		recipes.DELETE("/:id", with(h.DeleteRecipe)...)
		recipes.POST("/:id/favorite", authenticated, h.FavoriteRecipe)
		recipes.DELETE("/:id/favorite", authenticated, h.UnfavoriteRecipe)
	}
	router.GET("/favorites", authenticated, h.GetFavorites)
}

// ListRecipes lists or searches the catalog.
// Query parameters: q, category, cuisine, tag, limit, offset.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	limit, ok := queryInt(c, "limit", 0)
	if !ok {
		return
	}
	offset, ok := queryInt(c, "offset", 0)
	if !ok {
		return
	}

	var (
		recipes []*model.Recipe
		err     error
	)
	if q := c.Query("q"); q != "" {
		recipes, err = h.recipes.SearchRecipes(c.Request.Context(), q, limit)
	} else {
		recipes, err = h.recipes.ListRecipes(c.Request.Context(), types.RecipeFilters{
			Category: c.Query("category"),
			Cuisine:  c.Query("cuisine"),
			Tag:      c.Query("tag"),
			Limit:    limit,
			Offset:   offset,
		})
	}
	if err != nil {
		logging.Error().Err(err).Msg("failed to fetch recipes")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to fetch recipe")
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// SimilarRecipes returns the recipes most similar to :id.
// limit defaults to the configured default and is capped at the configured maximum.
func (h *RecipeHandler) SimilarRecipes(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit", h.limits.Default)
	if !ok {
		return
	}
	limit = min(limit, h.limits.Max)

	recs, err := h.recipes.SimilarRecipes(c.Request.Context(), id, limit)
	if err != nil {
		h.writeError(c, err, "Failed to find similar recipes")
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := middleware.UserID(c)
	recipe := &model.Recipe{
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		Cuisine:      req.Cuisine,
		ImageURL:     req.ImageURL,
		Tags:         model.JSONBStringArray(req.Tags),
		Ingredients:  model.JSONBStringArray(req.Ingredients),
		Instructions: model.JSONBStringArray(req.Instructions),
		Calories:     req.Calories,
		Protein:      req.Protein,
		Carbs:        req.Carbs,
		Fat:          req.Fat,
		UserID:       userID,
	}

	created, err := h.recipes.CreateRecipe(c.Request.Context(), recipe)
	if err != nil {
		h.writeError(c, err, "Failed to create recipe")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recipe": created})
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	var req types.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.recipes.UpdateRecipe(c.Request.Context(), id, &req)
	if err != nil {
		h.writeError(c, err, "Failed to update recipe")
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": updated})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), id); err != nil {
		h.writeError(c, err, "Failed to delete recipe")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted successfully"})
}

func (h *RecipeHandler) FavoriteRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	userID, _ := middleware.UserID(c)

	if err := h.recipes.FavoriteRecipe(c.Request.Context(), userID, id); err != nil {
		h.writeError(c, err, "Failed to favorite recipe")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recipe favorited successfully"})
}

func (h *RecipeHandler) UnfavoriteRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	userID, _ := middleware.UserID(c)

	if err := h.recipes.UnfavoriteRecipe(c.Request.Context(), userID, id); err != nil {
		h.writeError(c, err, "Failed to unfavorite recipe")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recipe unfavorited successfully"})
}

func (h *RecipeHandler) GetFavorites(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	recipes, err := h.recipes.GetFavoriteRecipes(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err, "Failed to fetch favorites")
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) writeError(c *gin.Context, err error, message string) {
	if errors.Is(err, service.ErrRecipeNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	logging.Error().Err(err).Str("path", c.FullPath()).Msg(message)
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}

func recipeID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return uuid.Nil, false
	}
	return id, true
}

// queryInt reads a non-negative integer query parameter, answering 400 when it is malformed.
func queryInt(c *gin.Context, name string, fallback int) (int, bool) {
	raw, present := c.GetQuery(name)
	if !present || raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " parameter"})
		return 0, false
	}
	return n, true
}
