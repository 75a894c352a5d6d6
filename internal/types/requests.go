package types

// CreateRecipeRequest represents the request body for creating a recipe
type CreateRecipeRequest struct {
	Name         string   `json:"name" binding:"required,max=255"`
	Description  string   `json:"description"`
	Category     string   `json:"category" binding:"required,max=50"`
	Cuisine      string   `json:"cuisine" binding:"required,max=50"`
	ImageURL     string   `json:"image_url" binding:"max=255"`
	Ingredients  []string `json:"ingredients" binding:"required,min=1"`
	Instructions []string `json:"instructions" binding:"required,min=1"`
	Tags         []string `json:"tags"`
	Calories     float64  `json:"calories" binding:"gte=0"`
	Protein      float64  `json:"protein" binding:"gte=0"`
	Carbs        float64  `json:"carbs" binding:"gte=0"`
	Fat          float64  `json:"fat" binding:"gte=0"`
}

// UpdateRecipeRequest represents the request body for updating a recipe.
// Nil fields are left unchanged.
type UpdateRecipeRequest struct {
	Name         *string  `json:"name" binding:"omitempty,max=255"`
	Description  *string  `json:"description"`
	Category     *string  `json:"category" binding:"omitempty,max=50"`
	Cuisine      *string  `json:"cuisine" binding:"omitempty,max=50"`
	ImageURL     *string  `json:"image_url" binding:"omitempty,max=255"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Tags         []string `json:"tags"`
	Calories     *float64 `json:"calories" binding:"omitempty,gte=0"`
	Protein      *float64 `json:"protein" binding:"omitempty,gte=0"`
	Carbs        *float64 `json:"carbs" binding:"omitempty,gte=0"`
	Fat          *float64 `json:"fat" binding:"omitempty,gte=0"`
}

// RegisterRequest represents the request body for account registration
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Username string `json:"username" binding:"required,min=3,max=50"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
