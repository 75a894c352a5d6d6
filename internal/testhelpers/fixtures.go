package testhelpers

import (
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/recipe-catalog/backend/internal/model"
)

// CreateRecipe inserts a recipe with the given classification.
func CreateRecipe(t *testing.T, db *gorm.DB, name, cuisine, category string, tags, ingredients []string) *model.Recipe {
	t.Helper()

	recipe := &model.Recipe{
		Name:         name,
		Description:  name + " description",
		Cuisine:      cuisine,
		Category:     category,
		Tags:         model.JSONBStringArray(tags),
		Ingredients:  model.JSONBStringArray(ingredients),
		Instructions: model.JSONBStringArray{"cook"},
	}
	if err := db.Create(recipe).Error; err != nil {
		t.Fatalf("failed to create recipe %q: %v", name, err)
	}
	return recipe
}

// CreateUser inserts a user whose password is "password123".
func CreateUser(t *testing.T, db *gorm.DB, username string, admin bool) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &model.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		IsAdmin:      admin,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %q: %v", username, err)
	}
	return user
}
