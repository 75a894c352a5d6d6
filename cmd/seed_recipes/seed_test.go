package main

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-catalog/backend/internal/model"
	"github.com/pageza/recipe-catalog/backend/internal/testhelpers"
)

func TestLoadRecipesAcceptsLegacyLists(t *testing.T) {
	recipes, err := LoadRecipes(strings.NewReader(`[
		{"name": "A", "tags": "pasta, , Spicy ", "ingredients": ["tomato"]},
		{"name": "B", "tags": null}
	]`))
	require.NoError(t, err)
	require.Len(t, recipes, 2)

	assert.Equal(t, model.JSONBStringArray{"pasta", "Spicy"}, recipes[0].Tags)
	assert.Equal(t, model.JSONBStringArray{"tomato"}, recipes[0].Ingredients)
	assert.Empty(t, recipes[1].Tags)
}

func TestLoadRecipesRejects(t *testing.T) {
	_, err := LoadRecipes(strings.NewReader(`[{"description": "no name"}]`))
	assert.Error(t, err)

	_, err = LoadRecipes(strings.NewReader(`[{"name": "A", "tags": 42}]`))
	assert.Error(t, err)
}

func TestSeedTestdata(t *testing.T) {
	f, err := os.Open("testdata/recipes.json")
	require.NoError(t, err)
	defer f.Close()

	recipes, err := LoadRecipes(f)
	require.NoError(t, err)
	require.Len(t, recipes, 6)

	db := testhelpers.SetupSQLite(t)
	inserted, skipped, err := Seed(context.Background(), db, recipes)
	require.NoError(t, err)
	assert.Equal(t, 6, inserted)
	assert.Zero(t, skipped)

	var arrabbiata model.Recipe
	require.NoError(t, db.First(&arrabbiata, "name = ?", "Penne Arrabbiata").Error)
	assert.Equal(t, model.JSONBStringArray{"pasta", "spicy", "vegetarian"}, arrabbiata.Tags)
	assert.Equal(t, model.JSONBStringArray{"penne", "tomato", "garlic", "chili"}, arrabbiata.Ingredients)

	again, err := LoadRecipes(mustOpen(t, "testdata/recipes.json"))
	require.NoError(t, err)
	inserted, skipped, err = Seed(context.Background(), db, again)
	require.NoError(t, err)
	assert.Zero(t, inserted)
	assert.Equal(t, 6, skipped)
}

func mustOpen(t *testing.T, path string) *os.File {
	f, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}
