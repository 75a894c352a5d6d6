package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pageza/recipe-catalog/backend/internal/model"
)

// listField accepts either a JSON array of strings or a legacy comma-joined string.
type listField model.JSONBStringArray

func (l *listField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = listField{}
		return nil
	}

	if data[0] == '"' {
		var joined string
		if err := json.Unmarshal(data, &joined); err != nil {
			return err
		}
		*l = listField(model.SplitList(joined))
		return nil
	}

	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("expected a list or comma-separated string: %w", err)
	}
	*l = listField(items)
	return nil
}

// RecipeData is one entry of a seed file
type RecipeData struct {
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Cuisine      string    `json:"cuisine"`
	Category     string    `json:"category"`
	ImageURL     string    `json:"image_url"`
	Tags         listField `json:"tags"`
	Ingredients  listField `json:"ingredients"`
	Instructions listField `json:"instructions"`
	Calories     float64   `json:"calories"`
	Protein      float64   `json:"protein"`
	Carbs        float64   `json:"carbs"`
	Fat          float64   `json:"fat"`
}

// ToModel converts a seed entry into a storable recipe
func (d RecipeData) ToModel() *model.Recipe {
	return &model.Recipe{
		Name:         d.Name,
		Description:  d.Description,
		Cuisine:      d.Cuisine,
		Category:     d.Category,
		ImageURL:     d.ImageURL,
		Tags:         model.JSONBStringArray(d.Tags),
		Ingredients:  model.JSONBStringArray(d.Ingredients),
		Instructions: model.JSONBStringArray(d.Instructions),
		Calories:     d.Calories,
		Protein:      d.Protein,
		Carbs:        d.Carbs,
		Fat:          d.Fat,
	}
}

// LoadRecipes decodes a seed file, rejecting entries without a name
func LoadRecipes(r io.Reader) ([]*model.Recipe, error) {
	var entries []RecipeData
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}

	recipes := make([]*model.Recipe, 0, len(entries))
	for i, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("entry %d has no name", i)
		}
		recipes = append(recipes, e.ToModel())
	}
	return recipes, nil
}
