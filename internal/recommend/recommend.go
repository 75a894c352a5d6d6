// Package recommend ranks catalog recipes by how similar they are to a target recipe.
//
// Similarity is a weighted sum of four independent factors:
//
//	score(a, b) = 0.40 * [a.cuisine == b.cuisine] +
//	              0.30 * [a.category == b.category] +
//	              0.20 * jaccard(tags_a, tags_b) +
//	              0.10 * jaccard(ingredients_a, ingredients_b)
//
// Tags and ingredients are compared case-insensitively. Every function in this
// package is pure; callers may invoke them concurrently without coordination.
package recommend

const (
	// DefaultLimit is the number of recommendations returned when the caller has no preference.
	DefaultLimit = 6

	// MinScore is the exclusive lower bound a candidate must beat to be recommended.
	MinScore = 0.1
)

const (
	cuisineWeight    = 0.40
	categoryWeight   = 0.30
	tagWeight        = 0.20
	ingredientWeight = 0.10
)

const (
	maxReasonTags        = 3
	maxReasonIngredients = 2
)

// Recipe is the subset of a catalog recipe that participates in similarity scoring.
type Recipe struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Cuisine     string   `json:"cuisine"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Ingredients []string `json:"ingredients"`
}

// Result is a single ranked recommendation.
type Result struct {
	Recipe  Recipe   `json:"recipe"`
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
}
