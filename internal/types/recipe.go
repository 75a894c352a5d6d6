package types

// RecipeFilters narrows a catalog listing
type RecipeFilters struct {
	Category string
	Cuisine  string
	Tag      string
	Exclude  []string
	Limit    int
	Offset   int
}
