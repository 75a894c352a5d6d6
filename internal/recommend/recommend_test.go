package recommend

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func italianDessert(id string, tags, ingredients []string) Recipe {
	return Recipe{
		ID:          id,
		Name:        "Recipe " + id,
		Cuisine:     "Italian",
		Category:    "Dessert",
		Tags:        tags,
		Ingredients: ingredients,
	}
}

func TestScore(t *testing.T) {
	target := italianDessert("t", []string{"sweet", "baked"}, []string{"flour", "sugar"})

	tests := []struct {
		name      string
		candidate Recipe
		want      float64
	}{
		{
			name:      "partial overlap on every factor",
			candidate: italianDessert("c", []string{"sweet", "quick"}, []string{"flour", "butter"}),
			want:      0.40 + 0.30 + 0.20/3 + 0.10/3,
		},
		{
			name: "nothing shared",
			candidate: Recipe{
				ID: "c", Cuisine: "Thai", Category: "Soup",
				Tags: []string{"spicy"}, Ingredients: []string{"lemongrass"},
			},
			want: 0,
		},
		{
			name:      "category only",
			candidate: Recipe{ID: "c", Cuisine: "French", Category: "Dessert"},
			want:      0.30,
		},
		{
			name:      "identical",
			candidate: italianDessert("c", []string{"sweet", "baked"}, []string{"flour", "sugar"}),
			want:      1.0,
		},
		{
			name:      "tags compared case-insensitively",
			candidate: Recipe{ID: "c", Tags: []string{"SWEET", "Baked"}},
			want:      0.20,
		},
		{
			name:      "cuisine compared case-sensitively",
			candidate: Recipe{ID: "c", Cuisine: "italian"},
			want:      0,
		},
		{
			name:      "empty lists contribute nothing",
			candidate: Recipe{ID: "c", Cuisine: "Italian"},
			want:      0.40,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Score(target, tt.candidate), 1e-9)
		})
	}
}

func TestScoreEmptyTargetLists(t *testing.T) {
	a := Recipe{ID: "a"}
	b := Recipe{ID: "b"}
	assert.Equal(t, 0.0, Score(a, b))
}

func TestScoreBlankCuisineNeverMatches(t *testing.T) {
	a := Recipe{ID: "a", Category: "Main"}
	b := Recipe{ID: "b", Category: "Main"}
	assert.InDelta(t, 0.30, Score(a, b), 1e-9)
}

func TestScoreDuplicatesCollapse(t *testing.T) {
	a := Recipe{ID: "a", Tags: []string{"Quick", "quick", "QUICK"}}
	b := Recipe{ID: "b", Tags: []string{"quick"}}
	assert.InDelta(t, 0.20, Score(a, b), 1e-9)
}

func TestExplain(t *testing.T) {
	target := italianDessert("t", []string{"sweet", "baked"}, []string{"flour", "sugar"})

	tests := []struct {
		name      string
		target    Recipe
		candidate Recipe
		want      []string
	}{
		{
			name:      "all factors",
			target:    target,
			candidate: italianDessert("c", []string{"sweet", "quick"}, []string{"flour", "butter"}),
			want: []string{
				"Same cuisine (Italian)",
				"Same category (Dessert)",
				"Similar tags: sweet",
				"Similar ingredients: flour",
			},
		},
		{
			name:      "category only",
			target:    target,
			candidate: Recipe{ID: "c", Cuisine: "French", Category: "Dessert"},
			want:      []string{"Same category (Dessert)"},
		},
		{
			name:      "fallback",
			target:    target,
			candidate: Recipe{ID: "c", Cuisine: "Thai", Category: "Soup"},
			want:      []string{"Similar recipe"},
		},
		{
			name:      "tags capped at three in target order and casing",
			target:    Recipe{ID: "t", Tags: []string{"Quick", "Easy", "Vegan", "Cheap"}},
			candidate: Recipe{ID: "c", Tags: []string{"cheap", "vegan", "easy", "quick"}},
			want:      []string{"Similar tags: Quick, Easy, Vegan"},
		},
		{
			name:      "ingredients capped at two",
			target:    Recipe{ID: "t", Ingredients: []string{"Garlic", "Onion", "Basil"}},
			candidate: Recipe{ID: "c", Ingredients: []string{"basil", "onion", "garlic"}},
			want:      []string{"Similar ingredients: Garlic, Onion"},
		},
		{
			name:      "repeated target tags reported once",
			target:    Recipe{ID: "t", Tags: []string{"Spicy", "spicy", "hot"}},
			candidate: Recipe{ID: "c", Tags: []string{"SPICY", "HOT"}},
			want:      []string{"Similar tags: Spicy, hot"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Explain(tt.target, tt.candidate))
		})
	}
}

func TestRecommend(t *testing.T) {
	target := italianDessert("t", []string{"sweet", "baked"}, []string{"flour", "sugar"})

	t.Run("empty pool", func(t *testing.T) {
		got := Recommend(target, nil, DefaultLimit)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("zero limit", func(t *testing.T) {
		pool := []Recipe{italianDessert("a", nil, nil)}
		assert.Empty(t, Recommend(target, pool, 0))
		assert.Empty(t, Recommend(target, pool, -3))
	})

	t.Run("excludes target and unrelated recipes", func(t *testing.T) {
		pool := []Recipe{
			target,
			{ID: "unrelated", Cuisine: "Thai", Category: "Soup"},
			{ID: "category", Cuisine: "French", Category: "Dessert"},
		}
		got := Recommend(target, pool, DefaultLimit)
		require.Len(t, got, 1)
		assert.Equal(t, "category", got[0].Recipe.ID)
		assert.InDelta(t, 0.30, got[0].Score, 1e-9)
		assert.Equal(t, []string{"Same category (Dessert)"}, got[0].Reasons)
	})

	t.Run("score equal to threshold is excluded", func(t *testing.T) {
		pool := []Recipe{
			{ID: "ingredients", Ingredients: []string{"Flour", "SUGAR"}},
			{ID: "half-tags", Tags: []string{"sweet"}},
		}
		assert.Empty(t, Recommend(target, pool, DefaultLimit))
	})

	t.Run("keeps the highest scores in descending order", func(t *testing.T) {
		var pool []Recipe
		for i := 0; i < 10; i++ {
			r := Recipe{ID: fmt.Sprintf("r%d", i), Category: "Dessert"}
			if i%2 == 0 {
				r.Cuisine = "Italian"
			}
			if i%3 == 0 {
				r.Tags = []string{"sweet"}
			}
			pool = append(pool, r)
		}

		// r0, r6: cuisine+category+half the tags; r2, r4, r8: cuisine+category;
		// r3, r9: category+half the tags; the rest: category only.
		got := Recommend(target, pool, 6)
		require.Len(t, got, 6)
		assert.Equal(t, []string{"r0", "r6", "r2", "r4", "r8", "r3"}, ids(got))
		for i := 1; i < len(got); i++ {
			assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
		}
		assert.InDelta(t, 0.80, got[0].Score, 1e-9)
		assert.InDelta(t, 0.40, got[5].Score, 1e-9)
	})

	t.Run("ties keep pool order", func(t *testing.T) {
		pool := []Recipe{
			{ID: "z", Category: "Dessert"},
			{ID: "a", Category: "Dessert"},
			{ID: "m", Category: "Dessert"},
		}
		got := Recommend(target, pool, DefaultLimit)
		require.Len(t, got, 3)
		assert.Equal(t, []string{"z", "a", "m"}, ids(got))
	})
}

func ids(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Recipe.ID
	}
	return out
}

var (
	cuisines    = []string{"Italian", "Thai", "Mexican", "French", "italian", ""}
	categories  = []string{"Dessert", "Main", "Soup", "Salad"}
	vocabulary  = []string{"sweet", "Quick", "baked", "SPICY", "vegan", "cheap", "easy"}
	ingredients = []string{"flour", "Sugar", "butter", "garlic", "ONION", "basil", "rice"}
)

func randomRecipe(rng *rand.Rand, id string) Recipe {
	pick := func(words []string) []string {
		var out []string
		for _, w := range words {
			if rng.Intn(3) == 0 {
				out = append(out, w)
			}
		}
		return out
	}
	return Recipe{
		ID:          id,
		Cuisine:     cuisines[rng.Intn(len(cuisines))],
		Category:    categories[rng.Intn(len(categories))],
		Tags:        pick(vocabulary),
		Ingredients: pick(ingredients),
	}
}

func randomPool(seed int64, n int) (Recipe, []Recipe) {
	rng := rand.New(rand.NewSource(seed))
	target := randomRecipe(rng, "target")
	pool := make([]Recipe, 0, n+1)
	for i := 0; i < n; i++ {
		pool = append(pool, randomRecipe(rng, fmt.Sprintf("r%03d", i)))
	}
	pool = append(pool, target)
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return target, pool
}

func TestRecommendProperties(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		target, pool := randomPool(seed, 80)
		limit := int(seed % 9)

		got := Recommend(target, pool, limit)

		assert.LessOrEqual(t, len(got), max(limit, 0), "seed %d", seed)
		for i, r := range got {
			assert.NotEqual(t, target.ID, r.Recipe.ID, "seed %d", seed)
			assert.Greater(t, r.Score, MinScore, "seed %d", seed)
			assert.LessOrEqual(t, r.Score, 1.0, "seed %d", seed)
			assert.NotEmpty(t, r.Reasons, "seed %d", seed)
			if i > 0 {
				assert.GreaterOrEqual(t, got[i-1].Score, r.Score, "seed %d", seed)
			}
		}

		again := Recommend(target, pool, limit)
		assert.Equal(t, got, again, "seed %d", seed)
	}
}

func TestScoreProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		a := randomRecipe(rng, "a")
		b := randomRecipe(rng, "b")

		ab := Score(a, b)
		assert.GreaterOrEqual(t, ab, 0.0)
		assert.LessOrEqual(t, ab, 1.0+1e-12)
		assert.Equal(t, ab, Score(b, a))
		assert.Equal(t, ab, Score(a, b))
		assert.NotEmpty(t, Explain(a, b))
	}
}
