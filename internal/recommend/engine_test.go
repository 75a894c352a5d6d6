package recommend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineMatchesSequentialRecommend(t *testing.T) {
	for _, workers := range []int{0, 1, 2, 4, 16} {
		for seed := int64(1); seed <= 5; seed++ {
			target, pool := randomPool(seed, 700)

			want := Recommend(target, pool, 20)
			got, err := NewEngine(WithWorkers(workers)).Recommend(context.Background(), target, pool, 20)

			require.NoError(t, err)
			assert.Equal(t, want, got, "workers=%d seed=%d", workers, seed)
		}
	}
}

func TestEngineZeroValue(t *testing.T) {
	target, pool := randomPool(7, 50)

	var e Engine
	got, err := e.Recommend(context.Background(), target, pool, DefaultLimit)
	require.NoError(t, err)
	assert.Equal(t, Recommend(target, pool, DefaultLimit), got)
}

func TestEngineMinScore(t *testing.T) {
	target := Recipe{ID: "t", Cuisine: "Italian", Category: "Dessert"}
	pool := []Recipe{
		{ID: "both", Cuisine: "Italian", Category: "Dessert"},
		{ID: "cuisine", Cuisine: "Italian"},
		{ID: "category", Category: "Dessert"},
	}

	got, err := NewEngine(WithMinScore(0.35)).Recommend(context.Background(), target, pool, DefaultLimit)
	require.NoError(t, err)
	assert.Equal(t, []string{"both", "cuisine"}, ids(got))
}

func TestEngineMinScoreZero(t *testing.T) {
	target := Recipe{ID: "t", Ingredients: []string{"flour", "sugar"}}
	pool := []Recipe{
		{ID: "pantry", Ingredients: []string{"Flour", "sugar"}},
		{ID: "nothing", Ingredients: []string{"salt"}},
	}

	got, err := NewEngine(WithMinScore(0)).Recommend(context.Background(), target, pool, DefaultLimit)
	require.NoError(t, err)
	require.Equal(t, []string{"pantry"}, ids(got))
	assert.InDelta(t, 0.1, got[0].Score, 1e-9)

	got, err = NewEngine().Recommend(context.Background(), target, pool, DefaultLimit)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEngineTieBreakByID(t *testing.T) {
	target := Recipe{ID: "t", Category: "Dessert", Tags: []string{"x"}}
	pool := []Recipe{
		{ID: "z", Category: "Dessert"},
		{ID: "a", Category: "Dessert"},
		{ID: "m", Category: "Dessert", Tags: []string{"X"}},
	}

	got, err := NewEngine(WithTieBreakByID()).Recommend(context.Background(), target, pool, DefaultLimit)
	require.NoError(t, err)
	assert.Equal(t, []string{"m", "a", "z"}, ids(got))
}

func TestEngineLimit(t *testing.T) {
	target, pool := randomPool(3, 100)
	e := NewEngine(WithWorkers(4))

	got, err := e.Recommend(context.Background(), target, pool, 0)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got, err = e.Recommend(context.Background(), target, pool, 3)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(got), 3)
}

func TestEngineCancelledContext(t *testing.T) {
	target, pool := randomPool(9, 1000)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 8} {
		got, err := NewEngine(WithWorkers(workers)).Recommend(ctx, target, pool, DefaultLimit)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, got)
	}
}
