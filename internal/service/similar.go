package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/recipe-catalog/backend/internal/logging"
	"github.com/pageza/recipe-catalog/backend/internal/metrics"
	"github.com/pageza/recipe-catalog/backend/internal/model"
	"github.com/pageza/recipe-catalog/backend/internal/recommend"
)

// RecipeRecommendation is a stored recipe with its similarity to the target
type RecipeRecommendation struct {
	Recipe  *model.Recipe `json:"recipe"`
	Score   float64       `json:"score"`
	Reasons []string      `json:"reasons"`
}

// SimilarRecipes returns up to limit recipes most similar to the recipe with the given id.
// An unknown id yields ErrRecipeNotFound; limit <= 0 yields an empty list.
func (s *RecipeService) SimilarRecipes(ctx context.Context, id uuid.UUID, limit int) ([]RecipeRecommendation, error) {
	// Pinned before any row loads; a concurrent write leaves this ranking
	// under the older version.
	version, cached := s.cacheVersion(ctx)

	target, err := s.findRecipe(ctx, id)
	if err != nil {
		if errors.Is(err, ErrRecipeNotFound) {
			metrics.RecommendRequests.WithLabelValues("not_found").Inc()
		} else {
			metrics.RecommendRequests.WithLabelValues("error").Inc()
		}
		return nil, err
	}
	if limit <= 0 {
		metrics.RecommendRequests.WithLabelValues("ok").Inc()
		return []RecipeRecommendation{}, nil
	}

	if cached {
		if recs, ok := s.cachedRecommendations(ctx, version, id, limit); ok {
			metrics.RecommendRequests.WithLabelValues("ok").Inc()
			return recs, nil
		}
	}

	var rows []*model.Recipe
	err = s.db.WithContext(ctx).
		Where("id <> ?", id).
		Order("created_at, id").
		Limit(s.settings.MaxCandidates).
		Find(&rows).Error
	if err != nil {
		metrics.RecommendRequests.WithLabelValues("error").Inc()
		return nil, err
	}

	pool := make([]recommend.Recipe, len(rows))
	byID := make(map[string]*model.Recipe, len(rows))
	for i, row := range rows {
		pool[i] = row.ToEngine()
		byID[pool[i].ID] = row
	}

	start := time.Now()
	results, err := s.engine.Recommend(ctx, target.ToEngine(), pool, limit)
	metrics.RecommendDuration.Observe(time.Since(start).Seconds())
	metrics.RecommendCandidates.Observe(float64(len(pool)))
	if err != nil {
		metrics.RecommendRequests.WithLabelValues("error").Inc()
		return nil, err
	}

	recs := make([]RecipeRecommendation, 0, len(results))
	scored := make([]ScoredRecipe, 0, len(results))
	for _, r := range results {
		recs = append(recs, RecipeRecommendation{Recipe: byID[r.Recipe.ID], Score: r.Score, Reasons: r.Reasons})
		scored = append(scored, ScoredRecipe{ID: r.Recipe.ID, Score: r.Score, Reasons: r.Reasons})
	}

	if cached {
		if err := s.cache.Set(ctx, version, id, limit, scored); err != nil {
			logging.Warn().Err(err).Str("recipe_id", id.String()).Msg("failed to cache recommendations")
		}
	}

	s.presentRecommendations(ctx, recs)
	metrics.RecommendRequests.WithLabelValues("ok").Inc()
	logging.Debug().
		Str("recipe_id", id.String()).
		Int("candidates", len(pool)).
		Int("results", len(recs)).
		Msg("similar recipes ranked")
	return recs, nil
}

// cacheVersion reports the catalog version, or false when caching is off or unavailable.
func (s *RecipeService) cacheVersion(ctx context.Context) (int64, bool) {
	if s.cache == nil {
		return 0, false
	}
	version, err := s.cache.Version(ctx)
	if err != nil {
		logging.Warn().Err(err).Msg("recommendation cache version read failed")
		metrics.RecommendCacheMisses.Inc()
		return 0, false
	}
	return version, true
}

// cachedRecommendations rebuilds a cached ranking from current rows.
// Any cache failure or a row that disappeared counts as a miss.
func (s *RecipeService) cachedRecommendations(ctx context.Context, version int64, id uuid.UUID, limit int) ([]RecipeRecommendation, bool) {
	scored, ok, err := s.cache.Get(ctx, version, id, limit)
	if err != nil {
		logging.Warn().Err(err).Str("recipe_id", id.String()).Msg("recommendation cache read failed")
	}
	if err != nil || !ok {
		metrics.RecommendCacheMisses.Inc()
		return nil, false
	}

	ids := make([]string, len(scored))
	for i, sr := range scored {
		ids[i] = sr.ID
	}

	var rows []*model.Recipe
	if len(ids) > 0 {
		if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
			metrics.RecommendCacheMisses.Inc()
			return nil, false
		}
	}
	if len(rows) != len(ids) {
		metrics.RecommendCacheMisses.Inc()
		return nil, false
	}

	byID := make(map[string]*model.Recipe, len(rows))
	for _, row := range rows {
		byID[row.ID.String()] = row
	}

	recs := make([]RecipeRecommendation, len(scored))
	for i, sr := range scored {
		recs[i] = RecipeRecommendation{Recipe: byID[sr.ID], Score: sr.Score, Reasons: sr.Reasons}
	}

	metrics.RecommendCacheHits.Inc()
	s.presentRecommendations(ctx, recs)
	return recs, true
}

func (s *RecipeService) presentRecommendations(ctx context.Context, recs []RecipeRecommendation) {
	rows := make([]*model.Recipe, len(recs))
	for i := range recs {
		rows[i] = recs[i].Recipe
	}
	s.present(ctx, rows...)
}
