package recommend

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// minChunk keeps tiny pools on a single goroutine.
const minChunk = 64

// Engine runs Recommend with tunable threshold, tie-breaking and parallelism.
// The zero value behaves exactly like the package-level Recommend.
type Engine struct {
	minScore     float64
	minScoreSet  bool
	workers      int
	tieBreakByID bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithMinScore overrides the exclusive score threshold.
func WithMinScore(score float64) Option {
	return func(e *Engine) {
		e.minScore = score
		e.minScoreSet = true
	}
}

// WithWorkers scores the pool on up to n goroutines. Values below 2 score sequentially.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.workers = n
	}
}

// WithTieBreakByID orders equal scores by ascending recipe ID.
func WithTieBreakByID() Option {
	return func(e *Engine) {
		e.tieBreakByID = true
	}
}

// NewEngine creates an Engine with the given options applied.
func NewEngine(opts ...Option) Engine {
	var e Engine
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// Recommend ranks pool against target. Scoring is split across workers when
// configured; the merged output is identical to a sequential run. The only
// error returned is ctx.Err() when the context ends before scoring completes.
func (e Engine) Recommend(ctx context.Context, target Recipe, pool []Recipe, limit int) ([]Result, error) {
	if limit <= 0 {
		return []Result{}, nil
	}

	minScore := MinScore
	if e.minScoreSet {
		minScore = e.minScore
	}

	scored := make([]Result, len(pool))
	kept := make([]bool, len(pool))

	scoreRange := func(ctx context.Context, lo, hi int) error {
		for i := lo; i < hi; i++ {
			if i%minChunk == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			scored[i], kept[i] = evaluate(target, pool[i], minScore)
		}
		return nil
	}

	workers := e.workers
	if maxWorkers := (len(pool) + minChunk - 1) / minChunk; workers > maxWorkers {
		workers = maxWorkers
	}

	if workers < 2 {
		if err := scoreRange(ctx, 0, len(pool)); err != nil {
			return nil, err
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		chunk := (len(pool) + workers - 1) / workers
		for lo := 0; lo < len(pool); lo += chunk {
			lo := lo
			hi := lo + chunk
			if hi > len(pool) {
				hi = len(pool)
			}
			g.Go(func() error {
				return scoreRange(gctx, lo, hi)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	results := make([]Result, 0, len(pool))
	for i := range scored {
		if kept[i] {
			results = append(results, scored[i])
		}
	}

	return rank(results, limit, e.tieBreakByID), nil
}
