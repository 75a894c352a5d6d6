package recommend

import "sort"

// Recommend ranks pool against target and returns at most limit results with
// descending scores. The target itself (matched by ID) is never returned, and
// candidates scoring MinScore or less are dropped. Equal scores keep their pool order.
func Recommend(target Recipe, pool []Recipe, limit int) []Result {
	if limit <= 0 {
		return []Result{}
	}

	results := make([]Result, 0, len(pool))
	for _, candidate := range pool {
		if res, ok := evaluate(target, candidate, MinScore); ok {
			results = append(results, res)
		}
	}

	return rank(results, limit, false)
}

// evaluate scores a single candidate, reporting false when it is the target
// or does not clear minScore.
func evaluate(target, candidate Recipe, minScore float64) (Result, bool) {
	if candidate.ID == target.ID {
		return Result{}, false
	}

	score := Score(target, candidate)
	if score <= minScore {
		return Result{}, false
	}

	return Result{
		Recipe:  candidate,
		Score:   score,
		Reasons: Explain(target, candidate),
	}, true
}

// rank sorts results in place by score, highest first, and truncates to limit.
func rank(results []Result, limit int, tieBreakByID bool) []Result {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if tieBreakByID {
			return results[i].Recipe.ID < results[j].Recipe.ID
		}
		return false
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}
