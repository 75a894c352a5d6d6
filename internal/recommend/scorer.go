package recommend

import "strings"

// Score returns the weighted similarity of candidate to target, in [0, 1].
// The result is symmetric: Score(a, b) == Score(b, a).
func Score(target, candidate Recipe) float64 {
	var score float64

	if sameValue(target.Cuisine, candidate.Cuisine) {
		score += cuisineWeight
	}
	if sameValue(target.Category, candidate.Category) {
		score += categoryWeight
	}

	score += tagWeight * jaccard(lowerSet(target.Tags), lowerSet(candidate.Tags))
	score += ingredientWeight * jaccard(lowerSet(target.Ingredients), lowerSet(candidate.Ingredients))

	return score
}

// sameValue compares categorical fields exactly. Blank values never match.
func sameValue(a, b string) bool {
	return a != "" && a == b
}

// lowerSet builds a case-folded set from values.
func lowerSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = struct{}{}
	}
	return set
}

// jaccard returns |a ∩ b| / |a ∪ b|, or 0 when the union is empty.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	intersection := 0
	for s := range a {
		if _, ok := b[s]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}

	return float64(intersection) / float64(union)
}
