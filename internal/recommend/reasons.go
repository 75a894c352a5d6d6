package recommend

import (
	"fmt"
	"strings"
)

const fallbackReason = "Similar recipe"

// Explain describes why candidate resembles target. Reasons always appear in the
// order cuisine, category, tags, ingredients, and the list is never empty.
func Explain(target, candidate Recipe) []string {
	var reasons []string

	if sameValue(target.Cuisine, candidate.Cuisine) {
		reasons = append(reasons, fmt.Sprintf("Same cuisine (%s)", target.Cuisine))
	}
	if sameValue(target.Category, candidate.Category) {
		reasons = append(reasons, fmt.Sprintf("Same category (%s)", target.Category))
	}
	if shared := intersect(target.Tags, candidate.Tags, maxReasonTags); len(shared) > 0 {
		reasons = append(reasons, "Similar tags: "+strings.Join(shared, ", "))
	}
	if shared := intersect(target.Ingredients, candidate.Ingredients, maxReasonIngredients); len(shared) > 0 {
		reasons = append(reasons, "Similar ingredients: "+strings.Join(shared, ", "))
	}

	if len(reasons) == 0 {
		reasons = append(reasons, fallbackReason)
	}
	return reasons
}

// intersect returns up to limit values of a that also appear in b, compared
// case-insensitively. Order and casing follow a; duplicates are dropped.
func intersect(a, b []string, limit int) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}

	inB := lowerSet(b)
	seen := make(map[string]struct{}, len(a))

	var shared []string
	for _, v := range a {
		key := strings.ToLower(v)
		if _, ok := inB[key]; !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		shared = append(shared, v)
		if len(shared) == limit {
			break
		}
	}
	return shared
}
