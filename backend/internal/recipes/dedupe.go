package recipes

import (
	"math/rand"
	"sort"

	"pentacook/backend/internal/graph"
)

// dedupeByID produces a canonical recipe set: total order by id, then
// adjacent-equal removal. The output is the same no matter which
// relationship surfaced each recipe or in what order the queries returned.
func dedupeByID(recipes []graph.Recipe) []graph.Recipe {
	if len(recipes) <= 1 {
		return recipes
	}

	sort.Slice(recipes, func(i, j int) bool {
		return recipes[i].ID < recipes[j].ID
	})

	out := recipes[:1]
	for _, r := range recipes[1:] {
		if r.ID != out[len(out)-1].ID {
			out = append(out, r)
		}
	}
	return out
}

// sampleRecipes draws min(count, len(recipes)) elements uniformly at random
// without replacement. The input slice is left alone.
func sampleRecipes(recipes []graph.Recipe, count int) []graph.Recipe {
	if count > len(recipes) {
		count = len(recipes)
	}
	if count <= 0 {
		return []graph.Recipe{}
	}

	sample := make([]graph.Recipe, 0, count)
	for _, idx := range rand.Perm(len(recipes))[:count] {
		sample = append(sample, recipes[idx])
	}
	return sample
}
