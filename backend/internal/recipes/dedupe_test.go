package recipes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pentacook/backend/internal/graph"
)

func TestDedupeByID(t *testing.T) {
	in := []graph.Recipe{
		{ID: "c"}, {ID: "a"}, {ID: "b"}, {ID: "a"}, {ID: "c"}, {ID: "c"},
	}

	out := dedupeByID(in)

	ids := make([]string, 0, len(out))
	for _, r := range out {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestDedupeByID_OrderIndependent(t *testing.T) {
	a := dedupeByID([]graph.Recipe{{ID: "x"}, {ID: "y"}})
	b := dedupeByID([]graph.Recipe{{ID: "y"}, {ID: "x"}})
	assert.Equal(t, a, b)
}

func TestDedupeByID_SmallInputs(t *testing.T) {
	assert.Empty(t, dedupeByID(nil))
	assert.Len(t, dedupeByID([]graph.Recipe{{ID: "a"}}), 1)
}

func TestSampleRecipes(t *testing.T) {
	pool := []graph.Recipe{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}

	assert.Empty(t, sampleRecipes(pool, 0))
	assert.Len(t, sampleRecipes(pool, 2), 2)
	assert.Len(t, sampleRecipes(pool, 99), len(pool))

	// No duplicates, every element from the pool.
	sample := sampleRecipes(pool, 3)
	seen := make(map[string]bool)
	for _, r := range sample {
		assert.False(t, seen[r.ID])
		seen[r.ID] = true
		assert.Contains(t, []string{"a", "b", "c", "d"}, r.ID)
	}

	// Input order is untouched.
	assert.Equal(t, "a", pool[0].ID)
	assert.Equal(t, "d", pool[3].ID)
}
