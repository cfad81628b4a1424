package graph

import (
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
)

func TestJoinSteps(t *testing.T) {
	assert.Equal(t, "", JoinSteps(nil))
	assert.Equal(t, "1. Chop\n2. Fry\n", JoinSteps([]string{"Chop", "Fry"}))
}

func TestSplitSteps(t *testing.T) {
	assert.Empty(t, SplitSteps(""))
	assert.Equal(t, []string{"1. Chop", "2. Fry"}, SplitSteps("1. Chop\n2. Fry\n"))
	// Blank lines inside the block are dropped.
	assert.Equal(t, []string{"1. Chop", "2. Fry"}, SplitSteps("1. Chop\n\n2. Fry\n"))
}

func TestRecipeFromNode(t *testing.T) {
	node := neo4j.Node{Props: map[string]interface{}{
		"id":            "r-1",
		"name":          "Tortilla",
		"public":        true,
		"steps":         "1. Peel\n2. Fry\n",
		"tipo":          "main",
		"calories":      int64(450),
		"carbohydrates": 32.5,
		"fat":           28.0,
		"protein":       15.0,
		"servings":      "4",
		"meal_type":     "dinner",
		"time":          "45m",
	}}

	recipe := recipeFromNode(node)

	assert.Equal(t, "r-1", recipe.ID)
	assert.Equal(t, "Tortilla", recipe.Name)
	assert.True(t, recipe.Public)
	assert.Equal(t, []string{"1. Peel", "2. Fry"}, recipe.Steps)
	assert.Equal(t, 450, recipe.Calories)
	assert.Equal(t, 32.5, recipe.Carbohydrates)
	assert.Equal(t, "dinner", recipe.MealType)
	assert.Equal(t, "45m", recipe.Time)
}

func TestRecipeFromNode_MissingOptionalProps(t *testing.T) {
	node := neo4j.Node{Props: map[string]interface{}{
		"id":   "r-2",
		"name": "Bare",
	}}

	recipe := recipeFromNode(node)

	assert.Equal(t, "r-2", recipe.ID)
	assert.False(t, recipe.Public)
	assert.Empty(t, recipe.Steps)
	assert.Zero(t, recipe.Calories)
	assert.Zero(t, recipe.Fat)
}

func TestUserFromNode(t *testing.T) {
	node := neo4j.Node{Props: map[string]interface{}{
		"id":       "u-1",
		"username": "alice",
		"email":    "alice@example.com",
		"role":     "pentacoob",
		"password": "$argon2id$...",
	}}

	user := userFromNode(node)

	assert.Equal(t, "u-1", user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "pentacoob", user.Role)
	assert.Equal(t, "$argon2id$...", user.PasswordHash)
}

func TestGetIntProp_AcceptsDriverInt64(t *testing.T) {
	props := map[string]interface{}{"calories": int64(120)}
	assert.Equal(t, 120, getIntProp(props, "calories", 0))
	assert.Equal(t, 7, getIntProp(props, "missing", 7))
	assert.Equal(t, 7, getIntProp(map[string]interface{}{"calories": "x"}, "calories", 7))
}

func TestGetFloatProp_CoercesIntegers(t *testing.T) {
	props := map[string]interface{}{"fat": int64(12)}
	assert.Equal(t, 12.0, getFloatProp(props, "fat", 0))
}
