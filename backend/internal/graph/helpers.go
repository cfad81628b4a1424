package graph

import (
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// ============================================================================
// Helper Functions
// ============================================================================

func getStringProp(props map[string]interface{}, key, defaultValue string) string {
	val, ok := props[key]
	if !ok || val == nil {
		return defaultValue
	}
	if str, ok := val.(string); ok {
		return str
	}
	return defaultValue
}

func getBoolProp(props map[string]interface{}, key string, defaultValue bool) bool {
	val, ok := props[key]
	if !ok || val == nil {
		return defaultValue
	}
	if b, ok := val.(bool); ok {
		return b
	}
	return defaultValue
}

func getIntProp(props map[string]interface{}, key string, defaultValue int) int {
	val, ok := props[key]
	if !ok || val == nil {
		return defaultValue
	}
	if i, ok := val.(int64); ok {
		return int(i)
	}
	if i, ok := val.(int); ok {
		return i
	}
	return defaultValue
}

func getFloatProp(props map[string]interface{}, key string, defaultValue float64) float64 {
	val, ok := props[key]
	if !ok || val == nil {
		return defaultValue
	}
	if f, ok := val.(float64); ok {
		return f
	}
	if i, ok := val.(int64); ok {
		return float64(i)
	}
	return defaultValue
}

func nodeFromRecord(record *neo4j.Record, key string) (neo4j.Node, bool) {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return neo4j.Node{}, false
	}
	node, ok := val.(neo4j.Node)
	return node, ok
}

func stringFromRecord(record *neo4j.Record, key string) string {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return ""
	}
	if str, ok := val.(string); ok {
		return str
	}
	return ""
}

// recipeFromNode projects a Recipe node's properties into a Recipe record.
// Absent optional properties fall back to zero values, matching how recipes
// are written with defaults for unset fields.
func recipeFromNode(node neo4j.Node) Recipe {
	props := node.Props
	return Recipe{
		ID:            getStringProp(props, "id", ""),
		Name:          getStringProp(props, "name", ""),
		Public:        getBoolProp(props, "public", false),
		Steps:         SplitSteps(getStringProp(props, "steps", "")),
		Tipo:          getStringProp(props, "tipo", ""),
		Calories:      getIntProp(props, "calories", 0),
		Carbohydrates: getFloatProp(props, "carbohydrates", 0),
		Fat:           getFloatProp(props, "fat", 0),
		Protein:       getFloatProp(props, "protein", 0),
		Servings:      getStringProp(props, "servings", ""),
		MealType:      getStringProp(props, "meal_type", ""),
		Time:          getStringProp(props, "time", ""),
	}
}

func userFromNode(node neo4j.Node) User {
	props := node.Props
	return User{
		ID:           getStringProp(props, "id", ""),
		Username:     getStringProp(props, "username", ""),
		Email:        getStringProp(props, "email", ""),
		Role:         getStringProp(props, "role", ""),
		PasswordHash: getStringProp(props, "password", ""),
	}
}

// JoinSteps stores an ordered step sequence as a single numbered text block.
func JoinSteps(steps []string) string {
	var b strings.Builder
	for i, step := range steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	return b.String()
}

// SplitSteps recovers the ordered step lines from the stored block.
func SplitSteps(block string) []string {
	if block == "" {
		return []string{}
	}
	lines := strings.Split(strings.TrimRight(block, "\n"), "\n")
	steps := make([]string, 0, len(lines))
	for _, line := range lines {
		if line != "" {
			steps = append(steps, line)
		}
	}
	return steps
}
