package graph

// User represents a user node in the graph. The password hash never leaves
// the backend; it belongs to the credential layer.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"`
}

// Ingredient represents an ingredient attached to a recipe via a USES edge.
// Its lowercase name acts as the natural key; ingredients are merged by
// name and tipo.
type Ingredient struct {
	Name   string `json:"name"`
	Tipo   string `json:"tipo"`
	Amount string `json:"amount"`
}

// Recipe represents a recipe node. Ingredients are attached lazily by the
// hydrator; a recipe with no USES edges carries an empty list.
type Recipe struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Public        bool         `json:"public"`
	Steps         []string     `json:"steps"`
	Tipo          string       `json:"tipo"`
	Calories      int          `json:"calories"`
	Carbohydrates float64      `json:"carbohydrates"`
	Fat           float64      `json:"fat"`
	Protein       float64      `json:"protein"`
	Servings      string       `json:"servings"`
	MealType      string       `json:"meal_type"`
	Time          string       `json:"time"`
	Ingredients   []Ingredient `json:"ingredients"`
}

// RelatedRecipe pairs a recipe with the relationship type that surfaced it
// (OWNS or LIKES).
type RelatedRecipe struct {
	Recipe Recipe
	Rel    string
}

// RecipeRelationships partitions a recipe list by the caller's direct edge
// to each recipe. Recipes visible only through their public flag appear in
// neither slice.
type RecipeRelationships struct {
	Owns  []string `json:"owns"`
	Likes []string `json:"likes"`
}

// Relationship type names as stored in the graph.
const (
	RelOwns   = "OWNS"
	RelLikes  = "LIKES"
	RelUses   = "USES"
	RelChosen = "CHOSEN"
)
