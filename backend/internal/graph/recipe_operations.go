package graph

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"pentacook/backend/pkg/apperr"
)

var errBadTimestamp = errors.New("chosen edge carries a non-datetime created property")

// ============================================================================
// Recipe Node Operations
// ============================================================================

// CreateRecipe creates a recipe node owned by the given user. All fields are
// bound as query parameters, including the numeric and boolean ones.
func (s *Store) CreateRecipe(ctx context.Context, ownerID string, recipe Recipe) error {
	query := `
		MATCH (u:User {id: $uid})
		MERGE (u)-[:OWNS]->(:Recipe {
			id: $id,
			name: $name,
			public: $public,
			tipo: $tipo,
			steps: $steps,
			calories: $calories,
			carbohydrates: $carbohydrates,
			fat: $fat,
			protein: $protein,
			servings: $servings,
			meal_type: $meal_type,
			time: $time
		})
	`

	return s.Run(ctx, query, map[string]interface{}{
		"uid":           ownerID,
		"id":            recipe.ID,
		"name":          recipe.Name,
		"public":        recipe.Public,
		"tipo":          recipe.Tipo,
		"steps":         JoinSteps(recipe.Steps),
		"calories":      recipe.Calories,
		"carbohydrates": recipe.Carbohydrates,
		"fat":           recipe.Fat,
		"protein":       recipe.Protein,
		"servings":      recipe.Servings,
		"meal_type":     recipe.MealType,
		"time":          recipe.Time,
	})
}

// MergeIngredient merges an ingredient node by its natural key. Names and
// tipo are lowercased so "Flour" and "flour" collapse into one node.
func (s *Store) MergeIngredient(ctx context.Context, name, tipo string) error {
	query := `
		MERGE (:Ingredient {name: $name, tipo: $tipo})
	`

	return s.Run(ctx, query, map[string]interface{}{
		"name": strings.ToLower(name),
		"tipo": strings.ToLower(tipo),
	})
}

// CreateUses attaches an ingredient to a recipe with the given amount.
func (s *Store) CreateUses(ctx context.Context, recipeID, ingredientName, amount string) error {
	query := `
		MATCH (i:Ingredient {name: $name}), (r:Recipe {id: $rid})
		CREATE (r)-[:USES {amount: $amount}]->(i)
	`

	return s.Run(ctx, query, map[string]interface{}{
		"name":   strings.ToLower(ingredientName),
		"rid":    recipeID,
		"amount": amount,
	})
}

// GetRecipeVisible fetches a recipe the user may see: one they own, or any
// public one. Returns apperr.ErrNotFound otherwise.
func (s *Store) GetRecipeVisible(ctx context.Context, userID, recipeID string) (*Recipe, error) {
	query := `
		MATCH (u:User)-[:OWNS]->(r:Recipe)
		WHERE (u.id = $uid AND r.id = $rid) OR (r.id = $rid AND r.public = true)
		RETURN r
	`

	return s.singleRecipe(ctx, query, map[string]interface{}{
		"uid": userID,
		"rid": recipeID,
	})
}

// GetPublicRecipe fetches a recipe only if it is public.
func (s *Store) GetPublicRecipe(ctx context.Context, recipeID string) (*Recipe, error) {
	query := `
		MATCH (r:Recipe {id: $rid})
		WHERE r.public = true
		RETURN r
	`

	return s.singleRecipe(ctx, query, map[string]interface{}{"rid": recipeID})
}

// GetRecipeAny fetches a recipe by id regardless of visibility. Used for
// share links, where possession of the id is the capability.
func (s *Store) GetRecipeAny(ctx context.Context, recipeID string) (*Recipe, error) {
	query := `
		MATCH (r:Recipe {id: $rid})
		RETURN r
	`

	return s.singleRecipe(ctx, query, map[string]interface{}{"rid": recipeID})
}

// DeleteOwnedRecipe detach-deletes a recipe node only when an OWNS edge from
// the user exists. Deleting a recipe you don't own matches nothing and is a
// silent no-op.
func (s *Store) DeleteOwnedRecipe(ctx context.Context, userID, recipeID string) error {
	query := `
		MATCH (u:User)-[:OWNS]->(r:Recipe)
		WHERE u.id = $uid AND r.id = $rid
		DETACH DELETE r
	`

	return s.Run(ctx, query, map[string]interface{}{
		"uid": userID,
		"rid": recipeID,
	})
}

// ============================================================================
// Listing Operations
// ============================================================================

// ListOwnedOrLiked returns every recipe the user has a direct OWNS or LIKES
// edge to, paired with the edge type that surfaced it.
func (s *Store) ListOwnedOrLiked(ctx context.Context, userID string) ([]RelatedRecipe, error) {
	query := `
		MATCH (u:User {id: $uid})-[c:OWNS|LIKES]->(r:Recipe)
		RETURN r, type(c) AS rel
	`

	records, err := s.Query(ctx, query, map[string]interface{}{"uid": userID})
	if err != nil {
		return nil, err
	}

	related := make([]RelatedRecipe, 0, len(records))
	for _, record := range records {
		node, ok := nodeFromRecord(record, "r")
		if !ok {
			continue
		}
		related = append(related, RelatedRecipe{
			Recipe: recipeFromNode(node),
			Rel:    stringFromRecord(record, "rel"),
		})
	}
	return related, nil
}

// ListForeignPublic returns all public recipes not owned by the user.
func (s *Store) ListForeignPublic(ctx context.Context, userID string) ([]Recipe, error) {
	query := `
		MATCH (r:Recipe)<-[:OWNS]-(u:User)
		WHERE r.public = true AND NOT u.id = $uid
		RETURN r
	`

	return s.collectRecipes(ctx, query, map[string]interface{}{"uid": userID})
}

// ListPublic returns every public recipe.
func (s *Store) ListPublic(ctx context.Context) ([]Recipe, error) {
	query := `
		MATCH (r:Recipe)
		WHERE r.public = true
		RETURN r
	`

	return s.collectRecipes(ctx, query, nil)
}

// ListOwnedByIngredient returns the user's own recipes that use the
// ingredient.
func (s *Store) ListOwnedByIngredient(ctx context.Context, userID, ingredient string) ([]Recipe, error) {
	query := `
		MATCH (u:User)-[:OWNS]->(r:Recipe)-[:USES]->(i:Ingredient)
		WHERE u.id = $uid AND i.name = $ing
		RETURN r
	`

	return s.collectRecipes(ctx, query, map[string]interface{}{
		"uid": userID,
		"ing": strings.ToLower(ingredient),
	})
}

// ListPublicByIngredient returns public recipes that use the ingredient.
func (s *Store) ListPublicByIngredient(ctx context.Context, ingredient string) ([]Recipe, error) {
	query := `
		MATCH (r:Recipe)-[:USES]->(i:Ingredient)
		WHERE r.public = true AND i.name = $ing
		RETURN r
	`

	return s.collectRecipes(ctx, query, map[string]interface{}{
		"ing": strings.ToLower(ingredient),
	})
}

// ============================================================================
// Like Operations
// ============================================================================

// FindLikeOrOwn probes for an existing LIKES or OWNS edge between the user
// and the recipe. The second return is false when no edge exists.
func (s *Store) FindLikeOrOwn(ctx context.Context, userID, recipeID string) (string, bool, error) {
	query := `
		MATCH (r:Recipe)-[c:LIKES|OWNS]-(u:User)
		WHERE u.id = $uid AND r.id = $rid
		RETURN type(c) AS rel
		LIMIT 1
	`

	records, err := s.Query(ctx, query, map[string]interface{}{
		"uid": userID,
		"rid": recipeID,
	})
	if err != nil {
		return "", false, err
	}
	if len(records) == 0 {
		return "", false, nil
	}
	return stringFromRecord(records[0], "rel"), true, nil
}

// CreateLike creates a LIKES edge toward a public recipe. MERGE keeps the
// edge unique per (user, recipe) pair; a non-public recipe matches nothing.
func (s *Store) CreateLike(ctx context.Context, userID, recipeID string) error {
	query := `
		MATCH (u:User), (r:Recipe)
		WHERE u.id = $uid AND (r.id = $rid AND r.public = true)
		MERGE (u)-[:LIKES]->(r)
	`

	return s.Run(ctx, query, map[string]interface{}{
		"uid": userID,
		"rid": recipeID,
	})
}

// DeleteLike removes the LIKES edge between the user and the recipe.
func (s *Store) DeleteLike(ctx context.Context, userID, recipeID string) error {
	query := `
		MATCH (u:User)-[l:LIKES]->(r:Recipe)
		WHERE u.id = $uid AND r.id = $rid
		DETACH DELETE l
	`

	return s.Run(ctx, query, map[string]interface{}{
		"uid": userID,
		"rid": recipeID,
	})
}

// ============================================================================
// Chosen (Weekly Plan) Operations
// ============================================================================

// CreateChosen creates one CHOSEN edge stamped with the given creation time.
// Intentionally CREATE, not MERGE: duplicate submissions produce duplicate
// edges, which the read side collapses.
func (s *Store) CreateChosen(ctx context.Context, userID, recipeID string, created time.Time) error {
	query := `
		MATCH (u:User {id: $uid}), (r:Recipe {id: $rid})
		CREATE (u)-[:CHOSEN {created: $created}]->(r)
	`

	return s.Run(ctx, query, map[string]interface{}{
		"uid":     userID,
		"rid":     recipeID,
		"created": created.UTC(),
	})
}

// ListChosen returns the recipes in the user's weekly plan.
func (s *Store) ListChosen(ctx context.Context, userID string) ([]Recipe, error) {
	query := `
		MATCH (u:User {id: $uid})-[:CHOSEN]-(r:Recipe)
		RETURN r
	`

	return s.collectRecipes(ctx, query, map[string]interface{}{"uid": userID})
}

// ChosenCreatedAt returns the creation time of the user's oldest CHOSEN
// edge. The second return is false when the user has nothing chosen, which
// is a legitimate state, not an error.
func (s *Store) ChosenCreatedAt(ctx context.Context, userID string) (time.Time, bool, error) {
	query := `
		MATCH (u:User {id: $uid})-[c:CHOSEN]-()
		RETURN c.created AS created
		ORDER BY c.created ASC
		LIMIT 1
	`

	records, err := s.Query(ctx, query, map[string]interface{}{"uid": userID})
	if err != nil {
		return time.Time{}, false, err
	}
	if len(records) == 0 {
		return time.Time{}, false, nil
	}

	val, ok := records[0].Get("created")
	if !ok || val == nil {
		return time.Time{}, false, nil
	}
	created, ok := val.(time.Time)
	if !ok {
		return time.Time{}, false, apperr.NewStoreError("chosen created", errBadTimestamp)
	}
	return created, true, nil
}

// DeleteChosen detach-deletes every CHOSEN edge of the user, leaving the
// recipe nodes untouched. Idempotent.
func (s *Store) DeleteChosen(ctx context.Context, userID string) error {
	query := `
		MATCH (u:User {id: $uid})-[c:CHOSEN]-()
		DETACH DELETE c
	`

	return s.Run(ctx, query, map[string]interface{}{"uid": userID})
}

// ============================================================================
// Shared collectors
// ============================================================================

func (s *Store) singleRecipe(ctx context.Context, query string, params map[string]interface{}) (*Recipe, error) {
	records, err := s.Query(ctx, query, params)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, apperr.ErrNotFound
	}
	node, ok := nodeFromRecord(records[0], "r")
	if !ok {
		return nil, apperr.ErrNotFound
	}
	recipe := recipeFromNode(node)
	return &recipe, nil
}

func (s *Store) collectRecipes(ctx context.Context, query string, params map[string]interface{}) ([]Recipe, error) {
	records, err := s.Query(ctx, query, params)
	if err != nil {
		return nil, err
	}
	return recipesFromRecords(records), nil
}

func recipesFromRecords(records []*neo4j.Record) []Recipe {
	recipes := make([]Recipe, 0, len(records))
	for _, record := range records {
		if node, ok := nodeFromRecord(record, "r"); ok {
			recipes = append(recipes, recipeFromNode(node))
		}
	}
	return recipes
}
