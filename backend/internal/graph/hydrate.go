package graph

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// hydrateConcurrency caps the ingredient queries in flight for one batch.
const hydrateConcurrency = 4

// RecipeIngredients fetches all USES edges of a recipe together with their
// Ingredient endpoints.
func (s *Store) RecipeIngredients(ctx context.Context, recipeID string) ([]Ingredient, error) {
	query := `
		MATCH (r:Recipe)-[u:USES]->(i:Ingredient)
		WHERE r.id = $rid
		RETURN i, u.amount AS amount
	`

	records, err := s.Query(ctx, query, map[string]interface{}{"rid": recipeID})
	if err != nil {
		return nil, err
	}

	ingredients := make([]Ingredient, 0, len(records))
	for _, record := range records {
		node, ok := nodeFromRecord(record, "i")
		if !ok {
			continue
		}
		ingredients = append(ingredients, Ingredient{
			Name:   getStringProp(node.Props, "name", ""),
			Tipo:   getStringProp(node.Props, "tipo", ""),
			Amount: stringFromRecord(record, "amount"),
		})
	}
	return ingredients, nil
}

// Hydrate attaches the recipe's ingredient list. A recipe with zero USES
// edges gets an empty list, not an error.
func (s *Store) Hydrate(ctx context.Context, recipe *Recipe) error {
	ingredients, err := s.RecipeIngredients(ctx, recipe.ID)
	if err != nil {
		return err
	}
	recipe.Ingredients = ingredients
	return nil
}

// HydrateAll hydrates a batch of recipes with a few queries in flight at a
// time. The first failure cancels the rest and aborts the batch.
func (s *Store) HydrateAll(ctx context.Context, recipes []Recipe) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(hydrateConcurrency)

	for i := range recipes {
		i := i
		g.Go(func() error {
			return s.Hydrate(ctx, &recipes[i])
		})
	}
	return g.Wait()
}
