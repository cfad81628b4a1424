package recipes

import (
	"context"
	"strings"
	"time"

	"pentacook/backend/internal/graph"
	"pentacook/backend/pkg/apperr"
)

// fakeStore is an in-memory stand-in for *graph.Store with the same edge
// semantics: OWNS/LIKES/CHOSEN/USES, visibility rules, idempotent deletes.
type fakeStore struct {
	recipes map[string]graph.Recipe
	owns    map[string]string          // recipe id -> owner user id
	likes   map[string]map[string]bool // user id -> recipe id set
	chosen  []chosenEdge
	uses    map[string][]graph.Ingredient

	deleteChosenCalls int
}

type chosenEdge struct {
	userID   string
	recipeID string
	created  time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		recipes: make(map[string]graph.Recipe),
		owns:    make(map[string]string),
		likes:   make(map[string]map[string]bool),
		uses:    make(map[string][]graph.Ingredient),
	}
}

func (f *fakeStore) CreateRecipe(_ context.Context, ownerID string, recipe graph.Recipe) error {
	recipe.Ingredients = nil
	f.recipes[recipe.ID] = recipe
	f.owns[recipe.ID] = ownerID
	return nil
}

func (f *fakeStore) MergeIngredient(_ context.Context, _, _ string) error {
	return nil
}

func (f *fakeStore) CreateUses(_ context.Context, recipeID, name, amount string) error {
	f.uses[recipeID] = append(f.uses[recipeID], graph.Ingredient{
		Name:   strings.ToLower(name),
		Amount: amount,
	})
	return nil
}

func (f *fakeStore) GetRecipeVisible(_ context.Context, userID, recipeID string) (*graph.Recipe, error) {
	r, ok := f.recipes[recipeID]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	if f.owns[recipeID] != userID && !r.Public {
		return nil, apperr.ErrNotFound
	}
	out := r
	return &out, nil
}

func (f *fakeStore) GetPublicRecipe(_ context.Context, recipeID string) (*graph.Recipe, error) {
	r, ok := f.recipes[recipeID]
	if !ok || !r.Public {
		return nil, apperr.ErrNotFound
	}
	out := r
	return &out, nil
}

func (f *fakeStore) GetRecipeAny(_ context.Context, recipeID string) (*graph.Recipe, error) {
	r, ok := f.recipes[recipeID]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	out := r
	return &out, nil
}

func (f *fakeStore) DeleteOwnedRecipe(_ context.Context, userID, recipeID string) error {
	if f.owns[recipeID] != userID {
		return nil
	}
	delete(f.recipes, recipeID)
	delete(f.owns, recipeID)
	delete(f.uses, recipeID)
	for _, set := range f.likes {
		delete(set, recipeID)
	}
	kept := f.chosen[:0]
	for _, e := range f.chosen {
		if e.recipeID != recipeID {
			kept = append(kept, e)
		}
	}
	f.chosen = kept
	return nil
}

func (f *fakeStore) ListOwnedOrLiked(_ context.Context, userID string) ([]graph.RelatedRecipe, error) {
	var out []graph.RelatedRecipe
	for id, owner := range f.owns {
		if owner == userID {
			out = append(out, graph.RelatedRecipe{Recipe: f.recipes[id], Rel: graph.RelOwns})
		}
	}
	for id := range f.likes[userID] {
		out = append(out, graph.RelatedRecipe{Recipe: f.recipes[id], Rel: graph.RelLikes})
	}
	return out, nil
}

func (f *fakeStore) ListForeignPublic(_ context.Context, userID string) ([]graph.Recipe, error) {
	var out []graph.Recipe
	for id, r := range f.recipes {
		if r.Public && f.owns[id] != userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) ListPublic(_ context.Context) ([]graph.Recipe, error) {
	var out []graph.Recipe
	for _, r := range f.recipes {
		if r.Public {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) ListOwnedByIngredient(_ context.Context, userID, ingredient string) ([]graph.Recipe, error) {
	var out []graph.Recipe
	for id, owner := range f.owns {
		if owner == userID && f.usesIngredient(id, ingredient) {
			out = append(out, f.recipes[id])
		}
	}
	return out, nil
}

func (f *fakeStore) ListPublicByIngredient(_ context.Context, ingredient string) ([]graph.Recipe, error) {
	var out []graph.Recipe
	for id, r := range f.recipes {
		if r.Public && f.usesIngredient(id, ingredient) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) usesIngredient(recipeID, ingredient string) bool {
	for _, ing := range f.uses[recipeID] {
		if ing.Name == strings.ToLower(ingredient) {
			return true
		}
	}
	return false
}

func (f *fakeStore) ListChosen(_ context.Context, userID string) ([]graph.Recipe, error) {
	var out []graph.Recipe
	for _, e := range f.chosen {
		if e.userID == userID {
			if r, ok := f.recipes[e.recipeID]; ok {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

func (f *fakeStore) CreateChosen(_ context.Context, userID, recipeID string, created time.Time) error {
	f.chosen = append(f.chosen, chosenEdge{userID: userID, recipeID: recipeID, created: created})
	return nil
}

func (f *fakeStore) ChosenCreatedAt(_ context.Context, userID string) (time.Time, bool, error) {
	var oldest time.Time
	found := false
	for _, e := range f.chosen {
		if e.userID != userID {
			continue
		}
		if !found || e.created.Before(oldest) {
			oldest = e.created
			found = true
		}
	}
	return oldest, found, nil
}

func (f *fakeStore) DeleteChosen(_ context.Context, userID string) error {
	f.deleteChosenCalls++
	kept := f.chosen[:0]
	for _, e := range f.chosen {
		if e.userID != userID {
			kept = append(kept, e)
		}
	}
	f.chosen = kept
	return nil
}

func (f *fakeStore) FindLikeOrOwn(_ context.Context, userID, recipeID string) (string, bool, error) {
	if f.owns[recipeID] == userID {
		return graph.RelOwns, true, nil
	}
	if f.likes[userID][recipeID] {
		return graph.RelLikes, true, nil
	}
	return "", false, nil
}

func (f *fakeStore) CreateLike(_ context.Context, userID, recipeID string) error {
	r, ok := f.recipes[recipeID]
	if !ok || !r.Public {
		return nil
	}
	if f.likes[userID] == nil {
		f.likes[userID] = make(map[string]bool)
	}
	f.likes[userID][recipeID] = true
	return nil
}

func (f *fakeStore) DeleteLike(_ context.Context, userID, recipeID string) error {
	delete(f.likes[userID], recipeID)
	return nil
}

func (f *fakeStore) Hydrate(_ context.Context, recipe *graph.Recipe) error {
	ings := f.uses[recipe.ID]
	if ings == nil {
		ings = []graph.Ingredient{}
	}
	recipe.Ingredients = ings
	return nil
}

func (f *fakeStore) HydrateAll(ctx context.Context, recipes []graph.Recipe) error {
	for i := range recipes {
		if err := f.Hydrate(ctx, &recipes[i]); err != nil {
			return err
		}
	}
	return nil
}
