package recipes

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pentacook/backend/internal/auth"
	"pentacook/backend/internal/graph"
	"pentacook/backend/pkg/logger"
)

// Store is everything the access service needs from the graph layer.
// *graph.Store satisfies it; tests substitute an in-memory fake.
type Store interface {
	ChosenStore

	CreateRecipe(ctx context.Context, ownerID string, recipe graph.Recipe) error
	MergeIngredient(ctx context.Context, name, tipo string) error
	CreateUses(ctx context.Context, recipeID, ingredientName, amount string) error

	GetRecipeVisible(ctx context.Context, userID, recipeID string) (*graph.Recipe, error)
	GetPublicRecipe(ctx context.Context, recipeID string) (*graph.Recipe, error)
	GetRecipeAny(ctx context.Context, recipeID string) (*graph.Recipe, error)
	DeleteOwnedRecipe(ctx context.Context, userID, recipeID string) error

	ListOwnedOrLiked(ctx context.Context, userID string) ([]graph.RelatedRecipe, error)
	ListForeignPublic(ctx context.Context, userID string) ([]graph.Recipe, error)
	ListPublic(ctx context.Context) ([]graph.Recipe, error)
	ListOwnedByIngredient(ctx context.Context, userID, ingredient string) ([]graph.Recipe, error)
	ListPublicByIngredient(ctx context.Context, ingredient string) ([]graph.Recipe, error)
	ListChosen(ctx context.Context, userID string) ([]graph.Recipe, error)
	CreateChosen(ctx context.Context, userID, recipeID string, created time.Time) error

	FindLikeOrOwn(ctx context.Context, userID, recipeID string) (string, bool, error)
	CreateLike(ctx context.Context, userID, recipeID string) error
	DeleteLike(ctx context.Context, userID, recipeID string) error

	Hydrate(ctx context.Context, recipe *graph.Recipe) error
	HydrateAll(ctx context.Context, recipes []graph.Recipe) error
}

// DefaultWeeklyCount is the sample size when the caller does not ask for a
// specific amount.
const DefaultWeeklyCount = 7

// LikeOutcome describes what a ToggleLike call actually did.
type LikeOutcome int

const (
	// Liked means a LIKES edge was created.
	Liked LikeOutcome = iota
	// Unliked means an existing LIKES edge was removed.
	Unliked
	// LikeRejected means the caller owns the recipe; owners cannot like
	// their own recipes and the call was a no-op.
	LikeRejected
)

// Service aggregates recipes across relationship types, enforces the chosen
// TTL, and hands every result through the hydrator before it leaves the core.
type Service struct {
	store  Store
	expiry *ExpiryPolicy
	now    func() time.Time
	logger *zap.Logger
}

// NewService creates the access service. chosenTTL <= 0 uses the default.
func NewService(store Store, chosenTTL time.Duration) *Service {
	return &Service{
		store:  store,
		expiry: NewExpiryPolicy(store, chosenTTL),
		now:    time.Now,
		logger: logger.Get(),
	}
}

// Create stores a new recipe owned by the identity, merging its ingredients
// and attaching USES edges. Each ingredient is merged before its edge is
// written; a failed merge aborts before the edge write. There is no rollback
// across the sequence.
func (s *Service) Create(ctx context.Context, identity auth.Identity, recipe graph.Recipe) (string, error) {
	recipe.ID = uuid.New().String()

	if err := s.store.CreateRecipe(ctx, identity.UserID, recipe); err != nil {
		return "", err
	}

	for _, ing := range recipe.Ingredients {
		if err := s.store.MergeIngredient(ctx, ing.Name, ing.Tipo); err != nil {
			return "", err
		}
		if err := s.store.CreateUses(ctx, recipe.ID, ing.Name, ing.Amount); err != nil {
			return "", err
		}
	}

	s.logger.Info("recipe created",
		zap.String("recipe_id", recipe.ID),
		zap.String("user_id", identity.UserID),
		zap.Int("ingredients", len(recipe.Ingredients)),
	)
	return recipe.ID, nil
}

// Get fetches a single recipe the identity may see: owned or public.
func (s *Service) Get(ctx context.Context, identity auth.Identity, recipeID string) (*graph.Recipe, error) {
	recipe, err := s.store.GetRecipeVisible(ctx, identity.UserID, recipeID)
	if err != nil {
		return nil, err
	}
	if err := s.store.Hydrate(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// GetPublic fetches a recipe only if it is public. No identity required.
func (s *Service) GetPublic(ctx context.Context, recipeID string) (*graph.Recipe, error) {
	recipe, err := s.store.GetPublicRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if err := s.store.Hydrate(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// Share fetches a recipe by id regardless of visibility; possession of the
// id is the capability.
func (s *Service) Share(ctx context.Context, recipeID string) (*graph.Recipe, error) {
	recipe, err := s.store.GetRecipeAny(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if err := s.store.Hydrate(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// ListAccessible returns the identity's full visible set: recipes reached by
// OWNS or LIKES plus everyone else's public recipes, deduplicated by recipe
// id. The relationships partition records which recipes the identity has a
// direct edge to.
func (s *Service) ListAccessible(ctx context.Context, identity auth.Identity) ([]graph.Recipe, graph.RecipeRelationships, error) {
	related, err := s.store.ListOwnedOrLiked(ctx, identity.UserID)
	if err != nil {
		return nil, graph.RecipeRelationships{}, err
	}

	rels := graph.RecipeRelationships{Owns: []string{}, Likes: []string{}}
	recipes := make([]graph.Recipe, 0, len(related))
	for _, rr := range related {
		switch rr.Rel {
		case graph.RelOwns:
			rels.Owns = append(rels.Owns, rr.Recipe.ID)
		case graph.RelLikes:
			rels.Likes = append(rels.Likes, rr.Recipe.ID)
		}
		recipes = append(recipes, rr.Recipe)
	}

	public, err := s.store.ListForeignPublic(ctx, identity.UserID)
	if err != nil {
		return nil, graph.RecipeRelationships{}, err
	}
	recipes = append(recipes, public...)

	recipes = dedupeByID(recipes)
	if err := s.store.HydrateAll(ctx, recipes); err != nil {
		return nil, graph.RecipeRelationships{}, err
	}
	return recipes, rels, nil
}

// ListByIngredient returns the identity's own recipes using the ingredient
// plus public ones, deduplicated by id.
func (s *Service) ListByIngredient(ctx context.Context, identity auth.Identity, ingredient string) ([]graph.Recipe, error) {
	owned, err := s.store.ListOwnedByIngredient(ctx, identity.UserID, ingredient)
	if err != nil {
		return nil, err
	}
	public, err := s.store.ListPublicByIngredient(ctx, ingredient)
	if err != nil {
		return nil, err
	}

	recipes := dedupeByID(append(owned, public...))
	if err := s.store.HydrateAll(ctx, recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// ListPublic returns every public recipe, hydrated.
func (s *Service) ListPublic(ctx context.Context) ([]graph.Recipe, error) {
	recipes, err := s.store.ListPublic(ctx)
	if err != nil {
		return nil, err
	}
	recipes = dedupeByID(recipes)
	if err := s.store.HydrateAll(ctx, recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// ListChosen returns the identity's weekly plan. The expiry policy runs
// first; if it deleted an expired plan the result is empty for this request.
func (s *Service) ListChosen(ctx context.Context, identity auth.Identity) ([]graph.Recipe, error) {
	deleted, err := s.expiry.ExpireChosen(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	if deleted {
		return []graph.Recipe{}, nil
	}

	recipes, err := s.store.ListChosen(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	// Duplicate CHOSEN edges to the same recipe collapse here.
	recipes = dedupeByID(recipes)
	if err := s.store.HydrateAll(ctx, recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// SampleWeekly draws up to requested recipes uniformly at random, without
// replacement, from the identity's OWNS and LIKES set. requested <= 0 means
// DefaultWeeklyCount. The sample size is min(requested, eligible set size).
func (s *Service) SampleWeekly(ctx context.Context, identity auth.Identity, requested int) ([]graph.Recipe, error) {
	if requested <= 0 {
		requested = DefaultWeeklyCount
	}

	related, err := s.store.ListOwnedOrLiked(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	eligible := make([]graph.Recipe, 0, len(related))
	for _, rr := range related {
		eligible = append(eligible, rr.Recipe)
	}
	eligible = dedupeByID(eligible)

	sample := sampleRecipes(eligible, requested)
	if err := s.store.HydrateAll(ctx, sample); err != nil {
		return nil, err
	}
	return sample, nil
}

// ChooseForWeek creates one CHOSEN edge per submitted id, all stamped with
// the current time. Ids are taken as given: submitting the same id twice
// creates two edges, which the read side deduplicates.
func (s *Service) ChooseForWeek(ctx context.Context, identity auth.Identity, recipeIDs []string) error {
	stamp := s.now().UTC()
	for _, recipeID := range recipeIDs {
		if err := s.store.CreateChosen(ctx, identity.UserID, recipeID, stamp); err != nil {
			return err
		}
	}
	return nil
}

// RemoveOwned detach-deletes a recipe if the identity owns it. Removing a
// recipe the identity does not own, or one that does not exist, matches
// nothing and still succeeds.
func (s *Service) RemoveOwned(ctx context.Context, identity auth.Identity, recipeID string) error {
	return s.store.DeleteOwnedRecipe(ctx, identity.UserID, recipeID)
}

// ResetChosen unconditionally clears the identity's weekly plan, expired or
// not.
func (s *Service) ResetChosen(ctx context.Context, identity auth.Identity) error {
	return s.store.DeleteChosen(ctx, identity.UserID)
}

// ToggleLike flips the identity's like on a recipe. Owning the recipe
// rejects the call; no existing edge likes a public recipe; an existing
// LIKES edge is removed. Two consecutive calls restore the original state.
func (s *Service) ToggleLike(ctx context.Context, identity auth.Identity, recipeID string) (LikeOutcome, error) {
	rel, found, err := s.store.FindLikeOrOwn(ctx, identity.UserID, recipeID)
	if err != nil {
		return LikeRejected, err
	}

	if !found {
		if err := s.store.CreateLike(ctx, identity.UserID, recipeID); err != nil {
			return LikeRejected, err
		}
		return Liked, nil
	}
	if rel == graph.RelOwns {
		return LikeRejected, nil
	}
	if err := s.store.DeleteLike(ctx, identity.UserID, recipeID); err != nil {
		return LikeRejected, err
	}
	return Unliked, nil
}
