package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pentacook/backend/internal/auth"
	"pentacook/backend/internal/graph"
	"pentacook/backend/internal/recipes"
	"pentacook/backend/pkg/apperr"
)

// RecipeService is the access-service surface the recipe handlers call.
type RecipeService interface {
	Create(ctx context.Context, identity auth.Identity, recipe graph.Recipe) (string, error)
	Get(ctx context.Context, identity auth.Identity, recipeID string) (*graph.Recipe, error)
	GetPublic(ctx context.Context, recipeID string) (*graph.Recipe, error)
	Share(ctx context.Context, recipeID string) (*graph.Recipe, error)
	ListAccessible(ctx context.Context, identity auth.Identity) ([]graph.Recipe, graph.RecipeRelationships, error)
	ListByIngredient(ctx context.Context, identity auth.Identity, ingredient string) ([]graph.Recipe, error)
	ListPublic(ctx context.Context) ([]graph.Recipe, error)
	ListChosen(ctx context.Context, identity auth.Identity) ([]graph.Recipe, error)
	SampleWeekly(ctx context.Context, identity auth.Identity, requested int) ([]graph.Recipe, error)
	ChooseForWeek(ctx context.Context, identity auth.Identity, recipeIDs []string) error
	RemoveOwned(ctx context.Context, identity auth.Identity, recipeID string) error
	ResetChosen(ctx context.Context, identity auth.Identity) error
	ToggleLike(ctx context.Context, identity auth.Identity, recipeID string) (recipes.LikeOutcome, error)
}

// RecipeHandlers maps recipe service outcomes onto HTTP responses.
type RecipeHandlers struct {
	service RecipeService
	logger  *zap.Logger
}

// NewRecipeHandlers creates the recipe handler set
func NewRecipeHandlers(service RecipeService, log *zap.Logger) *RecipeHandlers {
	return &RecipeHandlers{service: service, logger: log}
}

type recipeListResponse struct {
	Recipes []graph.Recipe             `json:"recipes"`
	Rels    *graph.RecipeRelationships `json:"rels,omitempty"`
}

// Create handles POST /recipes/new
func (h *RecipeHandlers) Create(c *gin.Context) {
	var recipe graph.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.service.Create(c.Request.Context(), identityFrom(c), recipe)
	if err != nil {
		h.fail(c, "create recipe", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// List handles GET /recipes/list
func (h *RecipeHandlers) List(c *gin.Context) {
	list, rels, err := h.service.ListAccessible(c.Request.Context(), identityFrom(c))
	if err != nil {
		h.fail(c, "list recipes", err)
		return
	}
	c.JSON(http.StatusOK, recipeListResponse{Recipes: list, Rels: &rels})
}

// ByIngredient handles GET /recipes/ingredient/:ingredient
func (h *RecipeHandlers) ByIngredient(c *gin.Context) {
	list, err := h.service.ListByIngredient(c.Request.Context(), identityFrom(c), c.Param("ingredient"))
	if err != nil {
		h.fail(c, "list by ingredient", err)
		return
	}
	c.JSON(http.StatusOK, recipeListResponse{Recipes: list})
}

// Chosen handles GET /recipes/chosen
func (h *RecipeHandlers) Chosen(c *gin.Context) {
	list, err := h.service.ListChosen(c.Request.Context(), identityFrom(c))
	if err != nil {
		h.fail(c, "list chosen", err)
		return
	}
	c.JSON(http.StatusOK, recipeListResponse{Recipes: list})
}

// Weekly handles GET /recipes/weekly?amount=n
func (h *RecipeHandlers) Weekly(c *gin.Context) {
	amount := 0
	if raw := c.Query("amount"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a number"})
			return
		}
		amount = parsed
	}

	list, err := h.service.SampleWeekly(c.Request.Context(), identityFrom(c), amount)
	if err != nil {
		h.fail(c, "sample weekly", err)
		return
	}
	c.JSON(http.StatusOK, recipeListResponse{Recipes: list})
}

// Choose handles POST /recipes/weekly
func (h *RecipeHandlers) Choose(c *gin.Context) {
	var body struct {
		IDs []string `json:"ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.ChooseForWeek(c.Request.Context(), identityFrom(c), body.IDs); err != nil {
		h.fail(c, "choose for week", err)
		return
	}
	c.Status(http.StatusCreated)
}

// ResetChosen handles DELETE /recipes/weeklyreset
func (h *RecipeHandlers) ResetChosen(c *gin.Context) {
	if err := h.service.ResetChosen(c.Request.Context(), identityFrom(c)); err != nil {
		h.fail(c, "reset chosen", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Remove handles DELETE /recipes/remove/:r_id
func (h *RecipeHandlers) Remove(c *gin.Context) {
	if err := h.service.RemoveOwned(c.Request.Context(), identityFrom(c), c.Param("r_id")); err != nil {
		h.fail(c, "remove recipe", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Like handles PUT /recipes/like?r_id=
func (h *RecipeHandlers) Like(c *gin.Context) {
	recipeID := c.Query("r_id")
	if recipeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "r_id is required"})
		return
	}

	outcome, err := h.service.ToggleLike(c.Request.Context(), identityFrom(c), recipeID)
	if err != nil {
		h.fail(c, "toggle like", err)
		return
	}
	switch outcome {
	case recipes.Liked:
		c.Status(http.StatusCreated)
	case recipes.Unliked:
		c.Status(http.StatusAccepted)
	default:
		// Owners cannot like their own recipes; reported as a no-op.
		c.Status(http.StatusNoContent)
	}
}

// Get handles GET /recipes/:r_id
func (h *RecipeHandlers) Get(c *gin.Context) {
	recipe, err := h.service.Get(c.Request.Context(), identityFrom(c), c.Param("r_id"))
	if err != nil {
		h.fail(c, "get recipe", err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// GetPublic handles GET /recipes/public/:r_id. A private or unknown id gets
// an unauthorized outcome rather than leaking whether it exists.
func (h *RecipeHandlers) GetPublic(c *gin.Context) {
	recipe, err := h.service.GetPublic(c.Request.Context(), c.Param("r_id"))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.Status(http.StatusUnauthorized)
			return
		}
		h.fail(c, "get public recipe", err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// ListPublic handles GET /recipes/public
func (h *RecipeHandlers) ListPublic(c *gin.Context) {
	list, err := h.service.ListPublic(c.Request.Context())
	if err != nil {
		h.fail(c, "list public", err)
		return
	}
	c.JSON(http.StatusOK, recipeListResponse{Recipes: list})
}

// Share handles GET /recipes/share?r_id=
func (h *RecipeHandlers) Share(c *gin.Context) {
	recipeID := c.Query("r_id")
	if recipeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "r_id is required"})
		return
	}

	recipe, err := h.service.Share(c.Request.Context(), recipeID)
	if err != nil {
		h.fail(c, "share recipe", err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandlers) fail(c *gin.Context, op string, err error) {
	if errors.Is(err, apperr.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	h.logger.Error("recipe operation failed", zap.String("op", op), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
