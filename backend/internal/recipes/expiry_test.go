package recipes

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpireChosen_NothingChosen(t *testing.T) {
	store := newFakeStore()
	policy := NewExpiryPolicy(store, 0)

	deleted, err := policy.ExpireChosen(context.Background(), alice.UserID)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Zero(t, store.deleteChosenCalls)
}

func TestExpireChosen_NineDaysOldIsDeletedOnce(t *testing.T) {
	store := newFakeStore()
	seedRecipe(store, "r1", alice.UserID, false)
	now := time.Now()
	store.chosen = []chosenEdge{{userID: alice.UserID, recipeID: "r1", created: now.Add(-9 * 24 * time.Hour)}}

	policy := NewExpiryPolicy(store, 0)
	policy.now = func() time.Time { return now }

	deleted, err := policy.ExpireChosen(context.Background(), alice.UserID)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, 1, store.deleteChosenCalls, "exactly one delete must be issued")
	assert.Empty(t, store.chosen)
}

func TestExpireChosen_SevenDaysOldSurvives(t *testing.T) {
	store := newFakeStore()
	seedRecipe(store, "r1", alice.UserID, false)
	now := time.Now()
	store.chosen = []chosenEdge{{userID: alice.UserID, recipeID: "r1", created: now.Add(-7 * 24 * time.Hour)}}

	policy := NewExpiryPolicy(store, 0)
	policy.now = func() time.Time { return now }

	deleted, err := policy.ExpireChosen(context.Background(), alice.UserID)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Zero(t, store.deleteChosenCalls)
}

func TestExpireChosen_OldestEdgeDecides(t *testing.T) {
	store := newFakeStore()
	seedRecipe(store, "r1", alice.UserID, false)
	seedRecipe(store, "r2", alice.UserID, false)
	now := time.Now()
	store.chosen = []chosenEdge{
		{userID: alice.UserID, recipeID: "r1", created: now.Add(-time.Hour)},
		{userID: alice.UserID, recipeID: "r2", created: now.Add(-9 * 24 * time.Hour)},
	}

	policy := NewExpiryPolicy(store, 0)
	policy.now = func() time.Time { return now }

	deleted, err := policy.ExpireChosen(context.Background(), alice.UserID)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Empty(t, store.chosen, "all chosen edges go, not just the expired one")
}

func TestListChosen_ExpiredPlanReadsEmpty(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	seedRecipe(store, "r1", alice.UserID, false)
	now := time.Now()
	store.chosen = []chosenEdge{{userID: alice.UserID, recipeID: "r1", created: now.Add(-9 * 24 * time.Hour)}}

	service := testService(store)
	service.expiry.now = func() time.Time { return now }

	list, err := service.ListChosen(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, 1, store.deleteChosenCalls)
}

func TestListChosen_FreshPlanIsReturned(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	seedRecipe(store, "r1", alice.UserID, false)
	now := time.Now()
	store.chosen = []chosenEdge{{userID: alice.UserID, recipeID: "r1", created: now.Add(-7 * 24 * time.Hour)}}

	service := testService(store)
	service.expiry.now = func() time.Time { return now }

	list, err := service.ListChosen(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "r1", list[0].ID)
	assert.Zero(t, store.deleteChosenCalls)
}
