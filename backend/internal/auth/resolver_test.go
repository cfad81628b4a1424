package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pentacook/backend/internal/graph"
	"pentacook/backend/pkg/apperr"
)

type fakeUserFinder struct {
	users map[string]*graph.User
	err   error
}

func (f *fakeUserFinder) FindUserByID(_ context.Context, id string) (*graph.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.users[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return user, nil
}

func TestResolve_EmptyTokenIsMissing(t *testing.T) {
	resolver := NewResolver(&fakeUserFinder{})

	_, err := resolver.Resolve(context.Background(), "")

	var ae *apperr.AuthError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperr.AuthMissing, ae.Kind)
}

func TestResolve_UnknownTokenIsInvalid(t *testing.T) {
	resolver := NewResolver(&fakeUserFinder{users: map[string]*graph.User{}})

	_, err := resolver.Resolve(context.Background(), "ghost")

	var ae *apperr.AuthError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperr.AuthInvalid, ae.Kind)
}

func TestResolve_KnownTokenYieldsIdentity(t *testing.T) {
	resolver := NewResolver(&fakeUserFinder{users: map[string]*graph.User{
		"user-1": {ID: "user-1", Username: "alice", Role: "pentacoob"},
	}})

	identity, err := resolver.Resolve(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.UserID)
	assert.Equal(t, "alice", identity.Username)
	assert.Equal(t, "pentacoob", identity.Role)
}

func TestResolve_StoreErrorPropagates(t *testing.T) {
	storeErr := apperr.NewStoreError("query", errors.New("connection refused"))
	resolver := NewResolver(&fakeUserFinder{err: storeErr})

	_, err := resolver.Resolve(context.Background(), "user-1")
	assert.True(t, apperr.IsStore(err))
	assert.False(t, apperr.IsAuth(err))
}
