package auth

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"pentacook/backend/internal/graph"
	"pentacook/backend/pkg/apperr"
	"pentacook/backend/pkg/logger"
)

// Identity is the resolved, authenticated representation of a session's
// owning user. It is computed once per request and threaded to every
// component that needs it.
type Identity struct {
	UserID   string
	Username string
	Role     string
}

// UserFinder is the single graph lookup the resolver needs.
type UserFinder interface {
	FindUserByID(ctx context.Context, id string) (*graph.User, error)
}

// Resolver maps an opaque session token to a validated user identity.
type Resolver struct {
	store  UserFinder
	logger *zap.Logger
}

// NewResolver creates a new identity resolver
func NewResolver(store UserFinder) *Resolver {
	return &Resolver{
		store:  store,
		logger: logger.Get(),
	}
}

// Resolve validates the token against the graph. An empty token is a
// "not logged in" failure; a token with no matching user node is a
// "session no longer valid" failure. The two stay distinguishable.
func (r *Resolver) Resolve(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, apperr.NewAuthMissing()
	}

	user, err := r.store.FindUserByID(ctx, token)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			r.logger.Debug("session token has no matching user", zap.String("token", token))
			return Identity{}, apperr.NewAuthInvalid()
		}
		return Identity{}, err
	}

	return Identity{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}
