package recipes

import (
	"context"
	"time"

	"go.uber.org/zap"

	"pentacook/backend/pkg/logger"
)

// ChosenTTL is how long a CHOSEN edge stays valid after creation.
const ChosenTTL = 8 * 24 * time.Hour

// ChosenStore is the slice of the graph the expiry policy touches.
type ChosenStore interface {
	ChosenCreatedAt(ctx context.Context, userID string) (time.Time, bool, error)
	DeleteChosen(ctx context.Context, userID string) error
}

// ExpiryPolicy enforces the weekly-plan TTL on access: any read that touches
// CHOSEN edges consults it first, and an expired plan is deleted before the
// read proceeds. The check and the delete are separate queries with no lock
// between them; two concurrent requests may both observe expiry and both
// delete, which is harmless because the delete is idempotent.
type ExpiryPolicy struct {
	store  ChosenStore
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger
}

// NewExpiryPolicy creates the policy with the given TTL. A zero ttl falls
// back to ChosenTTL.
func NewExpiryPolicy(store ChosenStore, ttl time.Duration) *ExpiryPolicy {
	if ttl <= 0 {
		ttl = ChosenTTL
	}
	return &ExpiryPolicy{
		store:  store,
		ttl:    ttl,
		now:    time.Now,
		logger: logger.Get(),
	}
}

// ExpireChosen reports whether the user's chosen set was expired and
// deleted. Nothing chosen yet reports (false, nil). When it returns true the
// caller must treat the chosen set as empty for this request.
func (p *ExpiryPolicy) ExpireChosen(ctx context.Context, userID string) (bool, error) {
	created, exists, err := p.store.ChosenCreatedAt(ctx, userID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	if p.now().After(created.Add(p.ttl)) {
		if err := p.store.DeleteChosen(ctx, userID); err != nil {
			return false, err
		}
		p.logger.Debug("expired chosen edges deleted",
			zap.String("user_id", userID),
			zap.Time("created", created),
		)
		return true, nil
	}
	return false, nil
}
