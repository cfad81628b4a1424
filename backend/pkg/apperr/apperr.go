package apperr

import (
	"errors"
	"fmt"
)

// AuthKind distinguishes the two ways session resolution can fail.
type AuthKind string

const (
	// AuthMissing means no session token was presented at all.
	AuthMissing AuthKind = "missing"
	// AuthInvalid means a token was presented but no user matches it,
	// e.g. the session outlived the account.
	AuthInvalid AuthKind = "invalid"
)

// AuthError is returned when a session token cannot be resolved to a user.
type AuthError struct {
	Kind AuthKind
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth: %s session token", e.Kind)
}

// Is lets errors.Is match any AuthError regardless of kind.
func (e *AuthError) Is(target error) bool {
	t, ok := target.(*AuthError)
	if !ok {
		return false
	}
	return t.Kind == "" || t.Kind == e.Kind
}

// NewAuthMissing reports an absent session token.
func NewAuthMissing() *AuthError {
	return &AuthError{Kind: AuthMissing}
}

// NewAuthInvalid reports a token with no matching user node.
func NewAuthInvalid() *AuthError {
	return &AuthError{Kind: AuthInvalid}
}

// StoreError wraps a graph backend failure. It is fatal for the current
// request; the core never retries at this layer.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError wraps err with the failing operation name.
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

// ErrNotFound is returned when a requested recipe or ingredient is absent
// or not visible to the caller.
var ErrNotFound = errors.New("not found")

// IsAuth reports whether err is any authentication failure.
func IsAuth(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// IsStore reports whether err originated in the graph backend.
func IsStore(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
