package graph

import (
	"context"

	"pentacook/backend/pkg/apperr"
)

// ============================================================================
// User Operations
// ============================================================================

// FindUserByID looks up the single user node whose id equals the given
// identity. Returns apperr.ErrNotFound when no node matches.
func (s *Store) FindUserByID(ctx context.Context, id string) (*User, error) {
	query := `
		MATCH (u:User {id: $id})
		RETURN u
	`

	records, err := s.Query(ctx, query, map[string]interface{}{"id": id})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, apperr.ErrNotFound
	}

	node, ok := nodeFromRecord(records[0], "u")
	if !ok {
		return nil, apperr.ErrNotFound
	}
	user := userFromNode(node)
	return &user, nil
}

// FindUserByUsername looks up a user by their unique username.
func (s *Store) FindUserByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		MATCH (u:User {username: $username})
		RETURN u
	`

	records, err := s.Query(ctx, query, map[string]interface{}{"username": username})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, apperr.ErrNotFound
	}

	node, ok := nodeFromRecord(records[0], "u")
	if !ok {
		return nil, apperr.ErrNotFound
	}
	user := userFromNode(node)
	return &user, nil
}

// TakenField reports which unique user field an existing node collides with.
type TakenField string

const (
	TakenNone     TakenField = ""
	TakenUsername TakenField = "username"
	TakenEmail    TakenField = "email"
)

// UserFieldTaken checks whether a user already holds the given username or
// email. Username collisions win when a node matches both.
func (s *Store) UserFieldTaken(ctx context.Context, username, email string) (TakenField, error) {
	query := `
		MATCH (u:User)
		WHERE u.username = $username OR u.email = $email
		RETURN u
		LIMIT 1
	`

	records, err := s.Query(ctx, query, map[string]interface{}{
		"username": username,
		"email":    email,
	})
	if err != nil {
		return TakenNone, err
	}
	if len(records) == 0 {
		return TakenNone, nil
	}

	node, ok := nodeFromRecord(records[0], "u")
	if !ok {
		return TakenNone, nil
	}
	existing := userFromNode(node)
	if existing.Username == username {
		return TakenUsername, nil
	}
	return TakenEmail, nil
}

// CreateUser creates a user node. The caller supplies the generated id and
// the already-hashed credential.
func (s *Store) CreateUser(ctx context.Context, user User) error {
	query := `
		CREATE (:User {
			id: $id,
			username: $username,
			password: $password,
			email: $email,
			role: $role
		})
	`

	return s.Run(ctx, query, map[string]interface{}{
		"id":       user.ID,
		"username": user.Username,
		"password": user.PasswordHash,
		"email":    user.Email,
		"role":     user.Role,
	})
}
