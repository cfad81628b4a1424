package users

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"pentacook/backend/internal/auth"
	"pentacook/backend/internal/graph"
	"pentacook/backend/pkg/apperr"
	"pentacook/backend/pkg/logger"
)

// DefaultRole is assigned to every account at creation.
const DefaultRole = "pentacoob"

var (
	// ErrInvalidInput is returned when a registration payload fails
	// validation.
	ErrInvalidInput = errors.New("invalid registration input")
	// ErrUsernameTaken is returned when the username is already held.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrEmailTaken is returned when the email is already held.
	ErrEmailTaken = errors.New("email already taken")
	// ErrBadCredentials is returned on unknown username or wrong password.
	ErrBadCredentials = errors.New("bad credentials")
)

// UserStore is the slice of the graph the user service needs.
type UserStore interface {
	FindUserByUsername(ctx context.Context, username string) (*graph.User, error)
	UserFieldTaken(ctx context.Context, username, email string) (graph.TakenField, error)
	CreateUser(ctx context.Context, user graph.User) error
}

// RegisterInput is an already-parsed registration payload.
type RegisterInput struct {
	Username string `validate:"required,min=3"`
	Password string `validate:"required,min=10"`
	Email    string `validate:"required,email"`
}

// Service creates accounts and verifies credentials. Password hashing is
// delegated to the auth package's argon2id helpers.
type Service struct {
	store    UserStore
	validate *validator.Validate
	logger   *zap.Logger
}

// NewService creates a new user service
func NewService(store UserStore) *Service {
	return &Service{
		store:    store,
		validate: validator.New(),
		logger:   logger.Get(),
	}
}

// Register validates the input, enforces username and email uniqueness,
// hashes the password and creates the user node. Returns the new identity.
func (s *Service) Register(ctx context.Context, in RegisterInput) (auth.Identity, error) {
	if err := s.validate.Struct(in); err != nil {
		return auth.Identity{}, ErrInvalidInput
	}

	taken, err := s.store.UserFieldTaken(ctx, in.Username, in.Email)
	if err != nil {
		return auth.Identity{}, err
	}
	switch taken {
	case graph.TakenUsername:
		return auth.Identity{}, ErrUsernameTaken
	case graph.TakenEmail:
		return auth.Identity{}, ErrEmailTaken
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return auth.Identity{}, err
	}

	user := graph.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		Email:        in.Email,
		Role:         DefaultRole,
		PasswordHash: hash,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return auth.Identity{}, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID),
		zap.String("username", user.Username),
	)
	return auth.Identity{UserID: user.ID, Username: user.Username, Role: user.Role}, nil
}

// Login verifies a username/password pair and returns the account identity.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (auth.Identity, error) {
	user, err := s.store.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return auth.Identity{}, ErrBadCredentials
		}
		return auth.Identity{}, err
	}

	if err := auth.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrHashMismatch) {
			return auth.Identity{}, ErrBadCredentials
		}
		return auth.Identity{}, err
	}

	return auth.Identity{UserID: user.ID, Username: user.Username, Role: user.Role}, nil
}
