package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pentacook/backend/internal/auth"
	"pentacook/backend/internal/users"
)

// UserService is the account surface the user handlers call.
type UserService interface {
	Register(ctx context.Context, in users.RegisterInput) (auth.Identity, error)
	Login(ctx context.Context, username, password string) (auth.Identity, error)
}

// SessionIssuer mints a session token for a resolved identity.
type SessionIssuer interface {
	Issue(identity auth.Identity) (string, error)
}

// UserHandlers maps account operations onto HTTP responses and owns the
// session cookie plumbing.
type UserHandlers struct {
	service  UserService
	sessions SessionIssuer
	logger   *zap.Logger
}

// NewUserHandlers creates the user handler set
func NewUserHandlers(service UserService, sessions SessionIssuer, log *zap.Logger) *UserHandlers {
	return &UserHandlers{service: service, sessions: sessions, logger: log}
}

type credentialsBody struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email"`
}

// Register handles POST /users/new
func (h *UserHandlers) Register(c *gin.Context) {
	var body credentialsBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity, err := h.service.Register(c.Request.Context(), users.RegisterInput{
		Username: body.Username,
		Password: body.Password,
		Email:    body.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, users.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid registration data"})
		case errors.Is(err, users.ErrUsernameTaken):
			c.JSON(http.StatusForbidden, gin.H{"error": "username already taken"})
		case errors.Is(err, users.ErrEmailTaken):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "email already registered"})
		default:
			h.logger.Error("registration failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	if err := h.setSessionCookies(c, identity); err != nil {
		return
	}
	c.Status(http.StatusCreated)
}

// Login handles POST /users/login
func (h *UserHandlers) Login(c *gin.Context) {
	var body credentialsBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity, err := h.service.Login(c.Request.Context(), body.Username, body.Password)
	if err != nil {
		if errors.Is(err, users.ErrBadCredentials) {
			c.JSON(http.StatusForbidden, gin.H{"error": "wrong credentials"})
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if err := h.setSessionCookies(c, identity); err != nil {
		return
	}
	c.Status(http.StatusAccepted)
}

// Logout handles GET /users/logout
func (h *UserHandlers) Logout(c *gin.Context) {
	// The username cookie lives on "/" so the frontend can read it; the
	// clearing cookie has to match that path or browsers ignore it.
	c.SetCookie(UsernameCookie, "", -1, "/", "", false, false)
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

func (h *UserHandlers) setSessionCookies(c *gin.Context, identity auth.Identity) error {
	token, err := h.sessions.Issue(identity)
	if err != nil {
		h.logger.Error("failed to issue session token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return err
	}

	c.SetCookie(SessionCookie, token, 0, "/", "", false, true)
	c.SetCookie(UsernameCookie, identity.Username, 0, "/", "", false, false)
	return nil
}
