package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pentacook/backend/internal/auth"
	"pentacook/backend/pkg/apperr"
)

const (
	// SessionCookie carries the signed session token.
	SessionCookie = "session"
	// UsernameCookie is a plain cookie the frontend reads directly.
	UsernameCookie = "username"

	identityKey = "identity"
)

// IdentityResolver resolves a session token to an authenticated identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (auth.Identity, error)
}

// SessionReader verifies a session cookie and extracts the user id.
type SessionReader interface {
	Read(token string) (string, error)
}

// RequireIdentity resolves the session cookie to an Identity exactly once
// per request and stores it in the request context for every handler behind
// it. A missing cookie and a session whose user no longer exists fail with
// different statuses so the frontend can tell them apart.
func RequireIdentity(resolver IdentityResolver, sessions SessionReader, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(SessionCookie)
		if err != nil || cookie == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
			return
		}

		userID, err := sessions.Read(cookie)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
			return
		}

		identity, err := resolver.Resolve(c.Request.Context(), userID)
		if err != nil {
			var ae *apperr.AuthError
			switch {
			case errors.As(err, &ae) && ae.Kind == apperr.AuthInvalid:
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "session no longer valid"})
			case apperr.IsAuth(err):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
			default:
				log.Error("identity resolution failed", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// identityFrom reads the per-request identity placed by RequireIdentity.
func identityFrom(c *gin.Context) auth.Identity {
	val, _ := c.Get(identityKey)
	identity, _ := val.(auth.Identity)
	return identity
}

// CORS allows the SPA frontend to talk to the API with cookies.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", c.GetHeader("Origin"))
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
