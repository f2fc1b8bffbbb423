package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skillbridge/marketplace/internal/httperr"
	"github.com/skillbridge/marketplace/internal/identity"
	"github.com/skillbridge/marketplace/internal/models"
)

const (
	ContextUser      = "currentUser"
	ContextRequestID = "requestID"
)

// UserLoader fetches a user by primary key, for session cache hits.
type UserLoader interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

// Authenticate resolves the bearer token into a local user and stores it on
// the context. No header means anonymous: the request continues and the
// policy layer decides what an anonymous actor may see. A header that is
// present but unusable is always a 401.
func Authenticate(
	verifier identity.Verifier,
	resolver *identity.Resolver,
	cache *identity.SessionCache,
	users UserLoader,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "expected a bearer token")
			c.Abort()
			return
		}
		token := parts[1]

		if cache != nil {
			if id, ok := cache.Get(c.Request.Context(), token); ok {
				if u, err := users.FindByID(c.Request.Context(), id); err == nil {
					c.Set(ContextUser, u)
					c.Next()
					return
				}
				// Stale cache entry, fall through to full verification.
			}
		}

		id, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, identity.ErrTokenExpired):
				httperr.Unauthorized(c, "token_expired", "token has expired")
			case errors.Is(err, identity.ErrTokenMalformed):
				httperr.Unauthorized(c, "token_malformed", "token could not be parsed")
			default:
				httperr.Unauthorized(c, "invalid_token", "token verification failed")
			}
			c.Abort()
			return
		}

		u, err := resolver.Resolve(c.Request.Context(), id)
		if err != nil {
			httperr.Internal(c, "identity_resolution_failed", "could not resolve user")
			c.Abort()
			return
		}

		if cache != nil {
			cache.Put(c.Request.Context(), token, u.ID)
		}

		c.Set(ContextUser, u)
		c.Next()
	}
}

// CurrentUser returns the authenticated user, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}

// RequireAuth rejects anonymous and deactivated actors.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			httperr.Unauthorized(c, "authentication_required", "authentication required")
			c.Abort()
			return
		}
		if !u.Active {
			httperr.Forbidden(c, "account_disabled", "account is deactivated")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin guards the admin surface. Runs after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil || !u.IsAdmin() {
			httperr.Forbidden(c, "admin_only", "admin privileges required")
			c.Abort()
			return
		}
		c.Next()
	}
}
