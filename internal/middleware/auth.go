package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-attendance-gateway/internal/models"
	appErrors "github.com/noah-isme/campus-attendance-gateway/pkg/errors"
	"github.com/noah-isme/campus-attendance-gateway/pkg/response"
)

const (
	// ContextUserKey is the gin context key storing JWT claims.
	ContextUserKey = "currentUser"
	// ContextSessionKey is the gin context key storing the resolved session.
	ContextSessionKey = "currentSession"
)

// Authenticator resolves a gateway token to its session.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.Session, *models.SessionClaims, error)
}

// JWT protects routes by requiring a valid access token bound to a live session.
func JWT(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		session, claims, err := auth.Authenticate(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, claims)
		c.Set(ContextSessionKey, session)
		c.Next()
	}
}

// SessionFrom returns the session stored by JWT, if any.
func SessionFrom(c *gin.Context) *models.Session {
	value, ok := c.Get(ContextSessionKey)
	if !ok {
		return nil
	}
	session, _ := value.(*models.Session)
	return session
}

// ClaimsFrom returns the claims stored by JWT, if any.
func ClaimsFrom(c *gin.Context) *models.SessionClaims {
	value, ok := c.Get(ContextUserKey)
	if !ok {
		return nil
	}
	claims, _ := value.(*models.SessionClaims)
	return claims
}

// RequireRoles rejects requests whose session role is not listed.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		claims := ClaimsFrom(c)
		if claims == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if _, ok := allowed[claims.Role]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
