package middleware

import (
	"net/http"
	"strings"

	"github.com/bookwise/bookwise/internal/entity"
	"github.com/bookwise/bookwise/pkg/auth"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// JWTAuth validates the Bearer token and stores the caller's identity in the
// request context. Handlers behind it can assume IdentityFromContext returns
// a non-nil identity.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		claims, err := auth.ParseValidate(secret, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(identityKey, &entity.Identity{
			UserID: claims.Sub,
			Email:  claims.Email,
		})
		c.Next()
	}
}

// IdentityFromContext returns the authenticated identity, or nil when the
// request never passed JWTAuth.
func IdentityFromContext(c *gin.Context) *entity.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	identity, _ := v.(*entity.Identity)
	return identity
}
