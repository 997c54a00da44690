package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/khmorad/Mood-Tracker/internal/common"
	"github.com/khmorad/Mood-Tracker/internal/server/auth"
)

// claimsKey is the gin context key the auth middleware stores claims under.
const claimsKey = "claims"

// AuthMiddleware verifies the bearer token and attaches its claims to the
// request context.
type AuthMiddleware struct {
	secretKey []byte
}

func NewAuthMiddleware(secretKey []byte) *AuthMiddleware {
	return &AuthMiddleware{secretKey: secretKey}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}

		claims, err := auth.GetClaimsFromToken(tokenString, am.secretKey)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// claimsFrom returns the verified claims the middleware stored, or nil on an
// unauthenticated route.
func claimsFrom(c *gin.Context) *auth.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader(common.AccessTokenHeaderName)
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ""
}
