package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/indiverse/heritagebot/internal/auth"
)

// UsernameKey is the context key holding the authenticated username
const UsernameKey = "username"

// Auth returns an API key authentication middleware
func Auth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip auth if no API key configured
		if apiKey == "" {
			c.Next()
			return
		}

		key := c.GetHeader("X-API-Key")
		if key == "" {
			key = bearer(c)
		}

		if key != apiKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Next()
	}
}

// OptionalUser tags the request with the username from a valid bearer token.
// Requests without a token pass through anonymously; a bad token is rejected.
func OptionalUser(verifier *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearer(c)
		if verifier == nil || token == "" {
			c.Next()
			return
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(UsernameKey, claims.Username)
		c.Next()
	}
}

// Username returns the username set by OptionalUser, if any
func Username(c *gin.Context) string {
	return c.GetString(UsernameKey)
}

func bearer(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}
