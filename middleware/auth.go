package middleware

import (
	"net/http"
	"strings"

	"localserve/services/auth"

	"github.com/gin-gonic/gin"
)

// CustomerIDKey is the context key holding the authenticated customer id.
const CustomerIDKey = "customerID"

// CustomerAuthMiddleware validates the bearer credential and stores the
// customer identity on the request context.
func CustomerAuthMiddleware(issuer auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		credential := strings.TrimPrefix(header, "Bearer ")

		identity, err := issuer.Verify(credential)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(CustomerIDKey, identity.CustomerID)
		c.Next()
	}
}
