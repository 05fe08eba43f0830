package middleware

import (
	"net/http"
	"strings"

	"github.com/doctorshift/marketplace-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token and stashes the caller's
// identity in the request context. Approval status is NOT trusted from the
// token; routes that need it re-read the user from the database because
// tokens outlive admin decisions.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authorization header required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ValidateJWT(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userRole", claims.Role)

		c.Next()
	}
}
