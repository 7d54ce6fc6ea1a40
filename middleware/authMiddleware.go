package middleware

import (
	"net/http"
	"strings"

	"family-restaurant/helpers"
	"family-restaurant/models"

	"github.com/gin-gonic/gin"
)

// Authentication validates the bearer token and injects the claims into the
// request context. Browser WebSocket clients cannot set headers, so a token
// query parameter is accepted as a fallback.
func Authentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientToken := ""
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			clientToken = strings.TrimPrefix(authHeader, "Bearer ")
		}
		if clientToken == "" {
			clientToken = c.Query("token")
		}
		if clientToken == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization token required"})
			c.Abort()
			return
		}

		claims, err := helpers.ValidateToken(clientToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("uid", claims.Uid)
		c.Set("email", claims.Email)
		c.Set("name", claims.Name)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// AdminOnly enforces the admin role server-side. The client-side role flag
// is a UI affordance only, never a trust decision.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
