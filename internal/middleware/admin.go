package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// RequireAdminKey guards the admin surface. The caller sends the plaintext
// key in X-Admin-Key; only its bcrypt hash lives in configuration.
func RequireAdminKey(adminKeyHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if adminKeyHash == "" {
			c.AbortWithStatusJSON(503, gin.H{"error": "admin access not configured"})
			return
		}

		key := c.GetHeader("X-Admin-Key")
		if key == "" {
			c.AbortWithStatusJSON(401, gin.H{"error": "admin key required"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(adminKeyHash), []byte(key)); err != nil {
			c.AbortWithStatusJSON(403, gin.H{"error": "invalid admin key"})
			return
		}

		c.Next()
	}
}
