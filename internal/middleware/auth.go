package middleware

import (
	"grocery-be/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Authenticate resolves the session token (cookie or bearer header) and puts
// the user identity on the request context. Requests without a valid token
// pass through anonymously; RequireAuth is the gate.
func Authenticate(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := auth.ExtractAccessToken(c.Request)
		if tokenStr == "" {
			c.Next()
			return
		}

		userID, err := auth.ParseSessionToken(jwtSecret, tokenStr)
		if err != nil {
			c.Next()
			return
		}

		ctx := auth.SetUserContext(c.Request.Context(), userID, "")
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireAuth rejects requests that did not authenticate.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := auth.GetUserIDFromContext(c.Request.Context()); !ok {
			c.AbortWithStatusJSON(401, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

// UserID is a convenience accessor for handlers behind RequireAuth.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	return auth.GetUserIDFromContext(c.Request.Context())
}
