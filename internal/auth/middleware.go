package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	contextKeyUserID = "user_id"
	contextKeyEmail  = "user_email"
)

// IdentityFromContext returns the identity set by RequireAuth. The zero
// Identity means the request was not authenticated.
func IdentityFromContext(c *gin.Context) Identity {
	return Identity{
		UserID: c.GetString(contextKeyUserID),
		Email:  c.GetString(contextKeyEmail),
	}
}

// RequireAuth returns a middleware that verifies the Authorization header and
// sets the caller identity in context. The "Bearer " prefix is optional: a
// bare token is accepted as-is. Missing and invalid tokens get distinct 401
// messages.
func RequireAuth(tokens *TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Access Denied. No Token Provided"})
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		identity, err := tokens.Verify(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid Token"})
			return
		}

		c.Set(contextKeyUserID, identity.UserID)
		c.Set(contextKeyEmail, identity.Email)
		c.Next()
	}
}
