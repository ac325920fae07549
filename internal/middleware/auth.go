package middleware

import (
	"net/http"

	"inkwell/internal/services"
	"inkwell/internal/store"

	"github.com/gin-gonic/gin"
)

// TokenHeader is the header clients present their token in.
const TokenHeader = "x-access-token"

// UserKey is the context key the resolved user is stored under.
const UserKey = "user"

// AuthRequired verifies the x-access-token header, resolves the user
// and aborts with 401 before any handler logic runs otherwise.
func AuthRequired(tokens *services.TokenService, st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader(TokenHeader)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication token required"})
			return
		}
		userID, err := tokens.Verify(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		user, err := st.UserByID(userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set(UserKey, user)
		c.Next()
	}
}
