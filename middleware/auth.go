package middleware

import (
	"net/http"
	"strings"

	"trimly/utils"

	"github.com/gin-gonic/gin"
)

const authContextKey = "authContext"
const rawTokenKey = "rawToken"

// AuthMiddleware validates the bearer token and materializes the caller's
// identity as an explicit AuthContext for the rest of the request. The raw
// token is kept so upstream calls can forward it.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		auth, err := utils.AuthContextFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(authContextKey, *auth)
		c.Set(rawTokenKey, tokenString)
		c.Next()
	}
}

// RequireRole restricts an endpoint to one role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth, ok := GetAuthContext(c)
		if !ok || auth.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}

// GetAuthContext returns the caller identity set by AuthMiddleware.
func GetAuthContext(c *gin.Context) (utils.AuthContext, bool) {
	v, ok := c.Get(authContextKey)
	if !ok {
		return utils.AuthContext{}, false
	}
	auth, ok := v.(utils.AuthContext)
	return auth, ok
}

// GetRawToken returns the bearer token for upstream forwarding.
func GetRawToken(c *gin.Context) string {
	v, ok := c.Get(rawTokenKey)
	if !ok {
		return ""
	}
	token, _ := v.(string)
	return token
}
