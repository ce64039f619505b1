package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tidywave/utils"
)

// Context keys set by the auth middlewares.
const (
	ContextClientID = "clientID"
	ContextAdminID  = "adminID"
)

// bearerToken extracts the bearer token, validates its signature and expiry,
// and checks its hash against the auth cache so logout and password resets
// revoke it immediately.
func bearerToken(c *gin.Context) (subject string, kind string, ok bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", "", false
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == "" {
		return "", "", false
	}

	subject, kind, err := utils.ExtractIDFromToken(tokenString)
	if err != nil || subject == "" {
		return "", "", false
	}

	cachedHash, err := utils.GetAuthCacheClient().Get(c.Request.Context(), utils.AuthCachePrefix+subject).Result()
	if err != nil || cachedHash != utils.HashToken(tokenString) {
		return "", "", false
	}
	return subject, kind, true
}

// ClientAuthMiddleware guards client-facing routes.
func ClientAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, kind, ok := bearerToken(c)
		if !ok || kind != utils.PrincipalClient {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		c.Set(ContextClientID, subject)
		c.Next()
	}
}

// AdminAuthMiddleware guards back-office routes.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, kind, ok := bearerToken(c)
		if !ok || kind != utils.PrincipalAdmin {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		c.Set(ContextAdminID, subject)
		c.Next()
	}
}
