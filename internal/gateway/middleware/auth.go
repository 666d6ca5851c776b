package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"depo-system/internal/utils"
)

const (
	ContextStoreID  = "storeID"
	ContextUsername = "username"
)

// JWTAuth validates the bearer token issued by the identity provider
// and places the acting store and operator name on the context.
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Authorization header required",
			})
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		if tokenStr == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Bearer token required",
			})
			return
		}

		claims, err := utils.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Invalid or expired token",
			})
			return
		}

		if claims.StoreID == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "Token carries no store identity",
			})
			return
		}

		c.Set(ContextStoreID, claims.StoreID)
		c.Set(ContextUsername, claims.Username)
		c.Next()
	}
}
