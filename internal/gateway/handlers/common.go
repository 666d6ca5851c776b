package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"depo-system/internal/gateway/middleware"
)

const (
	BOXES_CACHE_PREFIX  = "acceptance:boxes:"
	REPORT_CACHE_PREFIX = "report:boxes:"
	CACHE_TTL_SHORT     = 5 * time.Minute
)

func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// successNotice is for idempotent no-ops: the operation is not a
// failure, but it must not look like a plain success either.
func successNotice(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"notice":  message,
		"data":    data,
	})
}

func fail(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"success": false,
		"error":   message,
	})
}

// identity returns the acting store and operator the auth middleware
// resolved for this request.
func identity(c *gin.Context) (storeID, username string) {
	return c.GetString(middleware.ContextStoreID), c.GetString(middleware.ContextUsername)
}

// invalidateBoxCaches drops the cached list/report views for a store
// after any acceptance or addressing write. A nil client is a no-op.
func invalidateBoxCaches(ctx context.Context, rdb *redis.Client, storeIDs ...string) {
	if rdb == nil {
		return
	}
	for _, id := range storeIDs {
		if id == "" {
			continue
		}
		_ = rdb.Del(ctx, BOXES_CACHE_PREFIX+id, REPORT_CACHE_PREFIX+id)
	}
}
