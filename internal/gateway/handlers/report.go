package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"depo-system/internal/report"
	"depo-system/internal/store"
)

// ReportHandler serves the reporting and export views.
type ReportHandler struct {
	store store.ItemStore
	redis *redis.Client
}

func NewReportHandler(itemStore store.ItemStore, redisClient *redis.Client) *ReportHandler {
	return &ReportHandler{store: itemStore, redis: redisClient}
}

// Boxes returns the per-box completion report for the caller's store,
// served from cache when fresh.
func (h *ReportHandler) Boxes(c *gin.Context) {
	storeID, _ := identity(c)
	ctx := c.Request.Context()
	cacheKey := REPORT_CACHE_PREFIX + storeID

	if h.redis != nil {
		if cached, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
			var summary report.Summary
			if json.Unmarshal([]byte(cached), &summary) == nil {
				success(c, summary)
				return
			}
		}
	}

	items, err := h.store.ListByStore(ctx, storeID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to build report: "+err.Error())
		return
	}

	summary := report.Build(items)

	if h.redis != nil {
		if payload, err := json.Marshal(summary); err == nil {
			_ = h.redis.Set(ctx, cacheKey, payload, CACHE_TTL_SHORT)
		}
	}

	success(c, summary)
}

// Export streams the full item state of the caller's store as CSV.
func (h *ReportHandler) Export(c *gin.Context) {
	storeID, _ := identity(c)

	items, err := h.store.ListByStore(c.Request.Context(), storeID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to export: "+err.Error())
		return
	}

	filename := "acceptance-" + storeID + "-" + time.Now().Format("20060102") + ".csv"
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := report.WriteCSV(c.Writer, items); err != nil {
		fail(c, http.StatusInternalServerError, "Failed to write export: "+err.Error())
		return
	}
}
