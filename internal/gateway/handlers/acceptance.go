package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"depo-system/internal/acceptance"
	"depo-system/internal/store"
)

// AcceptanceHandler exposes the box/QR acceptance and addressing
// workflows over HTTP.
type AcceptanceHandler struct {
	store    store.ItemStore
	resolver *acceptance.Resolver
	redis    *redis.Client
}

func NewAcceptanceHandler(itemStore store.ItemStore, redisClient *redis.Client) *AcceptanceHandler {
	return &AcceptanceHandler{
		store:    itemStore,
		resolver: acceptance.NewResolver(itemStore),
		redis:    redisClient,
	}
}

type preAcceptanceRequest struct {
	Box      string `json:"box" binding:"required"`
	Override bool   `json:"override"`
}

func (h *AcceptanceHandler) PreAcceptance(c *gin.Context) {
	var req preAcceptanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	storeID, username := identity(c)
	result, err := h.resolver.ResolvePreAcceptance(c.Request.Context(), acceptance.PreAcceptanceInput{
		Box:      req.Box,
		StoreID:  storeID,
		Username: username,
		Override: req.Override,
	})
	if err != nil {
		if errors.Is(err, acceptance.ErrBoxNotFound) {
			fail(c, http.StatusNotFound, "Box not found: "+req.Box)
			return
		}
		fail(c, http.StatusInternalServerError, "Pre-acceptance failed: "+err.Error())
		return
	}

	invalidateBoxCaches(c.Request.Context(), h.redis, storeID)

	switch result.Outcome {
	case acceptance.OutcomeAlreadyAccepted:
		successNotice(c, "Box already processed", result)
	case acceptance.OutcomeWrongStoreFlag:
		successNotice(c, "Box flagged: destined for another store", result)
	default:
		success(c, result)
	}
}

type goodsAcceptanceRequest struct {
	QRCode              string `json:"qr_code" binding:"required"`
	Box                 string `json:"box" binding:"required"`
	AllowPrefixMismatch bool   `json:"allow_prefix_mismatch"`
}

func (h *AcceptanceHandler) GoodsAcceptance(c *gin.Context) {
	var req goodsAcceptanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	storeID, username := identity(c)
	result, err := h.resolver.ResolveGoodsAcceptance(c.Request.Context(), acceptance.GoodsAcceptanceInput{
		QRCode:              req.QRCode,
		Box:                 req.Box,
		StoreID:             storeID,
		Username:            username,
		AllowPrefixMismatch: req.AllowPrefixMismatch,
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "Goods acceptance failed: "+err.Error())
		return
	}

	switch result.Outcome {
	case acceptance.OutcomePrefixRejected:
		// Soft validation: the operator must confirm before retrying
		// with the override flag.
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success":           false,
			"error":             "QR code does not match the registered prefix",
			"requires_override": true,
		})
		return
	case acceptance.OutcomeDuplicateScan:
		successNotice(c, "Code already processed ("+result.CurrentStatus.Label()+")", result)
	case acceptance.OutcomeMisroutedAccepted:
		invalidateBoxCaches(c.Request.Context(), h.redis, storeID, result.OwningStoreID)
		// Surface the true owner so the operator can notify operations.
		successNotice(c, "Item belongs to store "+result.OwningStoreID+", box "+result.OwningBox, result)
	case acceptance.OutcomeUnregisteredInsert:
		invalidateBoxCaches(c.Request.Context(), h.redis, storeID)
		successNotice(c, "Code had no shipment record, inserted", result)
	default:
		invalidateBoxCaches(c.Request.Context(), h.redis, storeID)
		success(c, result)
	}
}

// ListBoxes returns the per-box summaries for the caller's store,
// served from cache when fresh.
func (h *AcceptanceHandler) ListBoxes(c *gin.Context) {
	storeID, _ := identity(c)
	ctx := c.Request.Context()
	cacheKey := BOXES_CACHE_PREFIX + storeID

	if h.redis != nil {
		if cached, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
			var summaries []acceptance.BoxSummary
			if json.Unmarshal([]byte(cached), &summaries) == nil {
				success(c, summaries)
				return
			}
		}
	}

	items, err := h.store.ListByStore(ctx, storeID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to list boxes: "+err.Error())
		return
	}

	summaries := acceptance.Aggregate(items)

	if h.redis != nil {
		if payload, err := json.Marshal(summaries); err == nil {
			_ = h.redis.Set(ctx, cacheKey, payload, CACHE_TTL_SHORT)
		}
	}

	success(c, summaries)
}

func (h *AcceptanceHandler) ListBoxItems(c *gin.Context) {
	box := c.Param("box")
	if box == "" {
		fail(c, http.StatusBadRequest, "box required")
		return
	}

	items, err := h.store.FindByBox(c.Request.Context(), box)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to list box items: "+err.Error())
		return
	}
	if len(items) == 0 {
		fail(c, http.StatusNotFound, "Box not found: "+box)
		return
	}

	success(c, items)
}
