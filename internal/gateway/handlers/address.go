package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"depo-system/internal/acceptance"
)

type addressRequest struct {
	QRCode    string `json:"qr_code" binding:"required"`
	Direction string `json:"direction" binding:"required"`
}

func (h *AcceptanceHandler) TransitionAddress(c *gin.Context) {
	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	direction := acceptance.Direction(req.Direction)
	if direction != acceptance.ShelfToWarehouse && direction != acceptance.WarehouseToShelf {
		fail(c, http.StatusBadRequest, "Unknown direction: "+req.Direction)
		return
	}

	storeID, username := identity(c)
	result, err := h.resolver.TransitionAddress(c.Request.Context(), acceptance.AddressInput{
		QRCode:    req.QRCode,
		Direction: direction,
		StoreID:   storeID,
		Username:  username,
	})
	if err != nil {
		var precondition *acceptance.PreconditionError
		var mismatch *acceptance.StateMismatchError
		switch {
		case errors.Is(err, acceptance.ErrItemNotFound):
			fail(c, http.StatusNotFound, "Item not found: "+req.QRCode)
		case errors.Is(err, acceptance.ErrWrongStore):
			fail(c, http.StatusForbidden, "Item belongs to another store")
		case errors.As(err, &precondition):
			fail(c, http.StatusConflict, "Cannot address item: "+precondition.Error())
		case errors.As(err, &mismatch):
			fail(c, http.StatusConflict, "Cannot address item: "+mismatch.Error())
		default:
			fail(c, http.StatusInternalServerError, "Addressing failed: "+err.Error())
		}
		return
	}

	invalidateBoxCaches(c.Request.Context(), h.redis, storeID)
	success(c, result)
}
