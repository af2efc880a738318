package handler

import (
	"net/http"
	"strconv"

	"shoppinglist-service/internal/service"
	"shoppinglist-service/pkg/logger"
	"shoppinglist-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ToggleRequest defines the structure for availability toggle requests
type ToggleRequest struct {
	IsAvailable bool   `json:"isAvailable"`
	UpdatedBy   string `json:"updatedBy,omitempty"`
}

// AvailabilityHandler serves the per-item availability endpoint.
type AvailabilityHandler struct {
	availability *service.AvailabilityService
}

func NewAvailabilityHandler(availability *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// SetAvailability toggles the stock flag for one item, materializing the
// availability record on first write.
func (h *AvailabilityHandler) SetAvailability(c echo.Context) error {
	log := logger.FromContext(c)

	idParam := c.Param("itemId")
	itemID, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil || itemID == 0 {
		log.Warn("Invalid item id", zap.String("item_id", idParam))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "item " + idParam + " not found",
		})
	}

	var req ToggleRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	state, err := h.availability.SetAvailability(c.Request().Context(), uint(itemID), req.IsAvailable, req.UpdatedBy)
	if err != nil {
		return writeServiceError(c, err)
	}

	prometheus.RecordAvailabilityToggle(state.IsAvailable)
	log.Info("Availability updated",
		zap.Uint("item_id", state.ItemID),
		zap.Bool("is_available", state.IsAvailable),
		zap.String("updated_by", state.UpdatedBy))
	return c.JSON(http.StatusOK, state)
}
