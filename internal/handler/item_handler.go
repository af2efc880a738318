package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"shoppinglist-service/internal/service"
	"shoppinglist-service/pkg/logger"
	"shoppinglist-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CreateItemRequest defines the structure for master item creation requests
type CreateItemRequest struct {
	Name       string `json:"name"`
	CategoryID uint   `json:"categoryId"`
	UpdatedBy  string `json:"updatedBy,omitempty"`
}

// ItemHandler serves the master item endpoints.
type ItemHandler struct {
	catalog      *service.CatalogService
	availability *service.AvailabilityService
}

func NewItemHandler(catalog *service.CatalogService, availability *service.AvailabilityService) *ItemHandler {
	return &ItemHandler{catalog: catalog, availability: availability}
}

// ListItems suggests existing items by case-insensitive name prefix, for
// typeahead and duplicate avoidance.
func (h *ItemHandler) ListItems(c echo.Context) error {
	log := logger.FromContext(c)

	prefix := c.QueryParam("prefix")
	if strings.TrimSpace(prefix) == "" {
		log.Warn("Missing prefix parameter")
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "prefix is required",
		})
	}

	limit := 0
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil {
			log.Warn("Invalid limit parameter", zap.String("value", limitParam), zap.Error(err))
		} else {
			limit = parsed
		}
	}

	items, err := h.availability.ListItems(c.Request().Context(), prefix, limit)
	if err != nil {
		return writeServiceError(c, err)
	}

	log.Info("Items searched",
		zap.String("prefix", prefix),
		zap.Int("count", len(items)))
	return c.JSON(http.StatusOK, echo.Map{
		"exists": len(items) > 0,
		"items":  items,
	})
}

// CreateItem adds a new master item and seeds its availability record.
func (h *ItemHandler) CreateItem(c echo.Context) error {
	log := logger.FromContext(c)

	var req CreateItemRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	log.Info("Item creation request",
		zap.String("name", req.Name),
		zap.Uint("category_id", req.CategoryID))

	created, err := h.catalog.CreateItem(c.Request().Context(), req.Name, req.CategoryID, req.UpdatedBy)
	if err != nil {
		return writeServiceError(c, err)
	}

	prometheus.RecordItemOperation("create")
	log.Info("Item created successfully",
		zap.Uint("item_id", created.ID),
		zap.String("name", created.Name),
		zap.String("category", created.Category))

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/items/%d", created.ID))
	return c.JSON(http.StatusCreated, created)
}
