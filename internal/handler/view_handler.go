package handler

import (
	"net/http"

	"shoppinglist-service/internal/service"
	"shoppinglist-service/pkg/logger"
	"shoppinglist-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ViewHandler serves the composed master list and buy list.
type ViewHandler struct {
	composer *service.ViewComposer
}

func NewViewHandler(composer *service.ViewComposer) *ViewHandler {
	return &ViewHandler{composer: composer}
}

// GetViews returns categories, the full master list and the derived buy
// list in one payload, ready for rendering.
func (h *ViewHandler) GetViews(c echo.Context) error {
	log := logger.FromContext(c)

	views, err := h.composer.BuildViews(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}

	prometheus.UpdateBuyListSize(len(views.BuyList))
	log.Info("Views composed",
		zap.Int("master_items", len(views.MasterItems)),
		zap.Int("buy_list", len(views.BuyList)))
	return c.JSON(http.StatusOK, views)
}
