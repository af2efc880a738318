package handler

import (
	"errors"
	"net/http"

	"shoppinglist-service/internal/service"
	"shoppinglist-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// Storage failures keep their cause message so the caller can display it.
func writeServiceError(c echo.Context, err error) error {
	log := logger.FromContext(c)

	var validationErr *service.ValidationError
	var conflictErr *service.ConflictError
	var notFoundErr *service.NotFoundError
	var storageErr *service.StorageError

	switch {
	case errors.As(err, &validationErr):
		log.Warn("Validation failed", zap.Error(validationErr))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":  validationErr.Error(),
			"fields": validationErr.Fields,
		})
	case errors.As(err, &conflictErr):
		log.Warn("Conflict", zap.Error(conflictErr))
		return c.JSON(http.StatusConflict, echo.Map{
			"error": conflictErr.Message,
		})
	case errors.As(err, &notFoundErr):
		log.Warn("Not found", zap.Error(notFoundErr))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": notFoundErr.Message,
		})
	case errors.As(err, &storageErr):
		log.Error("Storage failure", zap.Error(storageErr))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": storageErr.Error(),
		})
	default:
		log.Error("Unexpected failure", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "internal error",
		})
	}
}
