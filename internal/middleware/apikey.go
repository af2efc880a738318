package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"shoppinglist-service/pkg/logger"
	"shoppinglist-service/prometheus"

	"github.com/labstack/echo/v4"
)

// APIKeyMiddleware validates the caller-supplied API key against the
// configured shared secret using a constant-time comparison. When no key is
// configured every request is rejected; the check never degrades to
// allow-all.
func APIKeyMiddleware(configuredKey string) echo.MiddlewareFunc {
	expected := []byte(strings.TrimSpace(configuredKey))
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			if len(expected) == 0 {
				log.Warn("API key validation impossible: no key configured, rejecting request")
				prometheus.AuthFailuresCounter.Inc()
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}

			provided := providedKey(c)
			if provided == "" {
				log.Warn("Missing API key")
				prometheus.AuthFailuresCounter.Inc()
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}

			// ConstantTimeCompare also rejects length mismatches
			if subtle.ConstantTimeCompare([]byte(provided), expected) != 1 {
				log.Warn("Invalid API key")
				prometheus.AuthFailuresCounter.Inc()
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}

			return next(c)
		}
	}
}

// providedKey reads the key from the X-API-Key header, falling back to the
// k query parameter for clients that cannot set headers.
func providedKey(c echo.Context) string {
	if key := strings.TrimSpace(c.Request().Header.Get("X-API-Key")); key != "" {
		return key
	}
	return strings.TrimSpace(c.QueryParam("k"))
}
