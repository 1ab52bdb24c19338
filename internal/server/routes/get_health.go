package routes

import (
	"net/http"

	"github.com/OFFIS-RIT/resumegraph/internal/server/middleware"
	"github.com/OFFIS-RIT/resumegraph/pkg/logger"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports OK while the graph store answers.
func HealthHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App

	if err := app.Store.Ping(c.Request().Context()); err != nil {
		logger.Warn("Health check failed", "err", err)
		return c.String(http.StatusServiceUnavailable, "Graph store unavailable")
	}
	return c.String(http.StatusOK, "OK")
}
