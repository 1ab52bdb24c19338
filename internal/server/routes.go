package server

import (
	"github.com/OFFIS-RIT/resumegraph/internal/server/routes"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(e *echo.Echo, gatherer prometheus.Gatherer) {
	// Health check route
	e.GET("/health", routes.HealthHandler)

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	apiRoutes := e.Group("/api")

	// Graph routes
	apiRoutes.POST("/graph", routes.ProcessAnswerHandler)
	apiRoutes.POST("/graph/extract", routes.ExtractGraphHandler)
	apiRoutes.POST("/graph/visualize", routes.VisualizeGraphHandler)
}
