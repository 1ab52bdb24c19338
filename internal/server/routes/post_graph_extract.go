package routes

import (
	"net/http"

	"github.com/OFFIS-RIT/resumegraph/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ExtractGraphHandler extracts a graph from an answer text and writes it,
// without looking anything up.
func ExtractGraphHandler(c echo.Context) error {
	data, app, err := bindAnswer(c)
	if data == nil {
		return err
	}

	ctx := c.Request().Context()
	docs, err := app.Graph.ExtractGraph(ctx, data.Text)
	if err != nil {
		logger.Error("Failed to extract graph", "err", err)
		return c.JSON(http.StatusBadGateway, graphResponse{
			Message: "Failed to extract graph",
		})
	}
	report := app.Graph.WriteGraph(ctx, docs)

	return c.JSON(http.StatusOK, graphResponse{
		Message:   "Graph extracted",
		Documents: docs,
		Write:     &report,
		Failures:  failureMessages(report),
	})
}
