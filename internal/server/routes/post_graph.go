package routes

import (
	"net/http"

	"github.com/OFFIS-RIT/resumegraph/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ProcessAnswerHandler runs the full pipeline for one answer text: extract,
// write, look up and render. A missing graph is not an error; the response
// carries the reason instead.
func ProcessAnswerHandler(c echo.Context) error {
	data, app, err := bindAnswer(c)
	if data == nil {
		return err
	}

	ctx := c.Request().Context()
	res, err := app.Graph.ProcessAnswer(ctx, data.Text)
	if err != nil {
		logger.Error("Failed to process answer", "err", err)
		return c.JSON(http.StatusBadGateway, graphResponse{
			Message: "Failed to extract graph",
		})
	}

	resp := graphResponse{
		Message:    "Graph processed",
		Write:      &res.Write,
		Failures:   failureMessages(res.Write),
		Candidates: res.Candidates.Names(),
	}
	if !res.HasGraph() {
		resp.NoGraph = noGraphReason(res.NoGraph)
	}

	return respondWithGraph(c, app, res.Graph, data.Publish, resp)
}
