package routes

import (
	"errors"
	"net/http"

	"github.com/OFFIS-RIT/resumegraph/internal/server/middleware"
	"github.com/OFFIS-RIT/resumegraph/internal/util"
	"github.com/OFFIS-RIT/resumegraph/pkg/graph"
	"github.com/OFFIS-RIT/resumegraph/pkg/logger"

	"github.com/labstack/echo/v4"
)

// noGraphReason maps a degraded lookup to a client facing reason without
// leaking store details.
func noGraphReason(err error) string {
	switch {
	case errors.Is(err, graph.ErrQuery):
		return graph.ErrQuery.Error()
	case errors.Is(err, graph.ErrEmptySubgraph):
		return graph.ErrEmptySubgraph.Error()
	default:
		return err.Error()
	}
}

// respondWithGraph writes vg either as an HTML page (?format=html) or as
// part of resp, uploading the page first when publish is set.
func respondWithGraph(
	c echo.Context,
	app *middleware.App,
	vg *graph.VisualGraph,
	publish bool,
	resp graphResponse,
) error {
	if vg == nil {
		if c.QueryParam("format") == formatHTML {
			return c.NoContent(http.StatusNoContent)
		}
		return c.JSON(http.StatusOK, resp)
	}

	if c.QueryParam("format") != formatHTML && !publish {
		resp.Graph = vg
		return c.JSON(http.StatusOK, resp)
	}

	page, err := vg.HTML()
	if err != nil {
		logger.Error("Failed to render graph page", "err", err)
		return c.JSON(http.StatusInternalServerError, graphResponse{
			Message: "Internal server error",
		})
	}

	if publish {
		link, err := app.Artifacts.PublishGraphPage(c.Request().Context(), page)
		if err != nil {
			logger.Error("Failed to publish graph page", "err", err)
			resp.Message = "Graph rendered but could not be published"
		} else {
			resp.Link = link
		}
	}

	if c.QueryParam("format") == formatHTML {
		return c.HTML(http.StatusOK, page)
	}
	resp.Graph = vg
	return c.JSON(http.StatusOK, resp)
}

func bindAnswer(c echo.Context) (*answerBody, *middleware.App, error) {
	data := new(answerBody)
	if err := c.Bind(data); err != nil {
		return nil, nil, c.JSON(http.StatusBadRequest, graphResponse{
			Message: "Invalid request body",
		})
	}
	data.Text = util.SanitizeText(data.Text)
	if err := c.Validate(data); err != nil {
		return nil, nil, c.JSON(http.StatusBadRequest, graphResponse{
			Message: "Invalid request body",
		})
	}

	app := c.(*middleware.AppContext).App
	if data.Publish && app.Artifacts == nil {
		return nil, nil, c.JSON(http.StatusBadRequest, graphResponse{
			Message: "Graph publishing is not configured",
		})
	}
	return data, app, nil
}
