package routes

import (
	"github.com/OFFIS-RIT/resumegraph/pkg/graph"

	"github.com/labstack/echo/v4"
)

// VisualizeGraphHandler renders the stored neighbourhood of a text without
// extracting anything from it.
func VisualizeGraphHandler(c echo.Context) error {
	data, app, err := bindAnswer(c)
	if data == nil {
		return err
	}

	candidates := graph.MatchCandidates(data.Text)
	resp := graphResponse{
		Message:    "Graph rendered",
		Candidates: candidates.Names(),
	}

	ctx := c.Request().Context()
	triples, err := app.Graph.FetchSubgraph(ctx, candidates)
	if err != nil {
		resp.NoGraph = noGraphReason(err)
		return respondWithGraph(c, app, nil, false, resp)
	}

	vg, ok := graph.Render(triples, app.Graph.RenderOptions())
	if !ok {
		resp.NoGraph = noGraphReason(graph.ErrEmptySubgraph)
	}
	return respondWithGraph(c, app, vg, data.Publish, resp)
}
