package graph

import (
	"context"
	"errors"
	"time"

	"github.com/OFFIS-RIT/resumegraph/pkg/common"
	"github.com/OFFIS-RIT/resumegraph/pkg/logger"
)

// PipelineResult is the outcome of ProcessAnswer. Graph is nil exactly
// when NoGraph is set: either the lookup failed (NoGraph wraps ErrQuery)
// or it matched nothing (NoGraph is ErrEmptySubgraph).
type PipelineResult struct {
	Documents  []common.GraphDocument
	Write      WriteReport
	Candidates CandidateSet
	Triples    []common.Triple
	Graph      *VisualGraph
	NoGraph    error
}

// HasGraph reports whether there is something to display.
func (r *PipelineResult) HasGraph() bool {
	return r.Graph != nil
}

// ProcessAnswer extracts a graph from an answer text, merges it into the
// store, looks up the stored neighbourhood of the answer's words and
// renders it. The stages run sequentially on the calling goroutine.
//
// Only extraction failures are returned as an error; nothing is written in
// that case. Write failures are reported in PipelineResult.Write and a
// failed or empty lookup in PipelineResult.NoGraph.
func (g *GraphClient) ProcessAnswer(ctx context.Context, text string) (*PipelineResult, error) {
	docs, err := g.ExtractGraph(ctx, text)
	if err != nil {
		logger.Error("Failed to extract graph from answer", "err", err)
		return nil, err
	}

	res := &PipelineResult{Documents: docs}
	res.Write = g.WriteGraph(ctx, docs)
	res.Candidates = MatchCandidates(text)

	triples, err := g.FetchSubgraph(ctx, res.Candidates)
	if err != nil {
		res.NoGraph = err
		return res, nil
	}
	res.Triples = triples

	start := time.Now()
	vg, ok := Render(triples, g.render)
	g.metrics.observeStage(stageRender, time.Since(start))
	if !ok {
		g.metrics.recordEmptySubgraph()
		res.NoGraph = ErrEmptySubgraph
		return res, nil
	}
	res.Graph = vg

	return res, nil
}

// IsNoGraph reports whether err means there is no graph to show, either
// because the lookup failed or because it matched nothing.
func IsNoGraph(err error) bool {
	return errors.Is(err, ErrQuery) || errors.Is(err, ErrEmptySubgraph)
}
