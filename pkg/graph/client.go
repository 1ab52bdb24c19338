package graph

import (
	"errors"

	"github.com/OFFIS-RIT/resumegraph/pkg/ai"
	"github.com/OFFIS-RIT/resumegraph/pkg/store"
)

// GraphClient turns answer texts into persisted graphs and renders the
// stored neighbourhood of an answer.
//
// A GraphClient should be created using NewGraphClient.
type GraphClient struct {
	aiClient    ai.GraphAIClient
	storeClient store.GraphStorage

	allowedNodes         []string
	allowedRelationships []string

	temperature float64
	thinking    string

	subgraphLimit int
	render        RenderOptions
	metrics       *Metrics
}

// NewGraphClientParams defines the configuration parameters for creating
// a new GraphClient.
//
// AllowedNodes and AllowedRelationships restrict the types the extractor
// may emit; empty means unrestricted. Temperature is the sampling
// temperature of extraction requests and Thinking an optional reasoning
// effort for models that support it. SubgraphLimit defaults to
// DefaultSubgraphLimit and Render to DefaultRenderOptions. Metrics may be nil.
type NewGraphClientParams struct {
	AIClient ai.GraphAIClient
	Store    store.GraphStorage

	AllowedNodes         []string
	AllowedRelationships []string

	Temperature float64
	Thinking    string

	SubgraphLimit int
	Render        *RenderOptions
	Metrics       *Metrics
}

// NewGraphClient creates and returns a new GraphClient configured with
// the provided parameters.
//
// Example:
//
//	client, err := graph.NewGraphClient(graph.NewGraphClientParams{
//		AIClient: aiClient,
//		Store:    neo4jStore,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
func NewGraphClient(params NewGraphClientParams) (*GraphClient, error) {
	if params.AIClient == nil {
		return nil, errors.New("graph client requires an ai client")
	}
	if params.Store == nil {
		return nil, errors.New("graph client requires a graph store")
	}

	limit := params.SubgraphLimit
	if limit <= 0 {
		limit = DefaultSubgraphLimit
	}
	render := DefaultRenderOptions()
	if params.Render != nil {
		render = *params.Render
	}

	g := &GraphClient{
		aiClient:    params.AIClient,
		storeClient: params.Store,

		allowedNodes:         params.AllowedNodes,
		allowedRelationships: params.AllowedRelationships,

		temperature: params.Temperature,
		thinking:    params.Thinking,

		subgraphLimit: limit,
		render:        render,
		metrics:       params.Metrics,
	}

	return g, nil
}

// RenderOptions returns the canvas settings used by ProcessAnswer.
func (g *GraphClient) RenderOptions() RenderOptions {
	return g.render
}
