package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/OFFIS-RIT/resumegraph/pkg/common"
	"github.com/OFFIS-RIT/resumegraph/pkg/logger"
)

// DefaultSubgraphLimit caps the number of triples returned per lookup.
const DefaultSubgraphLimit = 100

// FetchSubgraph returns the stored triples where either endpoint's name is
// in candidates, up to the configured limit. An empty candidate set yields
// an empty result without touching the store.
//
// Store failures are logged and returned wrapped in ErrQuery.
func (g *GraphClient) FetchSubgraph(ctx context.Context, candidates CandidateSet) ([]common.Triple, error) {
	if candidates.Len() == 0 {
		return []common.Triple{}, nil
	}

	start := time.Now()
	defer func() { g.metrics.observeStage(stageFetch, time.Since(start)) }()

	triples, err := g.storeClient.FindSubgraph(ctx, candidates.Names(), g.subgraphLimit)
	if err != nil {
		logger.Error("Failed to fetch subgraph", "candidates", candidates.Len(), "err", err)
		g.metrics.recordFetchFailure()
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}

	logger.Debug("Fetched subgraph", "candidates", candidates.Len(), "triples", len(triples))
	return triples, nil
}
