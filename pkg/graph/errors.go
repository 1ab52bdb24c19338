package graph

import "errors"

var (
	// ErrExtraction wraps any failure of the extraction model. It is the only
	// pipeline failure returned to the caller.
	ErrExtraction = errors.New("graph extraction failed")

	// ErrQuery wraps a failed subgraph lookup.
	ErrQuery = errors.New("subgraph query failed")

	// ErrEmptySubgraph reports that the lookup succeeded but matched nothing.
	ErrEmptySubgraph = errors.New("no matching subgraph")
)
