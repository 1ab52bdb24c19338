package graph

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/OFFIS-RIT/resumegraph/pkg/common"
	"github.com/OFFIS-RIT/resumegraph/pkg/logger"
)

// WriteFailureKind names the item type of a failed write.
type WriteFailureKind string

const (
	WriteFailureNode         WriteFailureKind = "node"
	WriteFailureRelationship WriteFailureKind = "relationship"
)

// WriteFailure records one node or relationship that could not be written.
type WriteFailure struct {
	Kind WriteFailureKind
	Key  string
	Err  error
}

func (f WriteFailure) Error() string {
	return fmt.Sprintf("write %s %s: %v", f.Kind, f.Key, f.Err)
}

func (f WriteFailure) Unwrap() error {
	return f.Err
}

// WriteReport summarises one WriteGraph call. A relationship is unmatched
// when one of its endpoints was not found in the store; nothing is written
// for it and it is not a failure.
type WriteReport struct {
	NodesMerged            int            `json:"nodes_merged"`
	RelationshipsMerged    int            `json:"relationships_merged"`
	RelationshipsUnmatched int            `json:"relationships_unmatched"`
	Failures               []WriteFailure `json:"-"`
}

// OK reports whether every item was written.
func (r WriteReport) OK() bool {
	return len(r.Failures) == 0
}

// Err joins all failures into one error, or returns nil.
func (r WriteReport) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// WriteGraph merges every node and then every relationship of each
// document into the store, one statement per item. A failing item is
// logged, recorded in the report and skipped. Re-running with the same
// documents creates nothing new.
func (g *GraphClient) WriteGraph(ctx context.Context, docs []common.GraphDocument) WriteReport {
	start := time.Now()
	defer func() { g.metrics.observeStage(stageWrite, time.Since(start)) }()

	var report WriteReport
	for _, doc := range docs {
		for _, node := range doc.Nodes {
			if err := g.storeClient.MergeNode(ctx, node); err != nil {
				key := nodeLogKey(node)
				logger.Error("Failed to merge node", "node", key, "err", err)
				report.Failures = append(report.Failures, WriteFailure{Kind: WriteFailureNode, Key: key, Err: err})
				g.metrics.recordWriteFailure(WriteFailureNode)
				continue
			}
			report.NodesMerged++
			g.metrics.recordNodeMerged()
		}

		for _, rel := range doc.Relationships {
			merged, err := g.storeClient.MergeRelationship(ctx, rel)
			if err != nil {
				key := relationshipLogKey(rel)
				logger.Error("Failed to merge relationship", "relationship", key, "err", err)
				report.Failures = append(report.Failures, WriteFailure{Kind: WriteFailureRelationship, Key: key, Err: err})
				g.metrics.recordWriteFailure(WriteFailureRelationship)
				continue
			}
			if !merged {
				logger.Warn("Relationship endpoints not found", "relationship", relationshipLogKey(rel))
				report.RelationshipsUnmatched++
				g.metrics.recordRelationshipUnmatched()
				continue
			}
			report.RelationshipsMerged++
			g.metrics.recordRelationshipMerged()
		}
	}

	logger.Info(
		"Graph written",
		"nodes", report.NodesMerged,
		"relationships", report.RelationshipsMerged,
		"unmatched", report.RelationshipsUnmatched,
		"failures", len(report.Failures),
	)

	return report
}

func nodeLogKey(n common.Node) string {
	return fmt.Sprintf("(%s {id: %q})", n.Type, n.ID)
}

func relationshipLogKey(r common.Relationship) string {
	return fmt.Sprintf("%s-[%s]->%s", nodeLogKey(r.Source), r.Type, nodeLogKey(r.Target))
}
