package graph

import (
	"time"

	"github.com/OFFIS-RIT/resumegraph/pkg/ai"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	stageExtract = "extract"
	stageWrite   = "write"
	stageFetch   = "fetch"
	stageRender  = "render"
)

// Metrics holds Prometheus metrics for the graph pipeline. A nil *Metrics
// records nothing.
type Metrics struct {
	nodesMerged            prometheus.Counter
	relationshipsMerged    prometheus.Counter
	relationshipsUnmatched prometheus.Counter
	writeFailures          *prometheus.CounterVec
	fetchFailures          prometheus.Counter
	emptySubgraphs         prometheus.Counter
	stageDuration          *prometheus.HistogramVec
}

// NewMetrics creates the pipeline metrics and registers them with reg.
// It returns nil when reg is nil.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		return nil, nil
	}

	m := &Metrics{
		nodesMerged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "resumegraph_nodes_merged_total",
			Help: "Total number of nodes merged into the graph store",
		}),
		relationshipsMerged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "resumegraph_relationships_merged_total",
			Help: "Total number of relationships merged into the graph store",
		}),
		relationshipsUnmatched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "resumegraph_relationships_unmatched_total",
			Help: "Total number of relationships skipped because an endpoint was missing",
		}),
		writeFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "resumegraph_write_failures_total",
				Help: "Total number of failed node or relationship writes",
			},
			[]string{"kind"},
		),
		fetchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "resumegraph_fetch_failures_total",
			Help: "Total number of failed subgraph lookups",
		}),
		emptySubgraphs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "resumegraph_empty_subgraphs_total",
			Help: "Total number of lookups that matched no triples",
		}),
		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "resumegraph_stage_duration_seconds",
				Help:    "Duration of graph pipeline stages",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"stage"},
		),
	}

	for _, c := range []prometheus.Collector{
		m.nodesMerged,
		m.relationshipsMerged,
		m.relationshipsUnmatched,
		m.writeFailures,
		m.fetchFailures,
		m.emptySubgraphs,
		m.stageDuration,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// RegisterModelMetrics exposes the usage accumulated by the extraction
// model client. Values are read from client on every scrape.
func RegisterModelMetrics(reg prometheus.Registerer, client ai.GraphAIClient) error {
	if reg == nil || client == nil {
		return nil
	}
	for _, c := range modelCollectors(client) {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func modelCollectors(client ai.GraphAIClient) []prometheus.Collector {
	return []prometheus.Collector{
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "resumegraph_extraction_input_tokens_total",
			Help: "Total number of prompt tokens sent to the extraction model",
		}, func() float64 {
			return float64(client.GetMetrics().InputTokens)
		}),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "resumegraph_extraction_output_tokens_total",
			Help: "Total number of tokens generated by the extraction model",
		}, func() float64 {
			return float64(client.GetMetrics().OutputTokens)
		}),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "resumegraph_extraction_model_seconds_total",
			Help: "Total time spent in extraction model calls",
		}, func() float64 {
			return float64(client.GetMetrics().DurationMs) / 1000
		}),
	}
}

func (m *Metrics) recordNodeMerged() {
	if m == nil {
		return
	}
	m.nodesMerged.Inc()
}

func (m *Metrics) recordRelationshipMerged() {
	if m == nil {
		return
	}
	m.relationshipsMerged.Inc()
}

func (m *Metrics) recordRelationshipUnmatched() {
	if m == nil {
		return
	}
	m.relationshipsUnmatched.Inc()
}

func (m *Metrics) recordWriteFailure(kind WriteFailureKind) {
	if m == nil {
		return
	}
	m.writeFailures.WithLabelValues(string(kind)).Inc()
}

func (m *Metrics) recordFetchFailure() {
	if m == nil {
		return
	}
	m.fetchFailures.Inc()
}

func (m *Metrics) recordEmptySubgraph() {
	if m == nil {
		return
	}
	m.emptySubgraphs.Inc()
}

func (m *Metrics) observeStage(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}
