package routes

import (
	"github.com/OFFIS-RIT/resumegraph/pkg/common"
	"github.com/OFFIS-RIT/resumegraph/pkg/graph"
)

const formatHTML = "html"

type answerBody struct {
	Text    string `json:"text" validate:"required"`
	Publish bool   `json:"publish"`
}

type graphResponse struct {
	Message    string                 `json:"message"`
	Documents  []common.GraphDocument `json:"documents,omitempty"`
	Write      *graph.WriteReport     `json:"write,omitempty"`
	Failures   []string               `json:"failures,omitempty"`
	Candidates []string               `json:"candidates,omitempty"`
	Graph      *graph.VisualGraph     `json:"graph,omitempty"`
	NoGraph    string                 `json:"no_graph,omitempty"`
	Link       string                 `json:"link,omitempty"`
}

func failureMessages(report graph.WriteReport) []string {
	if len(report.Failures) == 0 {
		return nil
	}
	out := make([]string, len(report.Failures))
	for i, f := range report.Failures {
		out[i] = f.Error()
	}
	return out
}
