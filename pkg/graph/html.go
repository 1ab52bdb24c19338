package graph

import (
	"encoding/json"
	"fmt"

	"github.com/aymerick/raymond"
)

// VisNetworkScript is the vis-network build loaded by rendered pages.
const VisNetworkScript = "https://unpkg.com/vis-network@9.1.9/standalone/umd/vis-network.min.js"

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<script src="{{script}}"></script>
<style>
  html, body { margin: 0; background-color: {{bgColor}}; }
  #graph { height: {{height}}; width: {{width}}; background-color: {{bgColor}}; }
</style>
</head>
<body>
<div id="graph"></div>
<script>
  var nodes = new vis.DataSet({{nodes}});
  var edges = new vis.DataSet({{edges}});
  var options = {{options}};
  new vis.Network(document.getElementById("graph"), { nodes: nodes, edges: edges }, options);
</script>
</body>
</html>
`

var pageTmpl = raymond.MustParse(pageTemplate)

type networkOptions struct {
	Nodes struct {
		Font struct {
			Color string `json:"color"`
		} `json:"font"`
	} `json:"nodes"`
	Edges struct {
		Arrows string `json:"arrows"`
	} `json:"edges"`
	Physics struct {
		Stabilization bool `json:"stabilization"`
	} `json:"physics"`
}

// HTML renders the graph as a self-contained page that draws it with
// vis-network.
func (v *VisualGraph) HTML() (string, error) {
	// encoding/json escapes <, > and & so the payload cannot close the script tag
	nodes, err := json.Marshal(v.Nodes)
	if err != nil {
		return "", fmt.Errorf("failed to encode nodes: %w", err)
	}
	edges, err := json.Marshal(v.Edges)
	if err != nil {
		return "", fmt.Errorf("failed to encode edges: %w", err)
	}

	var opts networkOptions
	opts.Nodes.Font.Color = v.Options.FontColor
	opts.Edges.Arrows = "to"
	opts.Physics.Stabilization = true
	options, err := json.Marshal(opts)
	if err != nil {
		return "", fmt.Errorf("failed to encode options: %w", err)
	}

	page, err := pageTmpl.Exec(map[string]any{
		"script":  VisNetworkScript,
		"height":  v.Options.Height,
		"width":   v.Options.Width,
		"bgColor": v.Options.BgColor,
		"nodes":   raymond.SafeString(nodes),
		"edges":   raymond.SafeString(edges),
		"options": raymond.SafeString(options),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render graph page: %w", err)
	}
	return page, nil
}
