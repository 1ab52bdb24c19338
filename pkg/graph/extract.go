package graph

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/OFFIS-RIT/resumegraph/pkg/ai"
	"github.com/OFFIS-RIT/resumegraph/pkg/common"
	"github.com/OFFIS-RIT/resumegraph/pkg/logger"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type extractProperty struct {
	Key   string `json:"key" jsonschema_description:"Property name in lower camel case, e.g. name or startDate"`
	Value string `json:"value" jsonschema_description:"Property value exactly as stated in the text"`
}

type extractNode struct {
	ID         string            `json:"id" jsonschema_description:"Human readable identifier of the entity taken from the text"`
	Type       string            `json:"type" jsonschema_description:"Basic, elementary type of the entity such as Person or Company"`
	Properties []extractProperty `json:"properties" jsonschema_description:"Additional facts about the entity stated in the text"`
}

type extractRelationship struct {
	SourceNodeID   string `json:"source_node_id" jsonschema_description:"Id of the source node"`
	SourceNodeType string `json:"source_node_type" jsonschema_description:"Type of the source node"`
	TargetNodeID   string `json:"target_node_id" jsonschema_description:"Id of the target node"`
	TargetNodeType string `json:"target_node_type" jsonschema_description:"Type of the target node"`
	Type           string `json:"type" jsonschema_description:"Relationship type in upper snake case such as WORKS_AT"`
}

type extractResponse struct {
	Nodes         []extractNode         `json:"nodes" jsonschema_description:"Entities identified in the text"`
	Relationships []extractRelationship `json:"relationships" jsonschema_description:"Relationships between the identified entities"`
}

// ExtractGraph wraps text into a single document and asks the extraction
// model for its entities and relationships. It always returns exactly one
// GraphDocument on success.
//
// Any model failure is returned wrapped in ErrExtraction.
func (g *GraphClient) ExtractGraph(ctx context.Context, text string) ([]common.GraphDocument, error) {
	start := time.Now()
	defer func() { g.metrics.observeStage(stageExtract, time.Since(start)) }()

	doc := common.Document{PageContent: text}

	systemPrompt := fmt.Sprintf(
		ai.ExtractGraphPrompt,
		strings.Join(g.allowedNodes, ", "),
		strings.Join(g.allowedRelationships, ", "),
	)

	opts := []ai.GenerateOption{
		ai.WithSystemPrompts(systemPrompt),
		ai.WithTemperature(g.temperature),
	}
	if g.thinking != "" {
		opts = append(opts, ai.WithThinking(g.thinking))
	}

	var res extractResponse
	err := g.aiClient.GenerateCompletionWithFormat(
		ctx,
		"extract_graph",
		"Extract nodes and relationships from an answer about a resume.",
		doc.PageContent,
		&res,
		opts...,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtraction, err)
	}

	gd := normalizeExtraction(res, doc, g.allowedNodes, g.allowedRelationships)
	usage := g.aiClient.GetMetrics()
	logger.Debug(
		"Extracted graph",
		"nodes", len(gd.Nodes),
		"relationships", len(gd.Relationships),
		"model_tokens_total", usage.TotalTokens,
	)

	return []common.GraphDocument{gd}, nil
}

type nodeKey struct {
	typ string
	id  string
}

// normalizeExtraction cleans up the raw model output: ids are title cased,
// types capitalised, relationship types upper snake cased, relationship
// endpoints added as nodes and disallowed types dropped.
func normalizeExtraction(
	res extractResponse,
	doc common.Document,
	allowedNodes []string,
	allowedRelationships []string,
) common.GraphDocument {
	nodeAllowed := allowSet(allowedNodes)
	relAllowed := allowSet(allowedRelationships)

	gd := common.GraphDocument{
		Nodes:         []common.Node{},
		Relationships: []common.Relationship{},
		Source:        doc,
	}
	seen := make(map[nodeKey]struct{})
	addNode := func(n common.Node) {
		k := nodeKey{typ: n.Type, id: n.ID}
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		gd.Nodes = append(gd.Nodes, n)
	}

	for _, raw := range res.Nodes {
		n := common.Node{
			ID:   formatNodeID(raw.ID),
			Type: formatNodeType(raw.Type),
		}
		if n.ID == "" || n.Type == "" || !nodeAllowed(n.Type) {
			continue
		}
		for _, p := range raw.Properties {
			key := strings.TrimSpace(p.Key)
			if key == "" {
				continue
			}
			if n.Properties == nil {
				n.Properties = make(map[string]string)
			}
			n.Properties[key] = p.Value
		}
		addNode(n)
	}

	type relKey struct {
		source nodeKey
		target nodeKey
		typ    string
	}
	seenRel := make(map[relKey]struct{})
	for _, raw := range res.Relationships {
		source := common.Node{ID: formatNodeID(raw.SourceNodeID), Type: formatNodeType(raw.SourceNodeType)}
		target := common.Node{ID: formatNodeID(raw.TargetNodeID), Type: formatNodeType(raw.TargetNodeType)}
		typ := formatRelationshipType(raw.Type)

		if source.ID == "" || source.Type == "" || target.ID == "" || target.Type == "" || typ == "" {
			continue
		}
		if !relAllowed(typ) || !nodeAllowed(source.Type) || !nodeAllowed(target.Type) {
			continue
		}

		k := relKey{
			source: nodeKey{typ: source.Type, id: source.ID},
			target: nodeKey{typ: target.Type, id: target.ID},
			typ:    typ,
		}
		if _, ok := seenRel[k]; ok {
			continue
		}
		seenRel[k] = struct{}{}

		addNode(source)
		addNode(target)
		gd.Relationships = append(gd.Relationships, common.Relationship{
			Source: source,
			Target: target,
			Type:   typ,
		})
	}

	return gd
}

// allowSet returns a case-insensitive membership test. An empty list
// allows everything.
func allowSet(allowed []string) func(string) bool {
	if len(allowed) == 0 {
		return func(string) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[strings.ToLower(strings.TrimSpace(a))] = struct{}{}
	}
	return func(s string) bool {
		_, ok := set[strings.ToLower(s)]
		return ok
	}
}

func formatNodeID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}
	// NoLower keeps acronyms such as MIT intact.
	return cases.Title(language.Und, cases.NoLower).String(id)
}

func formatNodeType(typ string) string {
	typ = strings.TrimSpace(typ)
	if typ == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(typ)
	return string(unicode.ToUpper(r)) + typ[size:]
}

func formatRelationshipType(typ string) string {
	typ = strings.TrimSpace(typ)
	return strings.ToUpper(strings.ReplaceAll(typ, " ", "_"))
}
