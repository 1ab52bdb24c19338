package common

// Document is a single logical input handed to the extractor. The graph
// pipeline always wraps one answer text into exactly one Document.
type Document struct {
	PageContent string            `json:"page_content"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Node represents an entity extracted from text. ID identifies the node
// within one extraction batch and Type is a free-form label such as
// "Person" or "Company".
//
// Nodes are not unique across batches. Two runs only converge on the same
// stored node when the (Type, ID) pair matches.
type Node struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	Properties map[string]string `json:"properties,omitempty"`
}

// Name returns the display name of the node: the "name" property when the
// extractor provided one, otherwise the ID.
func (n Node) Name() string {
	if name, ok := n.Properties["name"]; ok {
		return name
	}
	return n.ID
}

// Relationship is a directed, typed edge between two extracted nodes.
type Relationship struct {
	Source Node   `json:"source"`
	Target Node   `json:"target"`
	Type   string `json:"type"`
}

// GraphDocument is the extraction result for one Document.
type GraphDocument struct {
	Nodes         []Node         `json:"nodes"`
	Relationships []Relationship `json:"relationships"`
	Source        Document       `json:"source"`
}

// StoredNode is a node as read back from the graph store.
type StoredNode struct {
	ElementID  string         `json:"element_id"`
	Labels     []string       `json:"labels"`
	Properties map[string]any `json:"properties"`
}

// Name returns the "name" property as a string, or "" if it is missing.
func (n StoredNode) Name() string {
	if v, ok := n.Properties["name"]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// StoredRelationship is a relationship as read back from the graph store.
type StoredRelationship struct {
	ElementID      string `json:"element_id"`
	Type           string `json:"type"`
	StartElementID string `json:"start_element_id"`
	EndElementID   string `json:"end_element_id"`
}

// Triple is one (node)-[relationship]->(node) row of a subgraph query.
type Triple struct {
	Source       StoredNode         `json:"source"`
	Relationship StoredRelationship `json:"relationship"`
	Target       StoredNode         `json:"target"`
}
