package domain

// IndexNode is one embedded chunk of a document.
type IndexNode struct {
	ParentID *string `json:"parent_id"`
	// ID is derived from Data, so identical chunks share an ID.
	ID   string `json:"id"`
	Data string `json:"data"`
	// RankID is "{reference}::{ordinal}" and records the chunk's place in the document.
	RankID     string    `json:"rank_id"`
	Hash       string    `json:"hash"`
	Embeddings []float32 `json:"embeddings"`
	Reference  *string   `json:"reference"`
}

// RetrievalGraph holds every IndexNode of a single document keyed by node ID.
// Graphs are read-only once built.
type RetrievalGraph struct {
	ID            string               `json:"id"`
	Title         string               `json:"title"`
	NodeMap       map[string]IndexNode `json:"node_map"`
	IndexModel    string               `json:"index_model"`
	Embeddings    []float32            `json:"embeddings"`
	Reference     *string              `json:"reference"`
	ReferenceLink *string              `json:"reference_link"`
	Hash          *string              `json:"hash"`
}

// NodeCount returns the number of distinct nodes.
func (g *RetrievalGraph) NodeCount() int {
	return len(g.NodeMap)
}

// Nodes returns the graph's nodes in no particular order.
func (g *RetrievalGraph) Nodes() []IndexNode {
	nodes := make([]IndexNode, 0, len(g.NodeMap))
	for _, n := range g.NodeMap {
		nodes = append(nodes, n)
	}
	return nodes
}

// IndexingMeta identifies the document a graph is built for.
type IndexingMeta struct {
	// ID becomes the graph reference and the prefix of every rank ID.
	ID           string
	Title        string
	ExternalLink string
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the pointed-to string, or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
