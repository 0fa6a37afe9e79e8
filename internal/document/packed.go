package document

import (
	"encoding/json"
	"fmt"
)

// PackedDocument is a flattened snapshot of a node subtree. Every node
// carries absolute (world-space) geometry, so no transform hierarchy needs to
// be resolved to read it. It is the clipboard form of a selection.
type PackedDocument struct {
	Scene PackedScene           `json:"scene"`
	Nodes map[string]PackedNode `json:"nodes"`
}

// PackedScene lists the root-level node ids of the snapshot.
type PackedScene struct {
	Children []string `json:"children"`
}

// PackedNode is the minimal absolute geometry of one node.
type PackedNode struct {
	Left     float64  `json:"left"`
	Top      float64  `json:"top"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	Children []string `json:"children,omitempty"`
}

// ParsePacked decodes a packed document from JSON.
func ParsePacked(data []byte) (PackedDocument, error) {
	var doc PackedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return PackedDocument{}, fmt.Errorf("decode packed document: %w", err)
	}
	return doc, nil
}
