package engine

import (
	"fmt"

	"github.com/inamate/geokernel/internal/document"
	"github.com/inamate/geokernel/internal/geom"
)

// ErrEmptySubtree is returned when a packed document reaches no nodes.
var ErrEmptySubtree = fmt.Errorf("%w: packed subtree has no nodes", geom.ErrInvalidArgument)

// PackedSubtreeBoundingRect returns the absolute bounds of every node reachable
// from the document's scene children. Each node is visited once; ids without a
// node record are skipped. A reachable node with a negative size fails with
// geom.ErrInvalidArgument.
func PackedSubtreeBoundingRect(doc document.PackedDocument) (geom.Rect, error) {
	var (
		minX, minY, maxX, maxY float64
		count                  int
	)
	visited := make(map[string]struct{}, len(doc.Nodes))

	stack := make([]string, 0, len(doc.Scene.Children))
	for i := len(doc.Scene.Children) - 1; i >= 0; i-- {
		stack = append(stack, doc.Scene.Children[i])
	}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, ok := visited[id]; ok {
			continue
		}
		visited[id] = struct{}{}

		node, ok := doc.Nodes[id]
		if !ok {
			continue
		}

		if err := (geom.Rect{X: node.Left, Y: node.Top, Width: node.Width, Height: node.Height}).Validate(); err != nil {
			return geom.Rect{}, fmt.Errorf("packed node %q: %w", id, err)
		}

		right, bottom := node.Left+node.Width, node.Top+node.Height
		if count == 0 {
			minX, minY, maxX, maxY = node.Left, node.Top, right, bottom
		} else {
			minX = min(minX, node.Left)
			minY = min(minY, node.Top)
			maxX = max(maxX, right)
			maxY = max(maxY, bottom)
		}
		count++

		for i := len(node.Children) - 1; i >= 0; i-- {
			stack = append(stack, node.Children[i])
		}
	}

	if count == 0 {
		return geom.Rect{}, ErrEmptySubtree
	}
	return geom.RectFromBounds(minX, minY, maxX, maxY), nil
}
