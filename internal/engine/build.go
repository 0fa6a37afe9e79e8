package engine

import (
	"encoding/json"

	"github.com/inamate/geokernel/internal/document"
	"github.com/inamate/geokernel/internal/geom"
)

// BuildSceneGraph resolves world transforms and world bounds for one scene of
// the document. Hidden objects and their subtrees are left out.
func BuildSceneGraph(doc *document.InDocument, sceneID string) *SceneGraph {
	sg := NewSceneGraph()

	scene, ok := doc.Scenes[sceneID]
	if !ok {
		return sg
	}

	rootObj, ok := doc.Objects[scene.Root]
	if !ok {
		return sg
	}

	sg.Root = buildNode(doc, &rootObj, nil, geom.Identity(), sg, map[string]bool{})
	return sg
}

// buildNode recursively builds a SceneNode from a document ObjectNode.
func buildNode(
	doc *document.InDocument,
	obj *document.ObjectNode,
	parent *SceneNode,
	parentWorldTransform geom.Transform,
	sg *SceneGraph,
	onPath map[string]bool,
) *SceneNode {
	if !obj.Visible || onPath[obj.ID] {
		return nil
	}
	onPath[obj.ID] = true
	defer delete(onPath, obj.ID)

	t := obj.Transform
	localMatrix := geom.FromAnchored(t.X, t.Y, t.SX, t.SY, t.R, t.AX, t.AY)
	worldMatrix := parentWorldTransform.Multiply(localMatrix)

	node := &SceneNode{
		ID:             obj.ID,
		Type:           obj.Type,
		LocalTransform: localMatrix,
		WorldTransform: worldMatrix,
		Parent:         parent,
	}

	if box, ok := localBox(obj); ok {
		node.Bounds = worldMatrix.TransformRect(box)
		node.HasBounds = true
	}

	// Register node in the lookup map
	sg.NodesById[obj.ID] = node

	for _, childID := range obj.Children {
		childObj, ok := doc.Objects[childID]
		if !ok {
			continue
		}

		childNode := buildNode(doc, &childObj, node, worldMatrix, sg, onPath)
		if childNode == nil {
			continue
		}
		node.Children = append(node.Children, childNode)

		// Groups and symbols grow to include their children; frames keep
		// their own box.
		if obj.Type == document.ObjectTypeFrame || !childNode.HasBounds {
			continue
		}
		if node.HasBounds {
			node.Bounds = node.Bounds.Union(childNode.Bounds)
		} else {
			node.Bounds = childNode.Bounds
			node.HasBounds = true
		}
	}

	return node
}

// localBox returns the object's own box in local coordinates.
func localBox(obj *document.ObjectNode) (geom.Rect, bool) {
	switch obj.Type {
	case document.ObjectTypeFrame, document.ObjectTypeShapeRect, document.ObjectTypeRasterImage:
		var size document.Size
		if err := json.Unmarshal(obj.Data, &size); err != nil {
			return geom.Rect{}, false
		}
		return geom.Rect{Width: max(size.Width, 0), Height: max(size.Height, 0)}, true

	case document.ObjectTypeShapeEllipse:
		var radii document.Radii
		if err := json.Unmarshal(obj.Data, &radii); err != nil {
			return geom.Rect{}, false
		}
		rx, ry := max(radii.RX, 0), max(radii.RY, 0)
		return geom.Rect{X: -rx, Y: -ry, Width: 2 * rx, Height: 2 * ry}, true

	case document.ObjectTypeVectorPath:
		return vectorPathBox(obj.Data)

	default:
		return geom.Rect{}, false
	}
}

// vectorPathBox bounds every point of a path, control points included.
// Format matches Canvas2D: ["M", x, y], ["L", x, y], ["C", x1, y1, x2, y2, x, y], ...
func vectorPathBox(data json.RawMessage) (geom.Rect, bool) {
	var pathData struct {
		Commands [][]interface{} `json:"commands"`
	}
	if err := json.Unmarshal(data, &pathData); err != nil {
		return geom.Rect{}, false
	}

	var minX, minY, maxX, maxY float64
	first := true
	for _, cmd := range pathData.Commands {
		if len(cmd) < 3 {
			continue
		}
		if _, ok := cmd[0].(string); !ok {
			continue
		}
		coords := cmd[1:]
		for i := 0; i+1 < len(coords); i += 2 {
			x, okX := coords[i].(float64)
			y, okY := coords[i+1].(float64)
			if !okX || !okY {
				continue
			}
			if first {
				minX, maxX, minY, maxY = x, x, y, y
				first = false
				continue
			}
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}

	if first {
		return geom.Rect{}, false
	}
	return geom.RectFromBounds(minX, minY, maxX, maxY), true
}
