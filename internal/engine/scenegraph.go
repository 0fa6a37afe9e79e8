package engine

import (
	"github.com/inamate/geokernel/internal/document"
	"github.com/inamate/geokernel/internal/geom"
)

// SceneGraph is the evaluated state of one scene: world transforms and world
// bounds for every visible node. It implements GeometryProvider and
// DocumentContext, and is read-only once built.
type SceneGraph struct {
	Root      *SceneNode
	NodesById map[string]*SceneNode
}

// SceneNode is a resolved node.
type SceneNode struct {
	ID   string
	Type document.ObjectType

	// Transform state
	WorldTransform geom.Transform // parent * local
	LocalTransform geom.Transform

	// Hierarchy
	Parent   *SceneNode
	Children []*SceneNode

	// Bounds is the axis-aligned box in world space. Frames and shapes use
	// their own box; groups and symbols use the union of their children.
	Bounds    geom.Rect
	HasBounds bool
}

// NewSceneGraph creates an empty scene graph.
func NewSceneGraph() *SceneGraph {
	return &SceneGraph{
		NodesById: make(map[string]*SceneNode),
	}
}

// NodeIDsFromPoint returns the nodes whose bounds contain p, front to back:
// children before their parent, later siblings before earlier ones. The scene
// root is not a node and never appears.
func (sg *SceneGraph) NodeIDsFromPoint(p geom.Vec2) []string {
	if sg == nil || sg.Root == nil {
		return nil
	}
	var hits []string
	for i := len(sg.Root.Children) - 1; i >= 0; i-- {
		hits = collectHits(sg.Root.Children[i], p, hits)
	}
	return hits
}

func collectHits(node *SceneNode, p geom.Vec2, hits []string) []string {
	// Test children first (front to back = reverse order)
	for i := len(node.Children) - 1; i >= 0; i-- {
		hits = collectHits(node.Children[i], p, hits)
	}
	if node.HasBounds && node.Bounds.Contains(p) {
		hits = append(hits, node.ID)
	}
	return hits
}

// NodeAbsoluteBoundingRect returns the world bounds of id.
func (sg *SceneGraph) NodeAbsoluteBoundingRect(id string) (geom.Rect, bool) {
	node, ok := sg.NodesById[id]
	if !ok || !node.HasBounds {
		return geom.Rect{}, false
	}
	return node.Bounds, true
}

// ParentID returns the parent of id. Children of the scene root report false.
func (sg *SceneGraph) ParentID(id string) (string, bool) {
	node, ok := sg.NodesById[id]
	if !ok || node.Parent == nil || node.Parent == sg.Root {
		return "", false
	}
	return node.Parent.ID, true
}

// IsContainer reports whether id is a frame, group or symbol. It matches
// ContainerFunc.
func (sg *SceneGraph) IsContainer(id string) bool {
	node, ok := sg.NodesById[id]
	if !ok || node == sg.Root {
		return false
	}
	return node.Type.IsContainer()
}

// TopHit returns the frontmost node at p, or empty string.
func (sg *SceneGraph) TopHit(p geom.Vec2) string {
	hits := sg.NodeIDsFromPoint(p)
	if len(hits) == 0 {
		return ""
	}
	return hits[0]
}

// Pack flattens the subtrees rooted at ids into a packed document with world
// geometry. Unknown ids are ignored; a node without bounds is packed as a
// zero-size box at its world origin.
func (sg *SceneGraph) Pack(ids []string) document.PackedDocument {
	packed := document.PackedDocument{
		Nodes: make(map[string]document.PackedNode),
	}
	for _, id := range ids {
		node, ok := sg.NodesById[id]
		if !ok {
			continue
		}
		if _, dup := packed.Nodes[id]; dup {
			continue
		}
		packed.Scene.Children = append(packed.Scene.Children, id)
		packNode(node, packed.Nodes)
	}
	return packed
}

func packNode(node *SceneNode, out map[string]document.PackedNode) {
	box := node.Bounds
	if !node.HasBounds {
		origin := node.WorldTransform.Translation()
		box = geom.Rect{X: origin.X, Y: origin.Y}
	}

	pn := document.PackedNode{
		Left:   box.X,
		Top:    box.Y,
		Width:  box.Width,
		Height: box.Height,
	}
	for _, child := range node.Children {
		pn.Children = append(pn.Children, child.ID)
		packNode(child, out)
	}
	out[node.ID] = pn
}
