package engine

import "github.com/inamate/geokernel/internal/geom"

// GeometryProvider answers spatial lookups against a scene.
type GeometryProvider interface {
	// NodeIDsFromPoint returns every node under p, innermost/frontmost first.
	NodeIDsFromPoint(p geom.Vec2) []string
	// NodeAbsoluteBoundingRect returns the world-space bounds of id.
	NodeAbsoluteBoundingRect(id string) (geom.Rect, bool)
}

// DocumentContext answers hierarchy lookups. ParentID reports false for
// nodes that sit directly in the scene.
type DocumentContext interface {
	ParentID(id string) (string, bool)
}

// ContainerFunc reports whether a node can parent other nodes.
type ContainerFunc func(id string) bool

// ResolveInsertTargetParent picks the parent for content inserted next to the
// selection: the first selected node itself when it is a container, its parent
// otherwise. False means insert at scene level.
func ResolveInsertTargetParent(selection []string, ctx DocumentContext, isContainer ContainerFunc) (string, bool) {
	if len(selection) == 0 {
		return "", false
	}
	return resolveTarget(selection[0], ctx, isContainer)
}

func resolveTarget(id string, ctx DocumentContext, isContainer ContainerFunc) (string, bool) {
	if isContainer(id) {
		return id, true
	}
	return ctx.ParentID(id)
}

// ResolvePasteTargetParents applies the insert-target rule to every pasted id
// and returns the distinct landing parents in first-seen order. Scene-level
// results are dropped, as is any parent that is itself being pasted.
func ResolvePasteTargetParents(ids []string, ctx DocumentContext, isContainer ContainerFunc) []string {
	pasted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		pasted[id] = struct{}{}
	}

	seen := make(map[string]struct{})
	var parents []string
	for _, id := range ids {
		parent, ok := resolveTarget(id, ctx, isContainer)
		if !ok {
			continue
		}
		if _, self := pasted[parent]; self {
			continue
		}
		if _, dup := seen[parent]; dup {
			continue
		}
		seen[parent] = struct{}{}
		parents = append(parents, parent)
	}
	return parents
}

// HitTestNestedInsertionTarget finds the innermost container under the center
// of rect whose bounds fully contain rect. Non-containers and containers the
// provider has no bounds for are skipped; every other container counts toward
// maxDepth, and the search gives up once more than maxDepth have been tried.
// A maxDepth of zero or less means no limit. A rect with negative or
// non-finite extents never has a target.
func HitTestNestedInsertionTarget(rect geom.Rect, provider GeometryProvider, isContainer ContainerFunc, maxDepth int) (string, bool) {
	if rect.Validate() != nil {
		return "", false
	}
	examined := 0
	for _, id := range provider.NodeIDsFromPoint(rect.Center()) {
		if !isContainer(id) {
			continue
		}
		bounds, ok := provider.NodeAbsoluteBoundingRect(id)
		if !ok {
			continue
		}
		examined++
		if maxDepth > 0 && examined > maxDepth {
			return "", false
		}
		if bounds.ContainsRect(rect) {
			return id, true
		}
	}
	return "", false
}
