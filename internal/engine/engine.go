package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/inamate/geokernel/internal/document"
	"github.com/inamate/geokernel/internal/geom"
)

var (
	ErrNoDocument   = errors.New("no document loaded")
	ErrUnknownScene = errors.New("unknown scene")
)

// Settings tune the engine's interactive queries.
type Settings struct {
	// GridStep snaps drop rects before targeting. Zero disables snapping.
	GridStep float64
	// MaxNestingDepth bounds nested drop targeting. Zero means unlimited.
	MaxNestingDepth int
}

// Engine owns a document, the selected scene and the current selection, and
// answers editor queries against a cached scene graph. It is not safe for
// concurrent use.
type Engine struct {
	doc     *document.InDocument
	sceneID string

	// Retained scene graph
	sceneGraph *SceneGraph

	selection []string
	settings  Settings

	// Dirty flag - scene graph needs rebuild
	dirty bool
}

// NewEngine creates a new engine instance. Invalid settings fall back to
// their zero values.
func NewEngine(settings Settings) *Engine {
	if math.IsNaN(settings.GridStep) || math.IsInf(settings.GridStep, 0) || settings.GridStep < 0 {
		Logger().Warn("ignoring invalid grid step", "gridStep", settings.GridStep)
		settings.GridStep = 0
	}
	if settings.MaxNestingDepth < 0 {
		settings.MaxNestingDepth = 0
	}
	return &Engine{
		settings:   settings,
		sceneGraph: NewSceneGraph(),
		dirty:      true,
	}
}

// --- Commands ---

// LoadDocument loads a document from JSON.
func (e *Engine) LoadDocument(jsonData string) error {
	var doc document.InDocument
	if err := json.Unmarshal([]byte(jsonData), &doc); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	e.SetDocument(&doc)
	return nil
}

// SetDocument replaces the document and selects its first scene.
func (e *Engine) SetDocument(doc *document.InDocument) {
	e.doc = doc
	e.sceneID = ""
	if len(doc.Project.Scenes) > 0 {
		e.sceneID = doc.Project.Scenes[0]
	}
	e.selection = nil
	e.dirty = true
}

// LoadSampleDocument loads the built-in sample document.
func (e *Engine) LoadSampleDocument(projectID string) {
	e.SetDocument(document.NewSampleDocument(projectID))
}

// SetScene switches the active scene. The scene must exist in the loaded
// document.
func (e *Engine) SetScene(sceneID string) error {
	if e.doc == nil {
		return ErrNoDocument
	}
	if _, ok := e.doc.Scenes[sceneID]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownScene, sceneID)
	}
	if e.sceneID != sceneID {
		e.sceneID = sceneID
		e.dirty = true
	}
	return nil
}

// SetSelection sets the selected object IDs.
func (e *Engine) SetSelection(ids []string) {
	e.selection = append([]string(nil), ids...)
}

// Selection returns a copy of the selected object IDs.
func (e *Engine) Selection() []string {
	return append([]string(nil), e.selection...)
}

// SceneGraph returns the current scene graph, rebuilding it if dirty.
func (e *Engine) SceneGraph() (*SceneGraph, error) {
	if e.doc == nil {
		return nil, ErrNoDocument
	}
	if e.dirty {
		e.sceneGraph = BuildSceneGraph(e.doc, e.sceneID)
		e.dirty = false
		Logger().Debug("scene graph rebuilt", "scene", e.sceneID, "nodes", len(e.sceneGraph.NodesById))
	}
	return e.sceneGraph, nil
}

// --- Queries ---

// HitTest returns the object ID of the topmost hit, or empty string.
func (e *Engine) HitTest(x, y float64) string {
	sg, err := e.SceneGraph()
	if err != nil {
		return ""
	}
	return sg.TopHit(geom.Vec2{X: x, Y: y})
}

// InsertTargetParent resolves where new content goes relative to the
// selection. False means scene level.
func (e *Engine) InsertTargetParent() (string, bool, error) {
	sg, err := e.SceneGraph()
	if err != nil {
		return "", false, err
	}
	id, ok := ResolveInsertTargetParent(e.selection, sg, sg.IsContainer)
	return id, ok, nil
}

// PasteTargetParents resolves the landing parents for pasting ids.
func (e *Engine) PasteTargetParents(ids []string) ([]string, error) {
	sg, err := e.SceneGraph()
	if err != nil {
		return nil, err
	}
	return ResolvePasteTargetParents(ids, sg, sg.IsContainer), nil
}

// DropTarget finds the innermost container that fully holds rect, after grid
// snapping. False means drop at scene level.
func (e *Engine) DropTarget(rect geom.Rect) (string, bool, error) {
	return e.DropTargetWithDepth(rect, e.settings.MaxNestingDepth)
}

// DropTargetWithDepth is DropTarget with an explicit nesting limit. A rect
// with negative or non-finite extents fails with geom.ErrInvalidArgument.
func (e *Engine) DropTargetWithDepth(rect geom.Rect, maxDepth int) (string, bool, error) {
	if err := rect.Validate(); err != nil {
		return "", false, err
	}
	sg, err := e.SceneGraph()
	if err != nil {
		return "", false, err
	}
	if e.settings.GridStep > 0 {
		rect, err = geom.QuantizeRect(rect, e.settings.GridStep)
		if err != nil {
			return "", false, err
		}
	}
	id, ok := HitTestNestedInsertionTarget(rect, sg, sg.IsContainer, maxDepth)
	return id, ok, nil
}

// Bounds returns the absolute bounds of the given objects and their subtrees.
func (e *Engine) Bounds(ids []string) (geom.Rect, error) {
	sg, err := e.SceneGraph()
	if err != nil {
		return geom.Rect{}, err
	}
	return PackedSubtreeBoundingRect(sg.Pack(ids))
}

// SelectionBounds returns the bounds of the selection.
func (e *Engine) SelectionBounds() (geom.Rect, error) {
	return e.Bounds(e.selection)
}

// FrameSelection returns the pan that brings an off-screen selection into
// viewport. False means the selection is already visible.
func (e *Engine) FrameSelection(viewport geom.Rect) (geom.Vec2, bool, error) {
	if err := viewport.Validate(); err != nil {
		return geom.Vec2{}, false, err
	}
	bounds, err := e.SelectionBounds()
	if err != nil {
		return geom.Vec2{}, false, err
	}
	delta, ok := ViewportAwareDelta(viewport, bounds)
	return delta, ok, nil
}

// GetScene returns the current scene metadata as JSON.
func (e *Engine) GetScene() string {
	if e.doc == nil || e.sceneID == "" {
		return "{}"
	}

	scene, ok := e.doc.Scenes[e.sceneID]
	if !ok {
		return "{}"
	}

	data, _ := json.Marshal(scene)
	return string(data)
}
