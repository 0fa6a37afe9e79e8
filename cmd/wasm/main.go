//go:build js && wasm

package main

import (
	"encoding/json"
	"log/slog"
	"os"
	"syscall/js"

	"golang.org/x/image/math/f64"

	"github.com/inamate/geokernel/internal/document"
	"github.com/inamate/geokernel/internal/engine"
	"github.com/inamate/geokernel/internal/geom"
	"github.com/inamate/geokernel/internal/gradient"
)

var eng *engine.Engine

func main() {
	// Warnings go to the browser console.
	engine.SetLogger(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn})))

	eng = engine.NewEngine(engine.Settings{})

	kernel := js.Global().Get("Object").New()

	// --- Commands (frontend → kernel) ---
	kernel.Set("configure", js.FuncOf(configure))
	kernel.Set("loadDocument", js.FuncOf(loadDocument))
	kernel.Set("loadSampleDocument", js.FuncOf(loadSampleDocument))
	kernel.Set("setScene", js.FuncOf(setScene))
	kernel.Set("setSelection", js.FuncOf(setSelection))

	// --- Document queries ---
	kernel.Set("hitTest", js.FuncOf(hitTest))
	kernel.Set("getScene", js.FuncOf(getScene))
	kernel.Set("getSelection", js.FuncOf(getSelection))
	kernel.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))
	kernel.Set("insertTargetParent", js.FuncOf(insertTargetParent))
	kernel.Set("pasteTargetParents", js.FuncOf(pasteTargetParents))
	kernel.Set("dropTarget", js.FuncOf(dropTarget))
	kernel.Set("frameSelection", js.FuncOf(frameSelection))

	// --- Pure geometry ---
	kernel.Set("multiply", js.FuncOf(multiply))
	kernel.Set("invert", js.FuncOf(invert))
	kernel.Set("decompose", js.FuncOf(decompose))
	kernel.Set("compose", js.FuncOf(compose))
	kernel.Set("quantize", js.FuncOf(quantize))
	kernel.Set("gradientBase", js.FuncOf(gradientBase))
	kernel.Set("gradientTransform", js.FuncOf(gradientTransform))
	kernel.Set("gradientPoints", js.FuncOf(gradientPoints))
	kernel.Set("viewportDelta", js.FuncOf(viewportDelta))
	kernel.Set("packedBounds", js.FuncOf(packedBounds))

	js.Global().Set("geokernel", kernel)
	js.Global().Set("geokernelWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func errorValue(msg string) interface{} {
	return js.ValueOf(map[string]interface{}{"error": msg})
}

// result encodes v as a JSON string, or returns {error} when err is set.
func result(v interface{}, err error) interface{} {
	if err != nil {
		return errorValue(err.Error())
	}
	data, err := json.Marshal(v)
	if err != nil {
		return errorValue(err.Error())
	}
	return js.ValueOf(string(data))
}

// optional returns the JSON of v, or null when ok is false.
func optional(v interface{}, ok bool, err error) interface{} {
	if err != nil {
		return errorValue(err.Error())
	}
	if !ok {
		return js.Null()
	}
	return result(v, nil)
}

func parseArg(args []js.Value, i int, v interface{}) error {
	if len(args) <= i {
		return geom.ErrInvalidArgument
	}
	return json.Unmarshal([]byte(args[i].String()), v)
}

// parseTransform reads an f64.Aff3 JSON array, the layout x/image/draw uses.
func parseTransform(args []js.Value, i int) (geom.Transform, error) {
	var m f64.Aff3
	if err := parseArg(args, i, &m); err != nil {
		return geom.Transform{}, err
	}
	return geom.FromAff3(m), nil
}

func transformResult(t geom.Transform, err error) interface{} {
	return result(t.Aff3(), err)
}

func stringSlice(v js.Value) []string {
	if v.Type() != js.TypeObject {
		return nil
	}
	ids := make([]string, v.Length())
	for i := range ids {
		ids[i] = v.Index(i).String()
	}
	return ids
}

// --- Command Handlers ---

func configure(this js.Value, args []js.Value) interface{} {
	var settings struct {
		GridStep        float64 `json:"gridStep"`
		MaxNestingDepth int     `json:"maxNestingDepth"`
	}
	if err := parseArg(args, 0, &settings); err != nil {
		return errorValue("invalid settings JSON")
	}
	eng = engine.NewEngine(engine.Settings{GridStep: settings.GridStep, MaxNestingDepth: settings.MaxNestingDepth})
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func loadDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorValue("missing document JSON")
	}
	if err := eng.LoadDocument(args[0].String()); err != nil {
		return errorValue(err.Error())
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func loadSampleDocument(this js.Value, args []js.Value) interface{} {
	projectID := document.PlaygroundProjectID
	if len(args) > 0 && args[0].Type() == js.TypeString {
		projectID = args[0].String()
	}
	eng.LoadSampleDocument(projectID)
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func setScene(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorValue("missing scene id")
	}
	if err := eng.SetScene(args[0].String()); err != nil {
		return errorValue(err.Error())
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func setSelection(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		eng.SetSelection(nil)
		return nil
	}
	eng.SetSelection(stringSlice(args[0]))
	return nil
}

// --- Document Query Handlers ---

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	return js.ValueOf(eng.HitTest(args[0].Float(), args[1].Float()))
}

func getScene(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetScene())
}

func getSelection(this js.Value, args []js.Value) interface{} {
	return result(eng.Selection(), nil)
}

func getSelectionBounds(this js.Value, args []js.Value) interface{} {
	return result(eng.SelectionBounds())
}

func insertTargetParent(this js.Value, args []js.Value) interface{} {
	id, ok, err := eng.InsertTargetParent()
	return optional(id, ok, err)
}

func pasteTargetParents(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorValue("missing ids")
	}
	parents, err := eng.PasteTargetParents(stringSlice(args[0]))
	if parents == nil {
		parents = []string{}
	}
	return result(parents, err)
}

func dropTarget(this js.Value, args []js.Value) interface{} {
	var rect geom.Rect
	if err := parseArg(args, 0, &rect); err != nil {
		return errorValue("invalid rect JSON")
	}
	if len(args) > 1 && args[1].Type() == js.TypeNumber {
		id, ok, err := eng.DropTargetWithDepth(rect, args[1].Int())
		return optional(id, ok, err)
	}
	id, ok, err := eng.DropTarget(rect)
	return optional(id, ok, err)
}

func frameSelection(this js.Value, args []js.Value) interface{} {
	var viewport geom.Rect
	if err := parseArg(args, 0, &viewport); err != nil {
		return errorValue("invalid viewport JSON")
	}
	delta, ok, err := eng.FrameSelection(viewport)
	return optional(delta, ok, err)
}

// --- Pure Geometry Handlers ---

func multiply(this js.Value, args []js.Value) interface{} {
	a, errA := parseTransform(args, 0)
	b, errB := parseTransform(args, 1)
	if errA != nil || errB != nil {
		return errorValue("invalid transform JSON")
	}
	return transformResult(geom.Multiply(a, b), nil)
}

func invert(this js.Value, args []js.Value) interface{} {
	t, err := parseTransform(args, 0)
	if err != nil {
		return errorValue("invalid transform JSON")
	}
	return transformResult(geom.Invert(t))
}

func decompose(this js.Value, args []js.Value) interface{} {
	t, err := parseTransform(args, 0)
	if err != nil {
		return errorValue("invalid transform JSON")
	}
	return result(t.Decompose(), nil)
}

func compose(this js.Value, args []js.Value) interface{} {
	var c geom.Components
	if err := parseArg(args, 0, &c); err != nil {
		return errorValue("invalid components JSON")
	}
	return transformResult(geom.Compose(c), nil)
}

func quantize(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorValue("quantize needs a value and a step")
	}
	v, err := geom.Quantize(args[0].Float(), args[1].Float())
	if err != nil {
		return errorValue(err.Error())
	}
	return js.ValueOf(v)
}

func gradientKind(args []js.Value) (gradient.Kind, error) {
	if len(args) < 1 {
		return "", gradient.ErrUnknownKind
	}
	return gradient.ParseKind(args[0].String())
}

func gradientBase(this js.Value, args []js.Value) interface{} {
	kind, err := gradientKind(args)
	if err != nil {
		return errorValue(err.Error())
	}
	return result(gradient.BaseControlPoints(kind))
}

func gradientTransform(this js.Value, args []js.Value) interface{} {
	kind, err := gradientKind(args)
	if err != nil {
		return errorValue(err.Error())
	}
	var points gradient.ControlPoints
	if err := parseArg(args, 1, &points); err != nil {
		return errorValue("invalid control points JSON")
	}
	return transformResult(gradient.TransformFromControlPoints(points, kind))
}

func gradientPoints(this js.Value, args []js.Value) interface{} {
	kind, err := gradientKind(args)
	if err != nil {
		return errorValue(err.Error())
	}
	t, err := parseTransform(args, 1)
	if err != nil {
		return errorValue("invalid transform JSON")
	}
	return result(gradient.ControlPointsFromTransform(t, kind))
}

func viewportDelta(this js.Value, args []js.Value) interface{} {
	var viewport, rect geom.Rect
	if parseArg(args, 0, &viewport) != nil || parseArg(args, 1, &rect) != nil {
		return errorValue("invalid rect JSON")
	}
	if err := viewport.Validate(); err != nil {
		return errorValue(err.Error())
	}
	if err := rect.Validate(); err != nil {
		return errorValue(err.Error())
	}
	delta, ok := engine.ViewportAwareDelta(viewport, rect)
	return optional(delta, ok, nil)
}

func packedBounds(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorValue("missing packed document JSON")
	}
	doc, err := document.ParsePacked([]byte(args[0].String()))
	if err != nil {
		return errorValue(err.Error())
	}
	return result(engine.PackedSubtreeBoundingRect(doc))
}
