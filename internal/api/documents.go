package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/inamate/geokernel/internal/document"
	"github.com/inamate/geokernel/internal/engine"
	"github.com/inamate/geokernel/internal/geom"
	"github.com/inamate/geokernel/internal/typeid"
)

type dropTargetRequest struct {
	Rect geom.Rect `json:"rect"`
	// MaxDepth overrides the configured nesting limit when set.
	MaxDepth *int `json:"maxDepth,omitempty"`
}

type targetResponse struct {
	TargetID *string `json:"targetId"`
}

type idsRequest struct {
	IDs []string `json:"ids"`
}

type frameRequest struct {
	Selection []string  `json:"selection"`
	Viewport  geom.Rect `json:"viewport"`
}

func target(id string, ok bool) targetResponse {
	if !ok {
		return targetResponse{}
	}
	return targetResponse{TargetID: &id}
}

// loadEngine builds an engine over the project's latest document. It writes
// the error response itself and returns nil on failure.
func (h *Handler) loadEngine(w http.ResponseWriter, r *http.Request) *engine.Engine {
	projectID := mux.Vars(r)["projectId"]
	if err := typeid.ValidateProject(projectID, document.PlaygroundProjectID); err != nil {
		handleServiceError(w, err)
		return nil
	}

	doc, err := h.docs.LatestDocument(r.Context(), projectID)
	if err != nil {
		handleServiceError(w, err)
		return nil
	}

	e := engine.NewEngine(h.settings)
	e.SetDocument(doc)
	if scene := r.URL.Query().Get("scene"); scene != "" {
		if err := e.SetScene(scene); err != nil {
			handleServiceError(w, err)
			return nil
		}
	}
	return e
}

func splitIDs(s string) []string {
	var ids []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// Bounds handles GET /api/documents/{projectId}/bounds?ids=a,b.
func (h *Handler) Bounds(w http.ResponseWriter, r *http.Request) {
	e := h.loadEngine(w, r)
	if e == nil {
		return
	}
	bounds, err := e.Bounds(splitIDs(r.URL.Query().Get("ids")))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bounds)
}

// Hit handles GET /api/documents/{projectId}/hit?x=..&y=.. and lists every
// node under the point, topmost first.
func (h *Handler) Hit(w http.ResponseWriter, r *http.Request) {
	x, errX := strconv.ParseFloat(r.URL.Query().Get("x"), 64)
	y, errY := strconv.ParseFloat(r.URL.Query().Get("y"), 64)
	if errX != nil || errY != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "x and y are required numbers"})
		return
	}

	e := h.loadEngine(w, r)
	if e == nil {
		return
	}
	sg, err := e.SceneGraph()
	if err != nil {
		handleServiceError(w, err)
		return
	}
	ids := sg.NodeIDsFromPoint(geom.Vec2{X: x, Y: y})
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"ids": ids})
}

func (h *Handler) DropTarget(w http.ResponseWriter, r *http.Request) {
	var req dropTargetRequest
	if !decodeBody(w, r, &req) {
		return
	}
	e := h.loadEngine(w, r)
	if e == nil {
		return
	}

	var (
		id  string
		ok  bool
		err error
	)
	if req.MaxDepth != nil {
		id, ok, err = e.DropTargetWithDepth(req.Rect, *req.MaxDepth)
	} else {
		id, ok, err = e.DropTarget(req.Rect)
	}
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, target(id, ok))
}

func (h *Handler) InsertTarget(w http.ResponseWriter, r *http.Request) {
	var req idsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	e := h.loadEngine(w, r)
	if e == nil {
		return
	}
	e.SetSelection(req.IDs)
	id, ok, err := e.InsertTargetParent()
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, target(id, ok))
}

func (h *Handler) PasteTargets(w http.ResponseWriter, r *http.Request) {
	var req idsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	e := h.loadEngine(w, r)
	if e == nil {
		return
	}
	parents, err := e.PasteTargetParents(req.IDs)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if parents == nil {
		parents = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"parents": parents})
}

// Frame returns the pan that scrolls the selection into the viewport.
func (h *Handler) Frame(w http.ResponseWriter, r *http.Request) {
	var req frameRequest
	if !decodeBody(w, r, &req) {
		return
	}
	e := h.loadEngine(w, r)
	if e == nil {
		return
	}
	e.SetSelection(req.Selection)
	delta, ok, err := e.FrameSelection(req.Viewport)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	var resp deltaResponse
	if ok {
		resp.Delta = &delta
	}
	writeJSON(w, http.StatusOK, resp)
}
