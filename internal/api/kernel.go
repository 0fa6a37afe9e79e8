package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/image/math/f64"

	"github.com/inamate/geokernel/internal/document"
	"github.com/inamate/geokernel/internal/engine"
	"github.com/inamate/geokernel/internal/geom"
	"github.com/inamate/geokernel/internal/gradient"
)

// Transforms cross the wire as f64.Aff3, the row-major matrix x/image/draw
// takes.

type multiplyRequest struct {
	A f64.Aff3 `json:"a"`
	B f64.Aff3 `json:"b"`
}

type transformRequest struct {
	Transform f64.Aff3 `json:"transform"`
}

type transformResponse struct {
	Transform f64.Aff3 `json:"transform"`
}

func transformJSON(t geom.Transform) transformResponse {
	return transformResponse{Transform: t.Aff3()}
}

type quantizeRequest struct {
	Value float64 `json:"value"`
	Step  float64 `json:"step"`
}

type pointsRequest struct {
	Points gradient.ControlPoints `json:"points"`
}

type viewportDeltaRequest struct {
	Viewport geom.Rect `json:"viewport"`
	Rect     geom.Rect `json:"rect"`
}

// deltaResponse carries a null delta when no pan is needed.
type deltaResponse struct {
	Delta *geom.Vec2 `json:"delta"`
}

func (h *Handler) Multiply(w http.ResponseWriter, r *http.Request) {
	var req multiplyRequest
	if !decodeBody(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, transformJSON(geom.Multiply(geom.FromAff3(req.A), geom.FromAff3(req.B))))
}

func (h *Handler) Invert(w http.ResponseWriter, r *http.Request) {
	var req transformRequest
	if !decodeBody(w, r, &req) {
		return
	}
	inv, err := geom.Invert(geom.FromAff3(req.Transform))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transformJSON(inv))
}

func (h *Handler) Decompose(w http.ResponseWriter, r *http.Request) {
	var req transformRequest
	if !decodeBody(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, geom.FromAff3(req.Transform).Decompose())
}

func (h *Handler) Compose(w http.ResponseWriter, r *http.Request) {
	var c geom.Components
	if !decodeBody(w, r, &c) {
		return
	}
	writeJSON(w, http.StatusOK, transformJSON(geom.Compose(c)))
}

func (h *Handler) Quantize(w http.ResponseWriter, r *http.Request) {
	var req quantizeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	v, err := geom.Quantize(req.Value, req.Step)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"value": v})
}

func (h *Handler) GradientBase(w http.ResponseWriter, r *http.Request) {
	kind, err := gradient.ParseKind(mux.Vars(r)["kind"])
	if err != nil {
		handleServiceError(w, err)
		return
	}
	points, err := gradient.BaseControlPoints(kind)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (h *Handler) GradientTransform(w http.ResponseWriter, r *http.Request) {
	kind, err := gradient.ParseKind(mux.Vars(r)["kind"])
	if err != nil {
		handleServiceError(w, err)
		return
	}
	var req pointsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	t, err := gradient.TransformFromControlPoints(req.Points, kind)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transformJSON(t))
}

func (h *Handler) GradientPoints(w http.ResponseWriter, r *http.Request) {
	kind, err := gradient.ParseKind(mux.Vars(r)["kind"])
	if err != nil {
		handleServiceError(w, err)
		return
	}
	var req transformRequest
	if !decodeBody(w, r, &req) {
		return
	}
	points, err := gradient.ControlPointsFromTransform(geom.FromAff3(req.Transform), kind)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (h *Handler) ViewportDelta(w http.ResponseWriter, r *http.Request) {
	var req viewportDeltaRequest
	if !decodeBody(w, r, &req) {
		return
	}
	for _, rect := range []geom.Rect{req.Viewport, req.Rect} {
		if err := rect.Validate(); err != nil {
			handleServiceError(w, err)
			return
		}
	}
	var resp deltaResponse
	if delta, ok := engine.ViewportAwareDelta(req.Viewport, req.Rect); ok {
		resp.Delta = &delta
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) PackedBounds(w http.ResponseWriter, r *http.Request) {
	var doc document.PackedDocument
	if !decodeBody(w, r, &doc) {
		return
	}
	bounds, err := engine.PackedSubtreeBoundingRect(doc)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bounds)
}
