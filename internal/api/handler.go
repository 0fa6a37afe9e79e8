// Package api serves the geometry kernel over JSON.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/inamate/geokernel/internal/engine"
	"github.com/inamate/geokernel/internal/geom"
	"github.com/inamate/geokernel/internal/gradient"
	"github.com/inamate/geokernel/internal/store"
	"github.com/inamate/geokernel/internal/typeid"
)

type Handler struct {
	docs     store.Loader
	settings engine.Settings
}

func NewHandler(docs store.Loader, settings engine.Settings) *Handler {
	return &Handler{docs: docs, settings: settings}
}

// Routes mounts the API under r. Document routes run behind requireAuth.
func (h *Handler) Routes(r *mux.Router, requireAuth mux.MiddlewareFunc) {
	r.HandleFunc("/health", h.Health).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/transform/multiply", h.Multiply).Methods("POST")
	api.HandleFunc("/transform/invert", h.Invert).Methods("POST")
	api.HandleFunc("/transform/decompose", h.Decompose).Methods("POST")
	api.HandleFunc("/transform/compose", h.Compose).Methods("POST")
	api.HandleFunc("/quantize", h.Quantize).Methods("POST")
	api.HandleFunc("/gradient/{kind}/base", h.GradientBase).Methods("GET")
	api.HandleFunc("/gradient/{kind}/transform", h.GradientTransform).Methods("POST")
	api.HandleFunc("/gradient/{kind}/points", h.GradientPoints).Methods("POST")
	api.HandleFunc("/viewport/delta", h.ViewportDelta).Methods("POST")
	api.HandleFunc("/packed/bounds", h.PackedBounds).Methods("POST")

	docs := api.PathPrefix("/documents/{projectId}").Subrouter()
	if requireAuth != nil {
		docs.Use(requireAuth)
	}
	docs.HandleFunc("/bounds", h.Bounds).Methods("GET")
	docs.HandleFunc("/hit", h.Hit).Methods("GET")
	docs.HandleFunc("/drop-target", h.DropTarget).Methods("POST")
	docs.HandleFunc("/insert-target", h.InsertTarget).Methods("POST")
	docs.HandleFunc("/paste-targets", h.PasteTargets).Methods("POST")
	docs.HandleFunc("/frame", h.Frame).Methods("POST")
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, engine.ErrUnknownScene):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, typeid.ErrInvalidID):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid project id"})
	case errors.Is(err, geom.ErrNotInvertible):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	case errors.Is(err, geom.ErrInvalidArgument), errors.Is(err, gradient.ErrUnknownKind):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		slog.Error("service error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
