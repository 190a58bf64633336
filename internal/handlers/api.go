package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"radient/internal/scatter"
	"radient/internal/showcase"
)

// APIHandler serves the JSON endpoints.
type APIHandler struct {
	store        *showcase.Store
	defaultCount int
}

func NewAPIHandler(store *showcase.Store, defaultCount int) *APIHandler {
	return &APIHandler{store: store, defaultCount: defaultCount}
}

// RegisterRoutes mounts routes relative to the API prefix.
func (h *APIHandler) RegisterRoutes(r chi.Router) {
	r.Get("/scatter", h.profiles)
	r.Get("/scatter/{profile}", h.scatter)
}

// RegisterHealth mounts the liveness probe.
func (h *APIHandler) RegisterHealth(r chi.Router) {
	r.Get("/healthz", h.healthz)
}

type scatterResponse struct {
	Profile string          `json:"profile"`
	Count   int             `json:"count"`
	Points  []scatter.Point `json:"points"`
}

func (h *APIHandler) scatter(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "profile")
	count := h.defaultCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "count must be an integer"})
			return
		}
		count = clampCount(n)
	}
	points, err := scatter.GenerateNamed(count, name)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, scatter.ErrUnknownProfile) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, scatterResponse{Profile: name, Count: len(points), Points: points})
}

func (h *APIHandler) profiles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"profiles": scatter.Names()})
}

func (h *APIHandler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": h.store.Len(),
	})
}

func clampCount(n int) int {
	if n < 0 {
		return 0
	}
	if n > scatter.MaxCount {
		return scatter.MaxCount
	}
	return n
}
