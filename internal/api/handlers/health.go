package handlers

import (
	"net/http"
)

// CacheStats reports cumulative hit/miss counts for a cache tier, for
// basic cache-efficiency visibility on /health.
type CacheStats struct {
	Hits   uint64
	Misses uint64
}

// HealthHandler serves GET /health. DistanceCacheStats is optional —
// when set, its counters are reported alongside liveness.
type HealthHandler struct {
	DistanceCacheStats func() CacheStats
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	res := map[string]any{"status": "ok"}
	if h != nil && h.DistanceCacheStats != nil {
		res["distance_cache"] = h.DistanceCacheStats()
	}
	writeJSON(w, r, http.StatusOK, res)
}

// Health provides a minimal liveness check endpoint with no cache
// stats attached.
func Health(w http.ResponseWriter, r *http.Request) {
	(&HealthHandler{}).Health(w, r)
}
