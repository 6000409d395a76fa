package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/curator-sh/curator/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready bool `json:"ready"`
}

// Readyz reports readiness. The server is ready once the category set has
// been loaded, which the seed reloader does before the listener starts.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		ready := d.MemoryIndex != nil && d.MemoryIndex.CategoryCount() > 0
		if !ready {
			w.WriteHeader(http.StatusServiceUnavailable)
		} else {
			w.WriteHeader(http.StatusOK)
		}

		_ = json.NewEncoder(w).Encode(readyzResponse{
			Ready: ready,
		})
	}
}
