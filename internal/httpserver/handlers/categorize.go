package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/curator-sh/curator/internal/httpserver/deps"
	"github.com/curator-sh/curator/internal/logger"
)

type categorizeResponse struct {
	Changed int `json:"changed"`
}

// Categorize re-runs category selection over every record.
func Categorize(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		changed, err := d.Recategorizer.RecategorizeAll(r.Context())
		if err != nil {
			d.Logger.Error("recategorization failed", logger.Error(err))
			http.Error(w, "recategorization failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(categorizeResponse{Changed: changed})
	}
}
