package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/curator-sh/curator/internal/domain"
	"github.com/curator-sh/curator/internal/httpserver/deps"
	"github.com/curator-sh/curator/internal/logger"
)

type suggestionsResponse struct {
	Suggestions []domain.Tag `json:"suggestions"`
}

// Suggestions returns tag suggestions for one record. Tags minted along
// the way are persisted best effort so repeated calls resolve to the
// same IDs.
func Suggestions(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		rec, ok := d.MemoryIndex.GetRecord(id)
		if !ok {
			http.Error(w, "record not found", http.StatusNotFound)
			return
		}

		meta := domain.MetadataFromMeta(rec.Meta)
		suggestions := domain.SuggestTags(rec, meta, d.MemoryIndex)

		if d.Store != nil {
			for i := range suggestions {
				tag := suggestions[i]
				if err := d.Store.SaveTag(r.Context(), &tag); err != nil {
					d.Logger.Warn("failed to persist suggested tag",
						logger.String("tag", tag.Name),
						logger.Error(err))
				}
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(suggestionsResponse{
			Suggestions: suggestions,
		})
	}
}
