package handlers

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	"github.com/curator-sh/curator/internal/domain"
	"github.com/curator-sh/curator/internal/httpserver/deps"
	"github.com/curator-sh/curator/internal/logger"
)

type tagsResponse struct {
	Tags  []*domain.Tag `json:"tags"`
	Count int           `json:"count"`
}

// ListTags returns all tag definitions sorted by name.
func ListTags(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags := d.MemoryIndex.GetAllTags()
		sort.Slice(tags, func(i, j int) bool {
			return tags[i].Name < tags[j].Name
		})

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(tagsResponse{
			Tags:  tags,
			Count: len(tags),
		})
	}
}

type mergeTagsRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type mergeTagsResponse struct {
	RecordsRewritten int `json:"records_rewritten"`
}

// MergeTags folds one tag definition into another across all records.
func MergeTags(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req mergeTagsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.From == "" || req.To == "" {
			http.Error(w, "both from and to tag IDs are required", http.StatusBadRequest)
			return
		}

		rewritten, err := d.TagMerger.MergeTags(r.Context(), req.From, req.To)
		if err != nil {
			if strings.Contains(err.Error(), "not found") {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			d.Logger.Error("tag merge failed",
				logger.String("from", req.From),
				logger.String("to", req.To),
				logger.Error(err))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(mergeTagsResponse{
			RecordsRewritten: rewritten,
		})
	}
}
