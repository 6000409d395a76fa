package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/curator-sh/curator/internal/httpserver/deps"
)

type componentStatus struct {
	OK               bool   `json:"ok"`
	RecordsLoaded    *int   `json:"records_loaded,omitempty"`
	CategoriesLoaded *int   `json:"categories_loaded,omitempty"`
	LastSync         string `json:"last_sync,omitempty"`
	LastReload       string `json:"last_reload,omitempty"`
	Mode             string `json:"mode,omitempty"`
	Impact           string `json:"impact,omitempty"`
	Error            string `json:"error,omitempty"`
}

type infraResponse struct {
	CurationMode string                     `json:"curation_mode"`
	Components   map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		recordCount := d.MemoryIndex.RecordCount()
		categoryCount := d.MemoryIndex.CategoryCount()

		components := map[string]componentStatus{
			"records": {
				OK:            true,
				RecordsLoaded: &recordCount,
				LastSync:      formatTime(d.MemoryIndex.GetLastRecordSync()),
			},
			"categories": {
				OK:               categoryCount > 0,
				CategoriesLoaded: &categoryCount,
				LastReload:       formatTime(d.MemoryIndex.GetLastSeedReload()),
			},
			"redis": checkRedis(d),
		}

		response := infraResponse{
			CurationMode: determineCurationMode(components),
			Components:   components,
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Format("2006-01-02 15:04:05")
}

func determineCurationMode(components map[string]componentStatus) string {
	// Without categories every record falls through to no category at all
	if categories, exists := components["categories"]; exists && !categories.OK {
		return "critical"
	}

	// Redis down means changes stop being durable but curation still works
	if redis, exists := components["redis"]; exists && !redis.OK {
		return "degraded"
	}

	return "full"
}

func checkRedis(d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "persistence-disabled",
			Error:  "client not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := d.RedisClient.Ping(ctx).Err()
	if err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "persistence-disabled",
			Error:  "timeout",
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "persistence-enabled",
		Error:  "none",
	}
}
