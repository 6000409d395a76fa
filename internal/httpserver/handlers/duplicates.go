package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/curator-sh/curator/internal/domain"
	"github.com/curator-sh/curator/internal/httpserver/deps"
	"github.com/curator-sh/curator/internal/logger"
)

type duplicatesResponse struct {
	Groups []*domain.DuplicateGroup `json:"groups"`
	Count  int                      `json:"count"`
}

// ListDuplicates groups the current record set on the fly and returns
// every group with its recommendation.
func ListDuplicates(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groups := domain.GroupDuplicates(d.MemoryIndex.GetAllRecords(), d.Now())

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(duplicatesResponse{
			Groups: groups,
			Count:  len(groups),
		})
	}
}

// ScanDuplicates triggers an immediate background scan
func ScanDuplicates(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case d.ScanTrigger <- struct{}{}:
			d.Logger.Info("manual duplicate scan triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			w.WriteHeader(http.StatusAccepted)
			if _, err := w.Write([]byte("Scan triggered\n")); err != nil {
				d.Logger.Debug("failed to write response", logger.Error(err))
			}
		default:
			d.Logger.Warn("duplicate scan already in progress",
				logger.String("remote_ip", r.RemoteAddr))
			w.WriteHeader(http.StatusTooManyRequests)
			if _, err := w.Write([]byte("Scan already in progress, please wait\n")); err != nil {
				d.Logger.Debug("failed to write response", logger.Error(err))
			}
		}
	}
}

// ResolveDuplicate applies the recommended resolution for one group.
func ResolveDuplicate(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groupID := chi.URLParam(r, "groupID")

		groups := domain.GroupDuplicates(d.MemoryIndex.GetAllRecords(), d.Now())
		var target *domain.DuplicateGroup
		for _, group := range groups {
			if group.ID == groupID {
				target = group
				break
			}
		}
		if target == nil {
			http.Error(w, "duplicate group not found", http.StatusNotFound)
			return
		}

		if err := d.Resolver.ApplyResolution(r.Context(), target); err != nil {
			d.Logger.Error("failed to resolve duplicate group",
				logger.String("group_id", groupID),
				logger.Error(err))
			http.Error(w, "failed to resolve duplicate group", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(target.Resolution)
	}
}
