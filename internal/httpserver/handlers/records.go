package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/curator-sh/curator/internal/domain"
	"github.com/curator-sh/curator/internal/httpserver/deps"
	"github.com/curator-sh/curator/internal/logger"
)

type recordsResponse struct {
	Records []*domain.Record `json:"records"`
	Count   int              `json:"count"`
}

// ListRecords returns the full record set. Output order is stable:
// DateAdded ascending, ID as tie-break.
func ListRecords(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records := d.MemoryIndex.GetAllRecords()

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(recordsResponse{
			Records: records,
			Count:   len(records),
		})
	}
}

// UpsertRecords accepts a JSON array of records and writes them to the
// index and the store. Records without an ID get one minted; records
// without a URL are rejected as a whole batch.
func UpsertRecords(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var incoming []*domain.Record
		if err := json.NewDecoder(r.Body).Decode(&incoming); err != nil {
			http.Error(w, "invalid request body: expected a JSON array of records", http.StatusBadRequest)
			return
		}
		if len(incoming) == 0 {
			http.Error(w, "empty record batch", http.StatusBadRequest)
			return
		}

		now := d.Now()
		for _, rec := range incoming {
			if rec == nil || rec.URL == "" {
				http.Error(w, "every record needs a url", http.StatusBadRequest)
				return
			}
			if rec.ID == "" {
				rec.ID = uuid.NewString()
			}
			if rec.DateAdded.IsZero() {
				rec.DateAdded = now
			}
			rec.DateModified = now
		}

		for _, rec := range incoming {
			d.MemoryIndex.AddRecord(rec)
		}

		if d.Store != nil {
			if err := d.Store.SaveRecordsMany(r.Context(), incoming); err != nil {
				d.Logger.Error("failed to persist records",
					logger.Int("count", len(incoming)),
					logger.Error(err))
				http.Error(w, "failed to persist records", http.StatusInternalServerError)
				return
			}
		}

		d.Logger.Info("records upserted",
			logger.Int("count", len(incoming)))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(recordsResponse{
			Records: incoming,
			Count:   len(incoming),
		})
	}
}

// GetRecord returns a single record by ID.
func GetRecord(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		rec, ok := d.MemoryIndex.GetRecord(id)
		if !ok {
			http.Error(w, "record not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(rec)
	}
}
